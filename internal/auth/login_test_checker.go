package auth

import "context"

type LoginTestChecker struct {
	LoggedSessions map[string]*Session
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]*Session{},
	}
}

func (c *LoginTestChecker) SessionFor(_ context.Context, token string) (*Session, error) {
	session, ok := c.LoggedSessions[token]
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return session, nil
}
