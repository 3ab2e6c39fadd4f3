package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrNotLoggedIn = errors.New("not logged in")

// LoginChecker resolves session tokens back to their remote API
// credentials.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// SessionFor returns the session behind token, or ErrNotLoggedIn when
// the token is unknown or the session has outlived its TTL.
func (lc *LoginChecker) SessionFor(ctx context.Context, token string) (*Session, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := lc.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(cmd.Val()), &session); err != nil {
		return nil, err
	}

	createdAt := time.Unix(session.CreatedAt, 0)
	if time.Since(createdAt) > lc.ttl {
		return nil, ErrNotLoggedIn
	}

	return &session, nil
}

// IsLogged reports whether token maps to a live session.
func (lc *LoginChecker) IsLogged(ctx context.Context, token string) (bool, error) {
	_, err := lc.SessionFor(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotLoggedIn) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
