package fitlifeapi

import (
	"context"
	"net/http"
)

func (c *Client) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}{Email: email, Password: password, Name: name}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth"+query(map[string]string{"action": "signup"}), payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth"+query(map[string]string{"action": "signin"}), payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
