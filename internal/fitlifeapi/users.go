package fitlifeapi

import (
	"context"
	"net/http"
)

type NewUserProfile struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

func (c *Client) CreateProfile(ctx context.Context, profile NewUserProfile) (*UserProfile, error) {
	var created UserProfile
	if err := c.do(ctx, http.MethodPost, "/users"+query(map[string]string{"action": "create"}), profile, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Profile reads the user profile. Reads and updates both dispatch on
// action=profile, distinguished by the HTTP method.
func (c *Client) Profile(ctx context.Context, userID string) (*UserProfile, error) {
	var profile UserProfile
	path := "/users" + query(map[string]string{
		"action":  "profile",
		"user_id": userID,
	})
	if err := c.do(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type UpdateProfileParams struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

func (c *Client) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*UserProfile, error) {
	var updated UserProfile
	if err := c.do(ctx, http.MethodPut, "/users"+query(map[string]string{"action": "profile"}), params, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
