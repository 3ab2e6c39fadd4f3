package fitlifeapi

import (
	"context"
	"net/http"
)

type NewGoal struct {
	UserID string  `json:"user_id"`
	Type   string  `json:"type"`
	Target float64 `json:"target"`
}

// CreateGoal sets a new goal. The remote dispatches this as "set", not
// "create" like the other resources.
func (c *Client) CreateGoal(ctx context.Context, goal NewGoal) (*Goal, error) {
	var created Goal
	if err := c.do(ctx, http.MethodPost, "/goals"+query(map[string]string{"action": "set"}), goal, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Goals(ctx context.Context, userID string) ([]Goal, error) {
	var goals []Goal
	path := "/goals" + query(map[string]string{
		"action":  "list",
		"user_id": userID,
	})
	if err := c.do(ctx, http.MethodGet, path, nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

type UpdateGoalParams struct {
	ID     string  `json:"id"`
	Target float64 `json:"target"`
}

func (c *Client) UpdateGoal(ctx context.Context, params UpdateGoalParams) (*Goal, error) {
	var updated Goal
	if err := c.do(ctx, http.MethodPut, "/goals"+query(map[string]string{"action": "update"}), params, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/goals"+query(map[string]string{"action": "delete", "id": id}), nil, nil)
}
