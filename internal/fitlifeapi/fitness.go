package fitlifeapi

import (
	"context"
	"net/http"
)

type NewRoutine struct {
	UserID    string            `json:"user_id"`
	Name      string            `json:"name"`
	Exercises []RoutineExercise `json:"exercises"`
}

func (c *Client) CreateRoutine(ctx context.Context, routine NewRoutine) (*Routine, error) {
	var created Routine
	if err := c.do(ctx, http.MethodPost, "/fitness"+query(map[string]string{"action": "create"}), routine, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Routines(ctx context.Context, userID string) ([]Routine, error) {
	var routines []Routine
	path := "/fitness" + query(map[string]string{
		"action":  "list",
		"user_id": userID,
	})
	if err := c.do(ctx, http.MethodGet, path, nil, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

type UpdateRoutineParams struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Exercises []RoutineExercise `json:"exercises"`
}

func (c *Client) UpdateRoutine(ctx context.Context, params UpdateRoutineParams) (*Routine, error) {
	var updated Routine
	if err := c.do(ctx, http.MethodPut, "/fitness"+query(map[string]string{"action": "update"}), params, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteRoutine(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/fitness"+query(map[string]string{"action": "delete", "id": id}), nil, nil)
}
