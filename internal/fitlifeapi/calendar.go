package fitlifeapi

import (
	"context"
	"net/http"
)

type NewCalendarEvent struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Date   string `json:"date"`
}

func (c *Client) CreateCalendarEvent(ctx context.Context, event NewCalendarEvent) (*CalendarEvent, error) {
	var created CalendarEvent
	if err := c.do(ctx, http.MethodPost, "/calendar"+query(map[string]string{"action": "create"}), event, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CalendarEvents returns the user's events, optionally limited to a
// single day (empty date means all).
func (c *Client) CalendarEvents(ctx context.Context, userID, date string) ([]CalendarEvent, error) {
	var events []CalendarEvent
	path := "/calendar" + query(map[string]string{
		"action":  "list",
		"user_id": userID,
		"date":    date,
	})
	if err := c.do(ctx, http.MethodGet, path, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

type UpdateCalendarEventParams struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

func (c *Client) UpdateCalendarEvent(ctx context.Context, params UpdateCalendarEventParams) (*CalendarEvent, error) {
	var updated CalendarEvent
	if err := c.do(ctx, http.MethodPut, "/calendar"+query(map[string]string{"action": "update"}), params, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCalendarEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/calendar"+query(map[string]string{"action": "delete", "id": id}), nil, nil)
}
