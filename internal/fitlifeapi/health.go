package fitlifeapi

import (
	"context"
	"net/http"
)

// NewHealthRecord is the payload for logging a metric.
type NewHealthRecord struct {
	UserID string     `json:"user_id"`
	Type   MetricType `json:"type"`
	Value  float64    `json:"value"`
	Date   string     `json:"date"`
}

func (c *Client) CreateHealthRecord(ctx context.Context, rec NewHealthRecord) (*HealthRecord, error) {
	var created HealthRecord
	if err := c.do(ctx, http.MethodPost, "/health"+query(map[string]string{"action": "create"}), rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateHealthRecords logs several metrics in one request, used for
// multi-metric check-ins (weight plus steps plus heart rate at once).
// The remote dispatches on the body being a bare array instead of a
// single record object.
func (c *Client) CreateHealthRecords(ctx context.Context, recs []NewHealthRecord) ([]HealthRecord, error) {
	var created []HealthRecord
	if err := c.do(ctx, http.MethodPost, "/health"+query(map[string]string{"action": "create"}), recs, &created); err != nil {
		return nil, err
	}
	return created, nil
}

type UpdateHealthRecordParams struct {
	ID    string     `json:"id"`
	Type  MetricType `json:"type"`
	Value float64    `json:"value"`
	Date  string     `json:"date"`
}

func (c *Client) UpdateHealthRecord(ctx context.Context, params UpdateHealthRecordParams) (*HealthRecord, error) {
	var updated HealthRecord
	if err := c.do(ctx, http.MethodPut, "/health"+query(map[string]string{"action": "update"}), params, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteHealthRecord(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/health"+query(map[string]string{"action": "delete", "id": id}), nil, nil)
}

// HealthRecords returns the user's records, optionally filtered by metric
// type (empty metricType means all).
func (c *Client) HealthRecords(ctx context.Context, userID string, metricType MetricType) ([]HealthRecord, error) {
	var records []HealthRecord
	path := "/health" + query(map[string]string{
		"action":  "records",
		"user_id": userID,
		"type":    string(metricType),
	})
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) HealthStats(ctx context.Context, userID, period string) (*HealthStats, error) {
	var stats HealthStats
	path := "/health" + query(map[string]string{
		"action":  "stats",
		"user_id": userID,
		"period":  period,
	})
	if err := c.do(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
