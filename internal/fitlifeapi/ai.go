package fitlifeapi

import (
	"context"
	"net/http"
)

// AnalyzeFoodImage sends a base64-encoded food photo for AI analysis.
func (c *Client) AnalyzeFoodImage(ctx context.Context, imageBase64 string) (*FoodAnalysis, error) {
	payload := struct {
		Image string `json:"image"`
	}{Image: imageBase64}

	var analysis FoodAnalysis
	if err := c.do(ctx, http.MethodPost, "/ai"+query(map[string]string{"action": "analyze"}), payload, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// NutritionByBarcode looks up nutrition facts for a product barcode.
func (c *Client) NutritionByBarcode(ctx context.Context, barcode string) (*NutritionInfo, error) {
	var info NutritionInfo
	path := "/ai" + query(map[string]string{"action": "nutrition", "barcode": barcode})
	if err := c.do(ctx, http.MethodGet, path, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// AnalyzeHealth asks the AI for an insight over the user's recent
// metrics.
func (c *Client) AnalyzeHealth(ctx context.Context, userID string, metrics map[string]float64) (*HealthInsight, error) {
	payload := struct {
		UserID  string             `json:"user_id"`
		Metrics map[string]float64 `json:"metrics"`
	}{UserID: userID, Metrics: metrics}

	var insight HealthInsight
	if err := c.do(ctx, http.MethodPost, "/ai"+query(map[string]string{"action": "analyze-health"}), payload, &insight); err != nil {
		return nil, err
	}
	return &insight, nil
}
