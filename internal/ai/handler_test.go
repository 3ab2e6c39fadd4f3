package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlife-app/fitlife/internal/auth"
	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
	"github.com/fitlife-app/fitlife/internal/telemetry/metrics"
)

type fakeAnalysisClient struct {
	insightMetrics map[string]float64
}

func (f *fakeAnalysisClient) AnalyzeFoodImage(_ context.Context, _ string) (*fitlifeapi.FoodAnalysis, error) {
	return &fitlifeapi.FoodAnalysis{FoodName: "Banana Bread", Calories: 356.5, Confidence: 0.92}, nil
}

func (f *fakeAnalysisClient) NutritionByBarcode(_ context.Context, barcode string) (*fitlifeapi.NutritionInfo, error) {
	return &fitlifeapi.NutritionInfo{Barcode: barcode, ProductName: "Oat Bar"}, nil
}

func (f *fakeAnalysisClient) AnalyzeHealth(_ context.Context, _ string, m map[string]float64) (*fitlifeapi.HealthInsight, error) {
	f.insightMetrics = m
	return &fitlifeapi.HealthInsight{Summary: "all good"}, nil
}

func requestWithSession(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := auth.ContextWithSession(req.Context(), &auth.Session{UserID: "user-1"})
	return req.WithContext(ctx)
}

func TestHandler_HandleAnalyzeFood(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	handler := NewHandler(&fakeAnalysisClient{}, metricsManager)

	rr := httptest.NewRecorder()
	handler.HandleAnalyzeFood(rr, requestWithSession(http.MethodPost, "/ai/food", []byte(`{"image": "aGVsbG8="}`)))

	require.Equal(t, http.StatusOK, rr.Code)

	var analysis fitlifeapi.FoodAnalysis
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &analysis))
	assert.Equal(t, "Banana Bread", analysis.FoodName)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterAIAnalysisRequests))
}

func TestHandler_HandleAnalyzeFood_EmptyImage(t *testing.T) {
	handler := NewHandler(&fakeAnalysisClient{}, metrics.NewTestManager())

	rr := httptest.NewRecorder()
	handler.HandleAnalyzeFood(rr, requestWithSession(http.MethodPost, "/ai/food", []byte(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_HandleInsight(t *testing.T) {
	api := &fakeAnalysisClient{}
	handler := NewHandler(api, metrics.NewTestManager())

	rr := httptest.NewRecorder()
	handler.HandleInsight(rr, requestWithSession(
		http.MethodPost, "/ai/insight",
		[]byte(`{"metrics": {"weight": 82.1, "heart_rate": 62}}`),
	))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 82.1, api.insightMetrics["weight"])

	var insight fitlifeapi.HealthInsight
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &insight))
	assert.Equal(t, "all good", insight.Summary)
}

func TestHandler_NoSession(t *testing.T) {
	handler := NewHandler(&fakeAnalysisClient{}, metrics.NewTestManager())

	rr := httptest.NewRecorder()
	handler.HandleAnalyzeFood(rr, httptest.NewRequest(http.MethodPost, "/ai/food", bytes.NewReader([]byte(`{}`))))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
