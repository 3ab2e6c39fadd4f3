package ai

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife-app/fitlife/internal/auth"
	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
	"github.com/fitlife-app/fitlife/internal/telemetry/metrics"
	"github.com/fitlife-app/fitlife/internal/telemetry/tracing"
	"github.com/fitlife-app/fitlife/pkg"
)

type analysisClient interface {
	AnalyzeFoodImage(ctx context.Context, imageBase64 string) (*fitlifeapi.FoodAnalysis, error)
	NutritionByBarcode(ctx context.Context, barcode string) (*fitlifeapi.NutritionInfo, error)
	AnalyzeHealth(ctx context.Context, userID string, metrics map[string]float64) (*fitlifeapi.HealthInsight, error)
}

type Handler struct {
	api            analysisClient
	metricsManager *metrics.Manager
}

func NewHandler(api analysisClient, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		api:            api,
		metricsManager: metricsManager,
	}
}

type analyzeFoodRequest struct {
	Image string `json:"image"`
}

func (handler *Handler) HandleAnalyzeFood(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.analyzeFood")
	defer span.End()

	if _, ok := auth.SessionFromContext(ctx); !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var req analyzeFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("analyze food, unmarshal json params: %s", err)
		http.Error(w, "analyze food failed", http.StatusBadRequest)
		return
	}
	if req.Image == "" {
		http.Error(w, "error, image empty", http.StatusBadRequest)
		return
	}

	handler.metricsManager.CounterAIAnalysisRequests.Inc()

	analysis, err := handler.api.AnalyzeFoodImage(ctx, req.Image)
	if err != nil {
		log.Errorf("failed to analyze food image: %s", err)
		http.Error(w, "error, failed to analyze food image", http.StatusInternalServerError)
		return
	}

	analysisJson, err := json.Marshal(analysis)
	if err != nil {
		log.Errorf("failed to marshal food analysis: %s", err)
		http.Error(w, "failed to marshal food analysis", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, analysisJson)
}

func (handler *Handler) HandleNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.nutrition")
	defer span.End()

	if _, ok := auth.SessionFromContext(ctx); !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	barcode := mux.Vars(r)["barcode"]
	if barcode == "" {
		http.Error(w, "error, barcode empty", http.StatusBadRequest)
		return
	}

	handler.metricsManager.CounterAIAnalysisRequests.Inc()

	info, err := handler.api.NutritionByBarcode(ctx, barcode)
	if err != nil {
		log.Errorf("failed to get nutrition for barcode %s: %s", barcode, err)
		http.Error(w, "error, failed to get nutrition info", http.StatusInternalServerError)
		return
	}

	infoJson, err := json.Marshal(info)
	if err != nil {
		log.Errorf("failed to marshal nutrition info: %s", err)
		http.Error(w, "failed to marshal nutrition info", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, infoJson)
}

type analyzeHealthRequest struct {
	Metrics map[string]float64 `json:"metrics"`
}

func (handler *Handler) HandleInsight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.insight")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var req analyzeHealthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("analyze health, unmarshal json params: %s", err)
		http.Error(w, "analyze health failed", http.StatusBadRequest)
		return
	}
	if len(req.Metrics) == 0 {
		http.Error(w, "error, metrics empty", http.StatusBadRequest)
		return
	}

	handler.metricsManager.CounterAIAnalysisRequests.Inc()

	insight, err := handler.api.AnalyzeHealth(ctx, session.UserID, req.Metrics)
	if err != nil {
		log.Errorf("failed to analyze health for user [%s]: %s", session.UserID, err)
		http.Error(w, "error, failed to analyze health", http.StatusInternalServerError)
		return
	}

	insightJson, err := json.Marshal(insight)
	if err != nil {
		log.Errorf("failed to marshal health insight: %s", err)
		http.Error(w, "failed to marshal health insight", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, insightJson)
}
