package dashboard

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/fitlife-app/fitlife/internal/auth"
	"github.com/fitlife-app/fitlife/internal/telemetry/tracing"
	"github.com/fitlife-app/fitlife/pkg"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.summary")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	summary, err := handler.service.Summary(ctx, session.UserID)
	if err != nil {
		log.Errorf("failed to get dashboard summary for user [%s]: %s", session.UserID, err)
		http.Error(w, "error, failed to get dashboard summary", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, summary)
}

func (handler *Handler) HandleWeeklyActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.weekly")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	points, err := handler.service.WeeklyActivity(ctx, session.UserID)
	if err != nil {
		log.Errorf("failed to get weekly activity for user [%s]: %s", session.UserID, err)
		http.Error(w, "error, failed to get weekly activity", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, points)
}

func (handler *Handler) HandleBMI(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.bmi")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	result, err := handler.service.BMI(ctx, session.UserID)
	if err != nil {
		log.Errorf("failed to get bmi for user [%s]: %s", session.UserID, err)
		http.Error(w, "error, failed to get bmi", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, result)
}

func (handler *Handler) HandleRecentActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.activity")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	feed, err := handler.service.RecentActivity(ctx, session.UserID)
	if err != nil {
		log.Errorf("failed to get recent activity for user [%s]: %s", session.UserID, err)
		http.Error(w, "error, failed to get recent activity", http.StatusInternalServerError)
		return
	}

	handler.writeJSON(w, feed)
}

func (handler *Handler) writeJSON(w http.ResponseWriter, value any) {
	valueJson, err := json.Marshal(value)
	if err != nil {
		log.Errorf("failed to marshal dashboard response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, valueJson)
}
