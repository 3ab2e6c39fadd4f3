package goals

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife-app/fitlife/internal/auth"
	"github.com/fitlife-app/fitlife/internal/cache"
	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
	"github.com/fitlife-app/fitlife/internal/telemetry/tracing"
	"github.com/fitlife-app/fitlife/pkg"
)

const goalsCacheTTL = 10 * time.Minute

type goalsClient interface {
	CreateGoal(ctx context.Context, goal fitlifeapi.NewGoal) (*fitlifeapi.Goal, error)
	Goals(ctx context.Context, userID string) ([]fitlifeapi.Goal, error)
	UpdateGoal(ctx context.Context, params fitlifeapi.UpdateGoalParams) (*fitlifeapi.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
}

type DeleteGoalResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	api   goalsClient
	cache *cache.Cache
}

func NewHandler(api goalsClient, localCache *cache.Cache) *Handler {
	return &Handler{
		api:   api,
		cache: localCache,
	}
}

func (handler *Handler) invalidate(userID string) {
	handler.cache.Remove(cache.UserKey(cache.KeyGoals, userID))
	handler.cache.Remove(cache.UserKey(cache.KeyRecentActivity, userID))
	handler.cache.Remove(cache.UserKey(cache.KeyDashboardSummary, userID))
}

func (handler *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.new")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var goal fitlifeapi.NewGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Errorf("new goal, unmarshal json params: %s", err)
		http.Error(w, "add goal failed", http.StatusBadRequest)
		return
	}
	if goal.Type == "" || goal.Target <= 0 {
		http.Error(w, "error, goal type empty or target not positive", http.StatusBadRequest)
		return
	}
	goal.UserID = session.UserID

	added, err := handler.api.CreateGoal(ctx, goal)
	if err != nil {
		log.Errorf("failed to add goal [%s] for user [%s]: %s", goal.Type, session.UserID, err)
		http.Error(w, "error, failed to add goal", http.StatusInternalServerError)
		return
	}

	handler.invalidate(session.UserID)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new goal: %s", err)
		http.Error(w, "error, failed to add goal", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	cacheKey := cache.UserKey(cache.KeyGoals, session.UserID)
	var goals []fitlifeapi.Goal
	if !handler.cache.Get(cacheKey, &goals) {
		var err error
		goals, err = handler.api.Goals(ctx, session.UserID)
		if err != nil {
			log.Errorf("failed to list goals for user [%s]: %s", session.UserID, err)
			http.Error(w, "error, failed to list goals", http.StatusInternalServerError)
			return
		}
		handler.cache.SetWithTTL(cacheKey, goals, goalsCacheTTL)
	}

	goalsJson, err := json.Marshal(goals)
	if err != nil {
		log.Errorf("failed to marshal goals: %s", err)
		http.Error(w, "failed to marshal goals", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, goalsJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.update")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var params fitlifeapi.UpdateGoalParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("update goal, unmarshal json params: %s", err)
		http.Error(w, "update goal failed", http.StatusBadRequest)
		return
	}
	if params.ID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	updated, err := handler.api.UpdateGoal(ctx, params)
	if err != nil {
		log.Errorf("failed to update goal %s: %s", params.ID, err)
		http.Error(w, "error, failed to update goal", http.StatusInternalServerError)
		return
	}

	handler.invalidate(session.UserID)

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("failed to marshal updated goal: %s", err)
		http.Error(w, "error, failed to update goal", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.api.DeleteGoal(ctx, id); err != nil {
		log.Errorf("failed to delete goal %s: %s", id, err)
		http.Error(w, "goal not deleted", http.StatusInternalServerError)
		return
	}

	handler.invalidate(session.UserID)

	deleteRespJson, err := json.Marshal(DeleteGoalResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
