package fitness

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

const routinesCacheTTL = 10 * time.Minute

type routinesClient interface {
	CreateRoutine(ctx context.Context, routine fitlifeapi.NewRoutine) (*fitlifeapi.Routine, error)
	Routines(ctx context.Context, userID string) ([]fitlifeapi.Routine, error)
	UpdateRoutine(ctx context.Context, params fitlifeapi.UpdateRoutineParams) (*fitlifeapi.Routine, error)
	DeleteRoutine(ctx context.Context, id string) error
}

type DeleteRoutineResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	api   routinesClient
	cache *cache.Cache
}

func NewHandler(api routinesClient, localCache *cache.Cache) *Handler {
	return &Handler{
		api:   api,
		cache: localCache,
	}
}

func (handler *Handler) invalidate(userID string) {
	handler.cache.Remove(cache.UserKey(cache.KeyRoutines, userID))
	handler.cache.Remove(cache.UserKey(cache.KeyRecentActivity, userID))
	handler.cache.Remove(cache.UserKey(cache.KeyDashboardSummary, userID))
}

func (handler *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.fitness.new")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var routine fitlifeapi.NewRoutine
	if err := json.NewDecoder(r.Body).Decode(&routine); err != nil {
		log.Errorf("new routine, unmarshal json params: %s", err)
		http.Error(w, "add routine failed", http.StatusBadRequest)
		return
	}
	if routine.Name == "" {
		http.Error(w, "error, routine name empty", http.StatusBadRequest)
		return
	}
	routine.UserID = session.UserID

	added, err := handler.api.CreateRoutine(ctx, routine)
	if err != nil {
		log.Errorf("failed to add routine [%s] for user [%s]: %s", routine.Name, session.UserID, err)
		http.Error(w, "error, failed to add routine", http.StatusInternalServerError)
		return
	}

	handler.invalidate(session.UserID)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new routine: %s", err)
		http.Error(w, "error, failed to add routine", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.fitness.list")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	cacheKey := cache.UserKey(cache.KeyRoutines, session.UserID)
	var routines []fitlifeapi.Routine
	if !handler.cache.Get(cacheKey, &routines) {
		var err error
		routines, err = handler.api.Routines(ctx, session.UserID)
		if err != nil {
			log.Errorf("failed to list routines for user [%s]: %s", session.UserID, err)
			http.Error(w, "error, failed to list routines", http.StatusInternalServerError)
			return
		}
		handler.cache.SetWithTTL(cacheKey, routines, routinesCacheTTL)
	}

	routinesJson, err := json.Marshal(routines)
	if err != nil {
		log.Errorf("failed to marshal routines: %s", err)
		http.Error(w, "failed to marshal routines", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, routinesJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.fitness.update")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var params fitlifeapi.UpdateRoutineParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("update routine, unmarshal json params: %s", err)
		http.Error(w, "update routine failed", http.StatusBadRequest)
		return
	}
	if params.ID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	updated, err := handler.api.UpdateRoutine(ctx, params)
	if err != nil {
		log.Errorf("failed to update routine %s: %s", params.ID, err)
		http.Error(w, "error, failed to update routine", http.StatusInternalServerError)
		return
	}

	handler.invalidate(session.UserID)

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("failed to marshal updated routine: %s", err)
		http.Error(w, "error, failed to update routine", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.fitness.delete")
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

	if err := handler.api.DeleteRoutine(ctx, id); err != nil {
		log.Errorf("failed to delete routine %s: %s", id, err)
		http.Error(w, "routine not deleted", http.StatusInternalServerError)
		return
	}

	handler.invalidate(session.UserID)

	deleteRespJson, err := json.Marshal(DeleteRoutineResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
