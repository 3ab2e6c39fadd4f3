package users

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/fitlife-app/fitlife/internal/auth"
	"github.com/fitlife-app/fitlife/internal/cache"
	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
	"github.com/fitlife-app/fitlife/internal/telemetry/tracing"
	"github.com/fitlife-app/fitlife/pkg"
)

type profileClient interface {
	CreateProfile(ctx context.Context, profile fitlifeapi.NewUserProfile) (*fitlifeapi.UserProfile, error)
	Profile(ctx context.Context, userID string) (*fitlifeapi.UserProfile, error)
	UpdateProfile(ctx context.Context, params fitlifeapi.UpdateProfileParams) (*fitlifeapi.UserProfile, error)
}

type Handler struct {
	api   profileClient
	cache *cache.Cache
}

func NewHandler(api profileClient, localCache *cache.Cache) *Handler {
	return &Handler{
		api:   api,
		cache: localCache,
	}
}

// HandleCreate sets up the profile after registration.
func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.create")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var profile fitlifeapi.NewUserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Errorf("create profile, unmarshal json params: %s", err)
		http.Error(w, "create profile failed", http.StatusBadRequest)
		return
	}
	if profile.Name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}
	profile.UserID = session.UserID

	created, err := handler.api.CreateProfile(ctx, profile)
	if err != nil {
		log.Errorf("failed to create profile for user [%s]: %s", session.UserID, err)
		http.Error(w, "error, failed to create profile", http.StatusInternalServerError)
		return
	}

	handler.cache.Remove(cache.UserKey(cache.KeyProfile, session.UserID))

	createdJson, err := json.Marshal(created)
	if err != nil {
		log.Errorf("failed to marshal created profile: %s", err)
		http.Error(w, "error, failed to create profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdJson, http.StatusCreated)
}

// HandleGet serves the user profile, cached without expiry since it
// changes only through HandleCreate and HandleUpdate.
func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	cacheKey := cache.UserKey(cache.KeyProfile, session.UserID)
	var profile *fitlifeapi.UserProfile
	if !handler.cache.Get(cacheKey, &profile) {
		var err error
		profile, err = handler.api.Profile(ctx, session.UserID)
		if err != nil {
			log.Errorf("failed to get profile for user [%s]: %s", session.UserID, err)
			http.Error(w, "error, failed to get profile", http.StatusInternalServerError)
			return
		}
		handler.cache.Set(cacheKey, profile)
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("failed to marshal profile: %s", err)
		http.Error(w, "failed to marshal profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, profileJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.update")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var params fitlifeapi.UpdateProfileParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}
	params.UserID = session.UserID

	updated, err := handler.api.UpdateProfile(ctx, params)
	if err != nil {
		log.Errorf("failed to update profile for user [%s]: %s", session.UserID, err)
		http.Error(w, "error, failed to update profile", http.StatusInternalServerError)
		return
	}

	handler.cache.Remove(cache.UserKey(cache.KeyProfile, session.UserID))

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("failed to marshal updated profile: %s", err)
		http.Error(w, "error, failed to update profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJson)
}
