package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fitlife-app/fitlife/internal/telemetry/tracing"
	"github.com/fitlife-app/fitlife/pkg"
)

type loginService interface {
	Login(ctx context.Context, email, password string, createdAt time.Time) (string, error)
	Register(ctx context.Context, email, password, name string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

var _ loginService = (*Service)(nil)

const tokenHeader = "X-FITLIFE-TOKEN"

type Handler struct {
	service loginService
}

func NewHandler(service loginService) *Handler {
	return &Handler{service: service}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		http.Error(w, "error, email or password empty", http.StatusBadRequest)
		return
	}

	token, err := handler.service.Login(ctx, creds.Email, creds.Password, time.Now())
	if err != nil {
		log.Warnf("login failed for [%s]: %s", creds.Email, err)
		http.Error(w, "login failed", http.StatusUnauthorized)
		return
	}

	respJson, err := json.Marshal(loginResponse{Token: token})
	if err != nil {
		log.Errorf("failed to marshal login response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(respJson))
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Errorf("register, unmarshal json params: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}
	if creds.Email == "" || creds.Password == "" || creds.Name == "" {
		http.Error(w, "error, email, password or name empty", http.StatusBadRequest)
		return
	}

	token, err := handler.service.Register(ctx, creds.Email, creds.Password, creds.Name, time.Now())
	if err != nil {
		log.Errorf("register failed for [%s]: %s", creds.Email, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(loginResponse{Token: token})
	if err != nil {
		log.Errorf("failed to marshal register response: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := r.Header.Get(tokenHeader)
	if token == "" {
		http.Error(w, "error, token empty", http.StatusBadRequest)
		return
	}

	loggedOut, err := handler.service.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout failed: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "unknown session", http.StatusBadRequest)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
