package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoginService struct {
	token     string
	loginErr  error
	loggedOut bool
}

func (f *fakeLoginService) Login(_ context.Context, _, _ string, _ time.Time) (string, error) {
	return f.token, f.loginErr
}

func (f *fakeLoginService) Register(_ context.Context, _, _, _ string, _ time.Time) (string, error) {
	return f.token, f.loginErr
}

func (f *fakeLoginService) Logout(_ context.Context, _ string) (bool, error) {
	return f.loggedOut, nil
}

func TestHandler_HandleLogin(t *testing.T) {
	handler := NewHandler(&fakeLoginService{token: "session-token"})

	body := []byte(`{"email": "mila@example.com", "password": "hunter2"}`)
	rr := httptest.NewRecorder()
	handler.HandleLogin(rr, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "session-token", resp.Token)
}

func TestHandler_HandleLogin_BadCredentials(t *testing.T) {
	handler := NewHandler(&fakeLoginService{loginErr: errors.New("invalid credentials")})

	body := []byte(`{"email": "mila@example.com", "password": "wrong"}`)
	rr := httptest.NewRecorder()
	handler.HandleLogin(rr, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandler_HandleLogin_EmptyFields(t *testing.T) {
	handler := NewHandler(&fakeLoginService{token: "session-token"})

	rr := httptest.NewRecorder()
	handler.HandleLogin(rr, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{"email": ""}`))))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_HandleRegister(t *testing.T) {
	handler := NewHandler(&fakeLoginService{token: "fresh-token"})

	body := []byte(`{"email": "mila@example.com", "password": "hunter2", "name": "Mila"}`)
	rr := httptest.NewRecorder()
	handler.HandleRegister(rr, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "fresh-token", resp.Token)
}

func TestHandler_HandleLogout(t *testing.T) {
	handler := NewHandler(&fakeLoginService{loggedOut: true})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set(tokenHeader, "session-token")
	rr := httptest.NewRecorder()
	handler.HandleLogout(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "logged-out", rr.Body.String())

	// missing token
	rr = httptest.NewRecorder()
	handler.HandleLogout(rr, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
