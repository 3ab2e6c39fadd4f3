package fitness

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlife-app/fitlife/internal/auth"
	"github.com/fitlife-app/fitlife/internal/cache"
	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
)

type fakeRoutinesClient struct {
	routines  []fitlifeapi.Routine
	listCalls int
	deletedID string
}

func (f *fakeRoutinesClient) CreateRoutine(_ context.Context, routine fitlifeapi.NewRoutine) (*fitlifeapi.Routine, error) {
	return &fitlifeapi.Routine{
		ID:        "routine-1",
		UserID:    routine.UserID,
		Name:      routine.Name,
		Exercises: routine.Exercises,
	}, nil
}

func (f *fakeRoutinesClient) Routines(_ context.Context, _ string) ([]fitlifeapi.Routine, error) {
	f.listCalls++
	return f.routines, nil
}

func (f *fakeRoutinesClient) UpdateRoutine(_ context.Context, params fitlifeapi.UpdateRoutineParams) (*fitlifeapi.Routine, error) {
	return &fitlifeapi.Routine{ID: params.ID, Name: params.Name}, nil
}

func (f *fakeRoutinesClient) DeleteRoutine(_ context.Context, id string) error {
	f.deletedID = id
	return nil
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

func TestHandler_HandleNew(t *testing.T) {
	api := &fakeRoutinesClient{}
	handler := NewHandler(api, cache.New(cache.NewMemoryStore()))

	payload, err := json.Marshal(fitlifeapi.NewRoutine{
		Name: "Push Day",
		Exercises: []fitlifeapi.RoutineExercise{
			{Name: "Bench Press", Sets: 4, Reps: 8},
		},
	})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.HandleNew(rr, requestWithSession(http.MethodPost, "/fitness", payload))

	require.Equal(t, http.StatusCreated, rr.Code)

	var created fitlifeapi.Routine
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Push Day", created.Name)
	assert.Equal(t, "user-1", created.UserID)
}

func TestHandler_HandleNew_EmptyName(t *testing.T) {
	handler := NewHandler(&fakeRoutinesClient{}, cache.New(cache.NewMemoryStore()))

	rr := httptest.NewRecorder()
	handler.HandleNew(rr, requestWithSession(http.MethodPost, "/fitness", []byte(`{"name": ""}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_HandleList_CachesResult(t *testing.T) {
	api := &fakeRoutinesClient{
		routines: []fitlifeapi.Routine{{ID: "r1", Name: "Leg Day"}},
	}
	handler := NewHandler(api, cache.New(cache.NewMemoryStore()))

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.HandleList(rr, requestWithSession(http.MethodGet, "/fitness", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	assert.Equal(t, 1, api.listCalls)
}

func TestHandler_HandleDelete_InvalidatesCache(t *testing.T) {
	api := &fakeRoutinesClient{
		routines: []fitlifeapi.Routine{{ID: "r1", Name: "Leg Day"}},
	}
	localCache := cache.New(cache.NewMemoryStore())
	handler := NewHandler(api, localCache)

	// populate the cache via a list call
	rr := httptest.NewRecorder()
	handler.HandleList(rr, requestWithSession(http.MethodGet, "/fitness", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	req := requestWithSession(http.MethodDelete, "/fitness/r1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "r1"})
	rr = httptest.NewRecorder()
	handler.HandleDelete(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "r1", api.deletedID)

	// next list goes back to the remote API
	rr = httptest.NewRecorder()
	handler.HandleList(rr, requestWithSession(http.MethodGet, "/fitness", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, api.listCalls)
}
