package calendar

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife-app/fitlife/internal/auth"
	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
	"github.com/fitlife-app/fitlife/internal/telemetry/tracing"
	"github.com/fitlife-app/fitlife/pkg"
)

// Calendar data changes with every check-off, so it is always read
// fresh from the remote API, never cached.
type eventsClient interface {
	CreateCalendarEvent(ctx context.Context, event fitlifeapi.NewCalendarEvent) (*fitlifeapi.CalendarEvent, error)
	CalendarEvents(ctx context.Context, userID, date string) ([]fitlifeapi.CalendarEvent, error)
	UpdateCalendarEvent(ctx context.Context, params fitlifeapi.UpdateCalendarEventParams) (*fitlifeapi.CalendarEvent, error)
	DeleteCalendarEvent(ctx context.Context, id string) error
}

type DeleteEventResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	api eventsClient
}

func NewHandler(api eventsClient) *Handler {
	return &Handler{api: api}
}

func (handler *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.new")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var event fitlifeapi.NewCalendarEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Errorf("new calendar event, unmarshal json params: %s", err)
		http.Error(w, "add calendar event failed", http.StatusBadRequest)
		return
	}
	if event.Title == "" || event.Date == "" {
		http.Error(w, "error, event title or date empty", http.StatusBadRequest)
		return
	}
	event.UserID = session.UserID

	added, err := handler.api.CreateCalendarEvent(ctx, event)
	if err != nil {
		log.Errorf("failed to add calendar event [%s] for user [%s]: %s", event.Title, session.UserID, err)
		http.Error(w, "error, failed to add calendar event", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new calendar event: %s", err)
		http.Error(w, "error, failed to add calendar event", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.list")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	events, err := handler.api.CalendarEvents(ctx, session.UserID, r.URL.Query().Get("date"))
	if err != nil {
		log.Errorf("failed to list calendar events for user [%s]: %s", session.UserID, err)
		http.Error(w, "error, failed to list calendar events", http.StatusInternalServerError)
		return
	}

	eventsJson, err := json.Marshal(events)
	if err != nil {
		log.Errorf("failed to marshal calendar events: %s", err)
		http.Error(w, "failed to marshal calendar events", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, eventsJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.update")
	defer span.End()

	if _, ok := auth.SessionFromContext(ctx); !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var params fitlifeapi.UpdateCalendarEventParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("update calendar event, unmarshal json params: %s", err)
		http.Error(w, "update calendar event failed", http.StatusBadRequest)
		return
	}
	if params.ID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	updated, err := handler.api.UpdateCalendarEvent(ctx, params)
	if err != nil {
		log.Errorf("failed to update calendar event %s: %s", params.ID, err)
		http.Error(w, "error, failed to update calendar event", http.StatusInternalServerError)
		return
	}

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("failed to marshal updated calendar event: %s", err)
		http.Error(w, "error, failed to update calendar event", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.delete")
	defer span.End()

	if _, ok := auth.SessionFromContext(ctx); !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.api.DeleteCalendarEvent(ctx, id); err != nil {
		log.Errorf("failed to delete calendar event %s: %s", id, err)
		http.Error(w, "calendar event not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteEventResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
