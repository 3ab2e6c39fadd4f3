package health

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife-app/fitlife/internal/auth"
	"github.com/fitlife-app/fitlife/internal/cache"
	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
	"github.com/fitlife-app/fitlife/internal/telemetry/metrics"
	"github.com/fitlife-app/fitlife/internal/telemetry/tracing"
	"github.com/fitlife-app/fitlife/pkg"
)

const recordsCacheTTL = 5 * time.Minute

type recordsClient interface {
	CreateHealthRecord(ctx context.Context, rec fitlifeapi.NewHealthRecord) (*fitlifeapi.HealthRecord, error)
	CreateHealthRecords(ctx context.Context, recs []fitlifeapi.NewHealthRecord) ([]fitlifeapi.HealthRecord, error)
	UpdateHealthRecord(ctx context.Context, params fitlifeapi.UpdateHealthRecordParams) (*fitlifeapi.HealthRecord, error)
	DeleteHealthRecord(ctx context.Context, id string) error
	HealthRecords(ctx context.Context, userID string, metricType fitlifeapi.MetricType) ([]fitlifeapi.HealthRecord, error)
	HealthStats(ctx context.Context, userID, period string) (*fitlifeapi.HealthStats, error)
}

type DeleteRecordResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	api            recordsClient
	cache          *cache.Cache
	metricsManager *metrics.Manager
}

func NewHandler(api recordsClient, localCache *cache.Cache, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		api:            api,
		cache:          localCache,
		metricsManager: metricsManager,
	}
}

// invalidate drops every cached aggregate derived from this user's
// records; the next read repopulates them from the remote API.
func (handler *Handler) invalidate(userID string) {
	for _, base := range []string{
		cache.KeyHealthRecords,
		cache.KeyDashboardSummary,
		cache.KeyWeeklyActivity,
		cache.KeyBMI,
		cache.KeyRecentActivity,
	} {
		handler.cache.Remove(cache.UserKey(base, userID))
	}
}

func (handler *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.new")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("new health record, read body: %s", err)
		http.Error(w, "add health record failed", http.StatusBadRequest)
		return
	}

	// a bare array body means a bulk check-in
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		handler.handleNewBulk(ctx, w, session.UserID, body)
		return
	}

	var rec fitlifeapi.NewHealthRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		log.Errorf("new health record, unmarshal json params: %s", err)
		http.Error(w, "add health record failed", http.StatusBadRequest)
		return
	}

	if !rec.Type.Valid() {
		http.Error(w, "error, unknown metric type", http.StatusBadRequest)
		return
	}
	rec.UserID = session.UserID

	added, err := handler.api.CreateHealthRecord(ctx, rec)
	if err != nil {
		log.Errorf("failed to add health record [%s] for user [%s]: %s", rec.Type, session.UserID, err)
		http.Error(w, "error, failed to add health record", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterHealthRecords.Inc()
	handler.invalidate(session.UserID)

	log.Debugf("new health record added: [%s] %f: %s", added.Type, added.Value, added.ID)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new health record: %s", err)
		http.Error(w, "error, failed to add health record", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) handleNewBulk(ctx context.Context, w http.ResponseWriter, userID string, body []byte) {
	var recs []fitlifeapi.NewHealthRecord
	if err := json.Unmarshal(body, &recs); err != nil {
		log.Errorf("new health records, unmarshal json params: %s", err)
		http.Error(w, "add health records failed", http.StatusBadRequest)
		return
	}
	if len(recs) == 0 {
		http.Error(w, "error, no records given", http.StatusBadRequest)
		return
	}
	for i := range recs {
		if !recs[i].Type.Valid() {
			http.Error(w, "error, unknown metric type", http.StatusBadRequest)
			return
		}
		recs[i].UserID = userID
	}

	added, err := handler.api.CreateHealthRecords(ctx, recs)
	if err != nil {
		log.Errorf("failed to add %d health records for user [%s]: %s", len(recs), userID, err)
		http.Error(w, "error, failed to add health records", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterHealthRecords.Add(float64(len(added)))
	handler.invalidate(userID)

	log.Debugf("bulk check-in, %d health records added for user [%s]", len(added), userID)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new health records: %s", err)
		http.Error(w, "error, failed to add health records", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.update")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	var params fitlifeapi.UpdateHealthRecordParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("update health record, unmarshal json params: %s", err)
		http.Error(w, "update health record failed", http.StatusBadRequest)
		return
	}
	if params.ID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	updated, err := handler.api.UpdateHealthRecord(ctx, params)
	if err != nil {
		log.Errorf("failed to update health record %s: %s", params.ID, err)
		http.Error(w, "error, failed to update health record", http.StatusInternalServerError)
		return
	}

	handler.invalidate(session.UserID)

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("failed to marshal updated health record: %s", err)
		http.Error(w, "error, failed to update health record", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updatedJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.delete")
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

	if err := handler.api.DeleteHealthRecord(ctx, id); err != nil {
		log.Errorf("failed to delete health record %s: %s", id, err)
		http.Error(w, "health record not deleted", http.StatusInternalServerError)
		return
	}

	handler.invalidate(session.UserID)

	deleteRespJson, err := json.Marshal(DeleteRecordResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.list")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	metricType := fitlifeapi.MetricType(r.URL.Query().Get("type"))
	if metricType != "" && !metricType.Valid() {
		http.Error(w, "error, unknown metric type", http.StatusBadRequest)
		return
	}

	// only the unfiltered list is cached
	cacheKey := cache.UserKey(cache.KeyHealthRecords, session.UserID)
	if metricType == "" {
		var cached []fitlifeapi.HealthRecord
		if handler.cache.Get(cacheKey, &cached) {
			handler.metricsManager.CounterCacheHits.Inc()
			handler.writeRecords(w, cached)
			return
		}
		handler.metricsManager.CounterCacheMisses.Inc()
	}

	records, err := handler.api.HealthRecords(ctx, session.UserID, metricType)
	if err != nil {
		log.Errorf("failed to list health records for user [%s]: %s", session.UserID, err)
		http.Error(w, "error, failed to list health records", http.StatusInternalServerError)
		return
	}

	if metricType == "" {
		handler.cache.SetWithTTL(cacheKey, records, recordsCacheTTL)
	}
	handler.writeRecords(w, records)
}

func (handler *Handler) writeRecords(w http.ResponseWriter, records []fitlifeapi.HealthRecord) {
	recordsJson, err := json.Marshal(records)
	if err != nil {
		log.Errorf("failed to marshal health records: %s", err)
		http.Error(w, "failed to marshal health records", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, recordsJson)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.stats")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}

	stats, err := handler.api.HealthStats(ctx, session.UserID, period)
	if err != nil {
		log.Errorf("failed to get health stats for user [%s]: %s", session.UserID, err)
		http.Error(w, "error, failed to get health stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal health stats: %s", err)
		http.Error(w, "failed to marshal health stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, statsJson)
}
