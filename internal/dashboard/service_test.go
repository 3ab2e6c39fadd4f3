package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlife-app/fitlife/internal/cache"
	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
	"github.com/fitlife-app/fitlife/internal/telemetry/metrics"
)

type fakeStatsClient struct {
	records     []fitlifeapi.HealthRecord
	routines    []fitlifeapi.Routine
	goals       []fitlifeapi.Goal
	recordCalls int
	failRecords error
}

func (f *fakeStatsClient) HealthRecords(_ context.Context, _ string, _ fitlifeapi.MetricType) ([]fitlifeapi.HealthRecord, error) {
	f.recordCalls++
	if f.failRecords != nil {
		return nil, f.failRecords
	}
	return f.records, nil
}

func (f *fakeStatsClient) Routines(_ context.Context, _ string) ([]fitlifeapi.Routine, error) {
	return f.routines, nil
}

func (f *fakeStatsClient) Goals(_ context.Context, _ string) ([]fitlifeapi.Goal, error) {
	return f.goals, nil
}

func testService(api *fakeStatsClient) (*Service, *metrics.Manager) {
	metricsManager := metrics.NewTestManager()
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	service := NewService(
		api,
		cache.New(cache.NewMemoryStore()),
		metricsManager,
		WithNowFunc(func() time.Time { return now }),
	)
	return service, metricsManager
}

func TestService_Summary(t *testing.T) {
	api := &fakeStatsClient{
		records: []fitlifeapi.HealthRecord{
			{ID: "r1", Type: fitlifeapi.MetricWeight, Value: 70, Date: "2025-03-12", CreatedAt: time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)},
			{ID: "r2", Type: fitlifeapi.MetricHeight, Value: 175, Date: "2025-03-11", CreatedAt: time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)},
			{ID: "r3", Type: fitlifeapi.MetricSteps, Value: 9500, Date: "2025-03-10", CreatedAt: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)},
		},
		routines: []fitlifeapi.Routine{
			{Name: "Push Day", CreatedAt: time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)},
			{Name: "Old Routine", CreatedAt: time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)},
		},
		goals: []fitlifeapi.Goal{
			{Type: "daily_steps", Status: fitlifeapi.GoalStatusInProgress, CreatedAt: time.Date(2025, 3, 8, 8, 0, 0, 0, time.UTC)},
			{Type: "weight_loss", Status: fitlifeapi.GoalStatusCompleted, CreatedAt: time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC)},
		},
	}
	service, metricsManager := testService(api)

	summary, err := service.Summary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Streak)
	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, 1, summary.WorkoutsThisWeek)
	assert.Equal(t, 1, summary.GoalsInProgress)
	require.Len(t, summary.WeeklyActivity, 7)
	assert.Equal(t, "2025-03-12", summary.WeeklyActivity[6].Date)
	require.NotNil(t, summary.BMI.BMI)
	assert.Equal(t, 22.9, *summary.BMI.BMI)
	assert.Equal(t, "Healthy", summary.BMI.Status)
	require.Len(t, summary.RecentActivity, 5)
	assert.Equal(t, "Logged weight: 70kg", summary.RecentActivity[0].Description)

	// second call hits the cache, not the remote API
	again, err := service.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, summary, again)
	assert.Equal(t, 1, api.recordCalls)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterCacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterCacheMisses))
}

func TestService_Summary_RemoteFails(t *testing.T) {
	api := &fakeStatsClient{failRecords: errors.New("remote down")}
	service, _ := testService(api)

	_, err := service.Summary(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote down")
}

func TestService_WeeklyActivity_EmptyRecords(t *testing.T) {
	service, _ := testService(&fakeStatsClient{})

	points, err := service.WeeklyActivity(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, points, 7)
	for _, p := range points {
		assert.False(t, p.IsActive)
	}
}

func TestService_BMI_NoHeight(t *testing.T) {
	api := &fakeStatsClient{
		records: []fitlifeapi.HealthRecord{
			{ID: "r1", Type: fitlifeapi.MetricWeight, Value: 70, Date: "2025-03-12", CreatedAt: time.Now()},
		},
	}
	service, _ := testService(api)

	result, err := service.BMI(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, result.BMI)
	assert.Empty(t, result.Status)
	require.NotNil(t, result.LatestWeight)
	assert.Equal(t, float64(70), *result.LatestWeight)
}

func TestService_RecentActivity_CachedPerUser(t *testing.T) {
	api := &fakeStatsClient{
		goals: []fitlifeapi.Goal{{Type: "daily_steps", CreatedAt: time.Now()}},
	}
	service, _ := testService(api)

	feed, err := service.RecentActivity(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Set goal: daily_steps", feed[0].Description)

	// a different user does not see user-1's cached feed
	_, err = service.RecentActivity(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, 2, api.recordCalls)
}
