package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/fitlife-app/fitlife/internal/cache"
	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
	"github.com/fitlife-app/fitlife/internal/stats"
	"github.com/fitlife-app/fitlife/internal/telemetry/metrics"
	"github.com/fitlife-app/fitlife/internal/telemetry/tracing"
)

const summaryCacheTTL = 2 * time.Minute

type statsClient interface {
	HealthRecords(ctx context.Context, userID string, metricType fitlifeapi.MetricType) ([]fitlifeapi.HealthRecord, error)
	Routines(ctx context.Context, userID string) ([]fitlifeapi.Routine, error)
	Goals(ctx context.Context, userID string) ([]fitlifeapi.Goal, error)
}

// Summary is the aggregate behind the app's home screen: the four stat
// cards plus the histogram, BMI and activity feed.
type Summary struct {
	Streak           int                         `json:"streak"`
	TotalRecords     int                         `json:"totalRecords"`
	WorkoutsThisWeek int                         `json:"workoutsThisWeek"`
	GoalsInProgress  int                         `json:"goalsInProgress"`
	WeeklyActivity   []stats.WeeklyActivityPoint `json:"weeklyActivity"`
	BMI              stats.BMIResult             `json:"bmi"`
	RecentActivity   []stats.ActivityItem        `json:"recentActivity"`
}

type Service struct {
	api            statsClient
	cache          *cache.Cache
	metricsManager *metrics.Manager
	nowFunc        func() time.Time
}

type Option func(*Service)

func WithNowFunc(nowFunc func() time.Time) Option {
	return func(s *Service) {
		s.nowFunc = nowFunc
	}
}

func NewService(
	api statsClient,
	localCache *cache.Cache,
	metricsManager *metrics.Manager,
	opts ...Option,
) *Service {
	s := &Service{
		api:            api,
		cache:          localCache,
		metricsManager: metricsManager,
		nowFunc:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary computes (or serves from cache) the full dashboard aggregate.
func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.summary")
	defer span.End()

	cacheKey := cache.UserKey(cache.KeyDashboardSummary, userID)
	var cached Summary
	if s.cache.Get(cacheKey, &cached) {
		s.metricsManager.CounterCacheHits.Inc()
		return &cached, nil
	}
	s.metricsManager.CounterCacheMisses.Inc()

	records, err := s.api.HealthRecords(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("get health records: %w", err)
	}
	routines, err := s.api.Routines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get routines: %w", err)
	}
	goals, err := s.api.Goals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}

	today := s.nowFunc()
	summary := &Summary{
		Streak:           stats.Streak(records, today),
		TotalRecords:     len(records),
		WorkoutsThisWeek: stats.WorkoutsThisWeek(routines, today),
		GoalsInProgress:  stats.GoalsInProgress(goals),
		WeeklyActivity:   stats.WeeklyActivity(records, today),
		BMI:              stats.BMI(records),
		RecentActivity:   stats.RecentActivity(records, routines, goals),
	}

	s.cache.SetWithTTL(cacheKey, summary, summaryCacheTTL)
	return summary, nil
}

// WeeklyActivity serves just the histogram, for the activity page.
func (s *Service) WeeklyActivity(ctx context.Context, userID string) ([]stats.WeeklyActivityPoint, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.weeklyActivity")
	defer span.End()

	cacheKey := cache.UserKey(cache.KeyWeeklyActivity, userID)
	var cached []stats.WeeklyActivityPoint
	if s.cache.Get(cacheKey, &cached) {
		s.metricsManager.CounterCacheHits.Inc()
		return cached, nil
	}
	s.metricsManager.CounterCacheMisses.Inc()

	records, err := s.api.HealthRecords(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("get health records: %w", err)
	}

	points := stats.WeeklyActivity(records, s.nowFunc())
	s.cache.SetWithTTL(cacheKey, points, summaryCacheTTL)
	return points, nil
}

// BMI serves the latest BMI aggregate, for the health page.
func (s *Service) BMI(ctx context.Context, userID string) (*stats.BMIResult, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.bmi")
	defer span.End()

	cacheKey := cache.UserKey(cache.KeyBMI, userID)
	var cached stats.BMIResult
	if s.cache.Get(cacheKey, &cached) {
		s.metricsManager.CounterCacheHits.Inc()
		return &cached, nil
	}
	s.metricsManager.CounterCacheMisses.Inc()

	records, err := s.api.HealthRecords(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("get health records: %w", err)
	}

	result := stats.BMI(records)
	s.cache.SetWithTTL(cacheKey, result, summaryCacheTTL)
	return &result, nil
}

// RecentActivity serves the merged activity feed.
func (s *Service) RecentActivity(ctx context.Context, userID string) ([]stats.ActivityItem, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.recentActivity")
	defer span.End()

	cacheKey := cache.UserKey(cache.KeyRecentActivity, userID)
	var cached []stats.ActivityItem
	if s.cache.Get(cacheKey, &cached) {
		s.metricsManager.CounterCacheHits.Inc()
		return cached, nil
	}
	s.metricsManager.CounterCacheMisses.Inc()

	records, err := s.api.HealthRecords(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("get health records: %w", err)
	}
	routines, err := s.api.Routines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get routines: %w", err)
	}
	goals, err := s.api.Goals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}

	feed := stats.RecentActivity(records, routines, goals)
	s.cache.SetWithTTL(cacheKey, feed, summaryCacheTTL)
	return feed, nil
}
