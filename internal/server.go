package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/fitlife-app/fitlife/internal/ai"
	"github.com/fitlife-app/fitlife/internal/auth"
	"github.com/fitlife-app/fitlife/internal/cache"
	"github.com/fitlife-app/fitlife/internal/calendar"
	"github.com/fitlife-app/fitlife/internal/config"
	"github.com/fitlife-app/fitlife/internal/dashboard"
	"github.com/fitlife-app/fitlife/internal/fitlifeapi"
	"github.com/fitlife-app/fitlife/internal/fitness"
	"github.com/fitlife-app/fitlife/internal/goals"
	"github.com/fitlife-app/fitlife/internal/health"
	"github.com/fitlife-app/fitlife/internal/middleware"
	"github.com/fitlife-app/fitlife/internal/telemetry/metrics"
	"github.com/fitlife-app/fitlife/internal/telemetry/tracing"
	"github.com/fitlife-app/fitlife/internal/users"
	"github.com/fitlife-app/fitlife/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config     *config.Config
	apiClient  *fitlifeapi.Client
	localCache *cache.Cache

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("fitlife", "companion", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitlife-companion", rdb)
	if err != nil {
		return nil, err
	}

	apiClient := fitlifeapi.NewClient(params.Config.FitLifeAPIBaseURL)

	authService := auth.NewService(apiClient, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	localCache, err := newLocalCache(params.Config, rdb)
	if err != nil {
		return nil, fmt.Errorf("new local cache: %w", err)
	}

	return &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
		apiClient:   apiClient,
		localCache:  localCache,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// newLocalCache picks the obfuscated cache's backing store from config.
func newLocalCache(cfg *config.Config, rdb *redis.Client) (*cache.Cache, error) {
	switch cfg.CacheBackend {
	case "", "memory":
		return cache.New(cache.NewMemoryStore()), nil
	case "file":
		store, err := cache.NewFileStore(cfg.CacheFilePath)
		if err != nil {
			return nil, err
		}
		return cache.New(store), nil
	case "freecache":
		return cache.New(cache.NewFreecacheStore(32 * 1024 * 1024)), nil
	case "redis":
		return cache.New(cache.NewRedisStore(rdb)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.CacheBackend)
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitlife-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "FitLife companion service")
	}).Methods("GET", "OPTIONS").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET", "OPTIONS").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	authHandler := auth.NewHandler(s.authService)
	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.Use(middleware.RateLimit(
		reqRateLimiter, "login", s.config.LoginRateLimitAllowedPerMin, s.metricsManager,
	))
	authRouter.HandleFunc("/login", authHandler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/register", authHandler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	authRouter.HandleFunc("/logout", authHandler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")

	healthHandler := health.NewHandler(s.apiClient, s.localCache, s.metricsManager)
	r.HandleFunc("/health", healthHandler.HandleNew).Methods("POST", "OPTIONS").Name("new-health-record")
	r.HandleFunc("/health", healthHandler.HandleList).Methods("GET", "OPTIONS").Name("list-health-records")
	r.HandleFunc("/health", healthHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-health-record")
	r.HandleFunc("/health/stats", healthHandler.HandleStats).Methods("GET", "OPTIONS").Name("health-stats")
	r.HandleFunc("/health/{id}", healthHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-health-record")

	fitnessHandler := fitness.NewHandler(s.apiClient, s.localCache)
	r.HandleFunc("/fitness", fitnessHandler.HandleNew).Methods("POST", "OPTIONS").Name("new-routine")
	r.HandleFunc("/fitness", fitnessHandler.HandleList).Methods("GET", "OPTIONS").Name("list-routines")
	r.HandleFunc("/fitness", fitnessHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-routine")
	r.HandleFunc("/fitness/{id}", fitnessHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-routine")

	goalsHandler := goals.NewHandler(s.apiClient, s.localCache)
	r.HandleFunc("/goals", goalsHandler.HandleNew).Methods("POST", "OPTIONS").Name("new-goal")
	r.HandleFunc("/goals", goalsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-goals")
	r.HandleFunc("/goals", goalsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-goal")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-goal")

	calendarHandler := calendar.NewHandler(s.apiClient)
	r.HandleFunc("/calendar", calendarHandler.HandleNew).Methods("POST", "OPTIONS").Name("new-event")
	r.HandleFunc("/calendar", calendarHandler.HandleList).Methods("GET", "OPTIONS").Name("list-events")
	r.HandleFunc("/calendar", calendarHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-event")
	r.HandleFunc("/calendar/{id}", calendarHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-event")

	usersHandler := users.NewHandler(s.apiClient, s.localCache)
	r.HandleFunc("/users/profile", usersHandler.HandleCreate).Methods("POST", "OPTIONS").Name("create-profile")
	r.HandleFunc("/users/profile", usersHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/users/profile", usersHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-profile")

	aiHandler := ai.NewHandler(s.apiClient, s.metricsManager)
	aiRouter := r.PathPrefix("/ai").Subrouter()
	aiRouter.Use(middleware.RateLimit(
		reqRateLimiter, "ai", s.config.AIRateLimitAllowedPerMin, s.metricsManager,
	))
	aiRouter.HandleFunc("/food", aiHandler.HandleAnalyzeFood).Methods("POST", "OPTIONS").Name("analyze-food")
	aiRouter.HandleFunc("/nutrition/{barcode}", aiHandler.HandleNutrition).Methods("GET", "OPTIONS").Name("nutrition")
	aiRouter.HandleFunc("/insight", aiHandler.HandleInsight).Methods("POST", "OPTIONS").Name("health-insight")

	dashboardHandler := dashboard.NewHandler(
		dashboard.NewService(s.apiClient, s.localCache, s.metricsManager),
	)
	r.HandleFunc("/dashboard/summary", dashboardHandler.HandleSummary).Methods("GET", "OPTIONS").Name("dashboard-summary")
	r.HandleFunc("/dashboard/weekly", dashboardHandler.HandleWeeklyActivity).Methods("GET", "OPTIONS").Name("dashboard-weekly")
	r.HandleFunc("/dashboard/bmi", dashboardHandler.HandleBMI).Methods("GET", "OPTIONS").Name("dashboard-bmi")
	r.HandleFunc("/dashboard/activity", dashboardHandler.HandleRecentActivity).Methods("GET", "OPTIONS").Name("dashboard-activity")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("fitlife service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}
