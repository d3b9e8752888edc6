package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"notes-backend/internal/config"
	pgRepo "notes-backend/internal/infra/adapter/persistence/postgres"
	"notes-backend/internal/infra/db"
	"notes-backend/internal/infra/identity"
	"notes-backend/internal/infra/summarizer"
	"notes-backend/internal/infra/worker"
	"notes-backend/internal/observability/logging"
	"notes-backend/internal/observability/slo"
	"notes-backend/internal/observability/tracing"
	"notes-backend/internal/resilience/circuitbreaker"
	envcfg "notes-backend/pkg/config"

	noteUC "notes-backend/internal/usecase/note"

	hhttp "notes-backend/internal/handler/http"
	hauth "notes-backend/internal/handler/http/auth"
	"notes-backend/internal/handler/http/middleware"
	hnote "notes-backend/internal/handler/http/note"
	"notes-backend/internal/handler/http/requestid"
	authservice "notes-backend/internal/service/auth"

	_ "notes-backend/docs" // swagger docs
)

// @title           Notes API
// @version         1.0
// @description     Personal notes with owner-scoped CRUD, search and extractive summaries.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token issued by /auth/login, sent as "Bearer {token}".

const (
	maxRequestBody       = 1 << 20
	noteRequestTimeout   = 10 * time.Second
	limiterCleanupPeriod = time.Minute
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	securityCfg, err := config.LoadSecurityConfig(appCfg.SecurityConfigPath)
	if err != nil {
		logger.Error("failed to load security configuration", slog.Any("error", err))
		os.Exit(1)
	}

	tp := initTracing(appCfg.Version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components := setupServer(logger, database, appCfg, securityCfg)
	runServer(logger, components, appCfg)
}

// initTracing installs the global tracer provider. Spans are sampled at
// TRACE_SAMPLE_RATIO; no exporter is configured unless one is added here.
func initTracing(version string) *sdktrace.TracerProvider {
	tp := tracing.NewProvider(tracing.ProviderConfig{
		ServiceName: "notes-api",
		Version:     version,
		SampleRatio: envcfg.GetEnvFloat("TRACE_SAMPLE_RATIO", 1),
	})
	tracing.Install(tp)
	return tp
}

// initDatabase opens the connection pool and applies migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.OpenFromEnv(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// ServerComponents holds what the server needs to run and to clean up.
type ServerComponents struct {
	Handler     http.Handler
	AuthLimiter *middleware.RateLimiter
	Scheduler   *worker.Scheduler
}

// setupServer builds the services, routes and middleware chain.
func setupServer(logger *slog.Logger, database *sql.DB, appCfg *config.AppConfig, securityCfg *config.SecurityConfig) *ServerComponents {
	guarded := circuitbreaker.NewGuardedDB(database)
	noteRepo := pgRepo.NewNoteRepo(guarded)
	userRepo := pgRepo.NewUserRepo(guarded)

	idClient := identity.NewClient(identity.Config{
		BaseURL:   appCfg.Identity.URL,
		APIKey:    appCfg.Identity.APIKey,
		Timeout:   appCfg.Identity.Timeout,
		RateLimit: appCfg.Identity.RateLimit,
		Burst:     appCfg.Identity.Burst,
	})

	var verifier authservice.TokenVerifier
	if appCfg.Identity.JWTSecret != "" {
		verifier = identity.NewJWTVerifier(appCfg.Identity.JWTSecret)
		logger.Info("token verification: local JWT")
	} else {
		verifier = identity.NewRemoteVerifier(idClient)
		logger.Info("token verification: identity provider")
	}

	authService := authservice.NewAuthService(idClient, verifier, userRepo, authservice.CredentialRequirements{
		MinPasswordLength: securityCfg.GetMinPasswordLength(),
	})
	noteService := noteUC.NewService(noteRepo, summarizer.NewExtractive(), securityCfg.GetSummaryPolicy())

	proxyTrust, err := middleware.LoadProxyTrust()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if proxyTrust.Enabled {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyTrust.Proxies)))
	}
	authLimiter := middleware.NewRateLimiter(middleware.LoadAuthRateLimitConfig(), middleware.NewIPExtractor(proxyTrust))

	scheduler := setupScheduler(logger, appCfg, noteRepo, database)

	rootMux := setupRoutes(database, appCfg.Version, idClient, authService, noteService, authLimiter, securityCfg)
	handler := applyMiddleware(logger, rootMux)

	return &ServerComponents{
		Handler:     handler,
		AuthLimiter: authLimiter,
		Scheduler:   scheduler,
	}
}

// setupScheduler registers the periodic gauge refresh jobs. The slo job is
// not run at startup so its first window starts with the process.
func setupScheduler(logger *slog.Logger, appCfg *config.AppConfig, notes worker.NoteCounter, database *sql.DB) *worker.Scheduler {
	cfg := worker.DefaultConfig()
	cfg.Schedule = appCfg.MetricsRefreshSchedule
	cfg.Timezone = envcfg.GetEnvString("WORKER_TIMEZONE", cfg.Timezone)

	scheduler, err := worker.NewScheduler(cfg, logger)
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	if err := scheduler.AddJob("notes_total", worker.RefreshNotesTotal(notes)); err != nil {
		logger.Error("failed to register job", slog.Any("error", err))
		os.Exit(1)
	}
	if err := scheduler.AddJob("db_pool_stats", worker.RefreshPoolStats(database)); err != nil {
		logger.Error("failed to register job", slog.Any("error", err))
		os.Exit(1)
	}
	if err := scheduler.AddJob("slo", worker.RefreshSLO(slo.NewTracker(nil))); err != nil {
		logger.Error("failed to register job", slog.Any("error", err))
		os.Exit(1)
	}
	return scheduler
}

// setupRoutes registers every route on a single mux.
// Infrastructure routes are open; auth and note routes go through Authz,
// which lets the configured public endpoints (signup, login) pass.
func setupRoutes(
	database *sql.DB,
	version string,
	idClient *identity.Client,
	authService *authservice.AuthService,
	noteService *noteUC.Service,
	authLimiter *middleware.RateLimiter,
	securityCfg *config.SecurityConfig,
) *http.ServeMux {
	authz := hauth.Authz(authService, hauth.NewPublicEndpoints(securityCfg.GetPublicEndpoints()))

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", hhttp.RootHandler())
	mux.Handle("/health", &hhttp.HealthHandler{
		DB:          database,
		Version:     version,
		Identity:    idClient,
		AuthLimiter: authLimiter,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.Handle("POST /auth/signup", authz(authLimiter.Middleware(hauth.SignupHandler(authService))))
	mux.Handle("POST /auth/login", authz(authLimiter.Middleware(hauth.LoginHandler(authService))))

	hnote.Register(mux, noteService, authz, hhttp.Timeout(noteRequestTimeout))

	return mux
}

// applyMiddleware wraps the mux with the shared middleware chain.
// Order: CORS → Request ID → Recovery → Logging → Input validation → Body limit → Tracing → Metrics.
// Tracing and metrics sit directly around the mux so they can read the matched route pattern.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	corsCfg, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	corsCfg.Logger = logger
	if corsCfg.Enabled() {
		logger.Info("CORS enabled",
			slog.Any("allowed_origins", corsCfg.AllowedOrigins),
			slog.Any("allowed_methods", corsCfg.AllowedMethods),
			slog.Int("max_age", corsCfg.MaxAge))
	}

	return hhttp.Chain(handler,
		middleware.CORS(*corsCfg),
		requestid.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.InputValidation(),
		hhttp.LimitRequestBody(maxRequestBody),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
	)
}

// runServer starts the HTTP server and background work, then shuts both
// down on SIGINT or SIGTERM.
func runServer(logger *slog.Logger, components *ServerComponents, appCfg *config.AppConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go components.AuthLimiter.Run(ctx, limiterCleanupPeriod)

	// Populate gauges before the first scrape.
	for _, job := range []string{"notes_total", "db_pool_stats"} {
		if err := components.Scheduler.RunNow(ctx, job); err != nil {
			logger.Warn("initial job run failed", slog.String("job", job))
		}
	}
	components.Scheduler.Start(ctx)

	srv := &http.Server{
		Addr:              appCfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", appCfg.Addr),
			slog.String("version", appCfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	if err := components.Scheduler.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler did not stop in time", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
