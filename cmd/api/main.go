package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"content-service/internal/common/pagination"
	"content-service/internal/config"
	hhttp "content-service/internal/handler/http"
	hauth "content-service/internal/handler/http/auth"
	hcontent "content-service/internal/handler/http/content"
	"content-service/internal/handler/http/requestid"
	"content-service/internal/infra/adapter/persistence/memory"
	pgRepo "content-service/internal/infra/adapter/persistence/postgres"
	sqliteRepo "content-service/internal/infra/adapter/persistence/sqlite"
	"content-service/internal/infra/cache"
	"content-service/internal/infra/db"
	"content-service/internal/infra/seed"
	"content-service/internal/infra/worker"
	"content-service/internal/observability/logging"
	"content-service/internal/observability/tracing"
	"content-service/internal/repository"
	authservice "content-service/internal/service/auth"
	contentUC "content-service/internal/usecase/content"

	_ "content-service/docs" // swagger docs
)

// @title           Content Service API
// @version         1.0
// @description     CRUD REST API for articles (content items).

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token. Send "Bearer {token}" in the Authorization header.

const (
	shutdownTimeout = 10 * time.Second
	statsJobTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// run wires every component and blocks until ctx is cancelled or a component fails.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	tp := initTracing()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	store, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close(logger)

	repo := store.repo
	var redisClient *redis.Client
	if cfg.Cache.Enabled() {
		redisClient = initRedis(ctx, cfg, logger)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("failed to close redis client", slog.Any("error", err))
			}
		}()
		repo = cache.New(repo, redisClient, cfg.Cache.TTL, cache.WithLogger(logger))
	}

	if err := applySeed(ctx, cfg, repo, logger); err != nil {
		return err
	}

	scheduler, err := worker.NewScheduler(cfg.StatsSchedule, &worker.StatsJob{
		Repo:    repo,
		DB:      store.db,
		Timeout: statsJobTimeout,
		Logger:  logger,
	}, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           setupHandler(cfg, logger, repo, store.db, redisClient),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", cfg.AppVersion),
			slog.String("storage", cfg.Storage.Driver),
			slog.Bool("cache", cfg.Cache.Enabled()),
			slog.Bool("jwt", cfg.Auth.JWTEnabled()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

// initTracing installs an in-process tracer provider so request and
// service spans carry real trace ids for log correlation.
func initTracing() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))
	return tp
}

// storage is the selected content store and, for SQL drivers, its pool.
type storage struct {
	repo repository.ContentRepository
	db   *sql.DB
}

func (s storage) Close(logger *slog.Logger) {
	if s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}

// initStorage opens and migrates the configured store.
func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage, error) {
	conn := db.DefaultConnectionConfig()
	conn.MaxOpenConns = cfg.Storage.MaxOpenConns
	conn.MaxIdleConns = cfg.Storage.MaxIdleConns
	conn.ConnMaxLifetime = cfg.Storage.ConnMaxLifetime

	var (
		driver db.Driver
		dsn    string
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		driver, dsn = db.DriverPostgres, cfg.Storage.DatabaseURL
	case config.StorageSQLite:
		driver, dsn = db.DriverSQLite, cfg.Storage.SQLitePath
	default:
		logger.Info("using in-memory storage; content is lost on restart")
		return storage{repo: memory.NewContentRepo()}, nil
	}

	database, err := db.Open(ctx, driver, dsn, conn)
	if err != nil {
		return storage{}, fmt.Errorf("open database: %w", err)
	}
	if err := db.MigrateUp(ctx, database, driver); err != nil {
		_ = database.Close()
		return storage{}, fmt.Errorf("migrate database: %w", err)
	}

	if driver == db.DriverPostgres {
		return storage{repo: pgRepo.NewContentRepo(database), db: database}, nil
	}
	return storage{repo: sqliteRepo.NewContentRepo(database), db: database}, nil
}

// initRedis connects the cache client. An unreachable Redis is logged and
// tolerated: the cache falls back to storage until it recovers.
func initRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable at startup, serving from storage",
			slog.String("addr", cfg.Cache.Addr),
			slog.Any("error", err))
	}
	return client
}

// applySeed loads SEED_FILE into an empty store.
func applySeed(ctx context.Context, cfg *config.Config, repo repository.ContentRepository, logger *slog.Logger) error {
	if cfg.SeedFile == "" {
		return nil
	}
	existing, err := repo.Count(ctx, repository.ContentFilter{})
	if err != nil {
		return fmt.Errorf("count before seed: %w", err)
	}
	if existing > 0 {
		logger.Info("store not empty, skipping seed", slog.Int64("items", existing))
		return nil
	}

	items, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		return err
	}
	n, err := seed.Apply(ctx, repo, items, cfg.DefaultAuthorID)
	if err != nil {
		return err
	}
	logger.Info("seed applied", slog.String("file", cfg.SeedFile), slog.Int("items", n))
	return nil
}

// setupHandler registers every route and wraps the mux in the middleware chain.
func setupHandler(cfg *config.Config, logger *slog.Logger, repo repository.ContentRepository, database *sql.DB, redisClient *redis.Client) http.Handler {
	mux := http.NewServeMux()

	var authn hauth.Authenticator = hauth.BearerAuthenticator{}
	if cfg.Auth.JWTEnabled() {
		authn = hauth.NewJWTAuthenticator(cfg.Auth.JWTSecret)
	} else {
		logger.Warn("JWT_SECRET not set: bearer tokens are checked for shape only")
	}

	var limit func(http.Handler) http.Handler
	if cfg.HTTP.RateLimitEnabled() {
		limit = hhttp.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst).Limit
	} else {
		logger.Warn("rate limiting is disabled")
	}

	hcontent.Register(mux, contentUC.NewService(repo), authn, hcontent.Config{
		Pagination:      pagination.NewConfig(cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit),
		DefaultAuthorID: cfg.DefaultAuthorID,
		Limiter:         limit,
	})

	if cfg.Auth.TokenIssuanceEnabled() {
		authService := authservice.NewAuthService(authservice.NewStaticUserProvider(
			cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.UserID))
		var token http.Handler = hauth.TokenHandler(authService, hauth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))
		if limit != nil {
			token = limit(token)
		}
		mux.Handle("POST /auth/token", token)
	}

	var checkers []hhttp.Checker
	if database != nil {
		checkers = append(checkers, hhttp.SQLChecker{DB: database})
	}
	if redisClient != nil {
		checkers = append(checkers, hhttp.RedisChecker{Client: redisClient})
	}
	mux.Handle("GET /health", &hhttp.HealthHandler{Checkers: checkers, Version: cfg.AppVersion})
	mux.Handle("GET /health/live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return hhttp.Chain(mux,
		hhttp.MetricsMiddleware,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.InputValidation(cfg.HTTP.MaxBodyBytes),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
	)
}
