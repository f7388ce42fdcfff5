package main

import (
	"bus-journey-service/internal/adapters/repositories"
	"bus-journey-service/internal/adapters/translate"
	"bus-journey-service/internal/api"
	"bus-journey-service/internal/config"
	"bus-journey-service/internal/platform/db"
	"bus-journey-service/internal/ports"
	"bus-journey-service/internal/services"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (route store, translator, caches) behind ports
// and starts the HTTP server.
func main() {
	hasEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if !hasEnv {
		logger.Info("no .env file found (using environment variables)")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.ServiceConfig) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.ServiceConfig, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineCfg, err := config.LoadEngineConfig(cfg.MatcherConfigPath)
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRouteRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	translator, closeTranslator, err := newTranslator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeTranslator()

	engine, err := services.NewEngine(repo, translator, engineCfg, logger)
	if err != nil {
		return err
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(engine, logger, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.RouteStore),
			zap.Bool("translator", translator != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// openRouteRepository selects the route store named by ROUTE_STORE. The
// SQLite store is initialized and seeded on startup for local runs.
func openRouteRepository(
	ctx context.Context,
	cfg *config.ServiceConfig,
	logger *zap.Logger,
) (ports.RouteRepository, func(), error) {
	switch cfg.RouteStore {
	case config.StoreMongo:
		client, database, err := db.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }

		repo, err := repositories.NewMongoRouteRepository(database)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil

	case config.StorePostgres, config.StoreSQLite:
		dialect, err := repositories.ParseDialect(cfg.RouteStore)
		if err != nil {
			return nil, nil, err
		}
		driver, dsn := db.DriverSQLite, cfg.DBPath
		if dialect == repositories.DialectPostgres {
			driver, dsn = db.DriverPostgres, cfg.DatabaseURL
		}

		conn, err := db.Open(driver, dsn)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = conn.Close() }

		if err := repositories.InitSchema(conn); err != nil {
			closeFn()
			return nil, nil, err
		}
		if cfg.SeedOnRun && dialect == repositories.DialectSQLite {
			if err := repositories.SeedFromJSON(conn, dialect, cfg.SeedPath); err != nil {
				logger.Warn("seeding skipped", zap.String("path", cfg.SeedPath), zap.Error(err))
			}
		}

		repo, err := repositories.NewSQLRouteRepository(conn)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("open route repository: unknown store %q", cfg.RouteStore)
	}
}

// newTranslator prefers the translation service. Without one it falls back
// to a fixed table when TRANSLATOR_TABLE is set, and to nil otherwise; the
// engine then relies on local transliteration.
func newTranslator(
	ctx context.Context,
	cfg *config.ServiceConfig,
	logger *zap.Logger,
) (ports.NameTranslator, func(), error) {
	noop := func() {}
	if cfg.TranslatorURL == "" {
		if cfg.TranslatorTablePath == "" {
			return nil, noop, nil
		}
		pairs, err := translate.LoadPairs(cfg.TranslatorTablePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using static translation table",
			zap.String("path", cfg.TranslatorTablePath),
			zap.Int("entries", len(pairs)),
		)
		return translate.NewStaticTranslator(pairs), noop, nil
	}

	httpTr, err := translate.NewHTTPTranslator(cfg.TranslatorURL, cfg.TranslatorAPIKey, logger)
	if err != nil {
		return nil, nil, err
	}

	var (
		cache   ports.TranslationCache
		closeFn = noop
	)
	if cfg.RedisURL != "" {
		client, err := db.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, using in-process translation cache", zap.Error(err))
		} else {
			closeFn = func() { _ = client.Close() }
			if cache, err = translate.NewRedisCache(client); err != nil {
				closeFn()
				return nil, nil, err
			}
		}
	}
	if cache == nil {
		cache = translate.NewMemoryCache(cfg.TranslationCacheTTL, 2*cfg.TranslationCacheTTL)
	}

	tr, err := translate.NewCachedTranslator(httpTr, cache, cfg.TranslationCacheTTL, logger)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return tr, closeFn, nil
}
