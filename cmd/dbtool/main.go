package main

import (
	"bus-journey-service/internal/adapters/repositories"
	"bus-journey-service/internal/config"
	"bus-journey-service/internal/platform/db"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// dbtool initializes the configured route store and loads the seed file.
func main() {
	seedOnly := flag.Bool("seed-only", false, "skip schema initialization")
	flag.Parse()

	hasEnv := config.LoadDotEnv()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if !hasEnv {
		logger.Info("no .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := initAndSeed(ctx, cfg, *seedOnly, logger); err != nil {
		logger.Fatal("dbtool failed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, cfg *config.ServiceConfig, seedOnly bool, logger *zap.Logger) error {
	if cfg.RouteStore == config.StoreMongo {
		return seedMongo(ctx, cfg, logger)
	}

	dialect, err := repositories.ParseDialect(cfg.RouteStore)
	if err != nil {
		return err
	}
	driver, dsn := db.DriverSQLite, cfg.DBPath
	if dialect == repositories.DialectPostgres {
		driver, dsn = db.DriverPostgres, cfg.DatabaseURL
	}

	conn, err := db.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	if !seedOnly {
		logger.Info("initializing database schema", zap.String("store", cfg.RouteStore))
		if err := repositories.InitSchema(conn); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
		logger.Info("schema ready")
	}

	logger.Info("seeding database", zap.String("path", cfg.SeedPath))
	if err := repositories.SeedFromJSON(conn, dialect, cfg.SeedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logger.Info("seeding complete")

	return nil
}

func seedMongo(ctx context.Context, cfg *config.ServiceConfig, logger *zap.Logger) error {
	bytes, err := os.ReadFile(cfg.SeedPath)
	if err != nil {
		return fmt.Errorf("seed mongo: read %q: %w", cfg.SeedPath, err)
	}

	var data []repositories.RouteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed mongo: parse json: %w", err)
	}

	client, database, err := db.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	logger.Info("seeding mongo", zap.String("db", cfg.MongoDB), zap.Int("routes", len(data)))
	if err := repositories.SeedMongo(ctx, database, data); err != nil {
		return err
	}
	logger.Info("seeding complete")
	return nil
}
