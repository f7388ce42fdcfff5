package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends accepted by ROUTE_STORE.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// ServiceConfig holds process-level settings read from the environment.
type ServiceConfig struct {
	Port      string
	AppEnv    string
	SeedPath  string
	SeedOnRun bool

	RouteStore  string
	DBPath      string
	DatabaseURL string
	MongoURI    string
	MongoDB     string

	TranslatorURL       string
	TranslatorAPIKey    string
	TranslatorTablePath string
	RedisURL            string
	TranslationCacheTTL time.Duration

	CORSOrigins       []string
	MatcherConfigPath string
}

// LoadDotEnv loads a .env file when present. A missing file is not an error.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads the service configuration from environment variables.
func Load() (*ServiceConfig, error) {
	cfg := &ServiceConfig{
		Port:      Get("PORT", "8080"),
		AppEnv:    Get("APP_ENV", "production"),
		SeedPath:  Get("SEED_PATH", "data/seeds/routes.json"),
		SeedOnRun: GetBool("SEED_ON_START", true),

		RouteStore:  strings.ToLower(Get("ROUTE_STORE", StoreSQLite)),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MongoURI:    Get("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     Get("MONGO_DB", "bustracker"),

		TranslatorURL:       os.Getenv("TRANSLATOR_URL"),
		TranslatorAPIKey:    os.Getenv("TRANSLATOR_API_KEY"),
		TranslatorTablePath: os.Getenv("TRANSLATOR_TABLE"),
		RedisURL:            os.Getenv("REDIS_URL"),
		TranslationCacheTTL: GetDuration("TRANSLATION_CACHE_TTL", 24*time.Hour),

		CORSOrigins:       GetList("CORS_ORIGINS", []string{"*"}),
		MatcherConfigPath: os.Getenv("MATCHER_CONFIG"),
	}

	switch cfg.RouteStore {
	case StoreSQLite:
	case StorePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, fmt.Errorf("load config: DATABASE_URL is required for ROUTE_STORE=%s", cfg.RouteStore)
		}
	case StoreMongo:
		if strings.TrimSpace(cfg.MongoURI) == "" {
			return nil, fmt.Errorf("load config: MONGO_URI is required for ROUTE_STORE=%s", cfg.RouteStore)
		}
	default:
		return nil, fmt.Errorf("load config: unknown ROUTE_STORE %q", cfg.RouteStore)
	}

	return cfg, nil
}

func (c *ServiceConfig) IsDevelopment() bool { return c.AppEnv == "development" }

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func GetBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// GetList splits a comma separated variable, dropping empty items.
func GetList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}

	out := make([]string, 0, 4)
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
