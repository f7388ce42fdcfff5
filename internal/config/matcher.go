package config

import (
	"bus-journey-service/internal/services"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadEngineConfig starts from the engine defaults, applies the optional YAML
// tuning file at path, then the ENGINE_* environment overrides, and validates
// the result.
func LoadEngineConfig(path string) (services.Config, error) {
	cfg := services.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return services.Config{}, fmt.Errorf("load engine config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return services.Config{}, fmt.Errorf("load engine config: parse %q: %w", path, err)
		}
	}

	cfg.Threshold = GetFloat("ENGINE_THRESHOLD", cfg.Threshold)
	cfg.CombinedThreshold = GetFloat("ENGINE_COMBINED_THRESHOLD", cfg.CombinedThreshold)
	cfg.PerStopMinutes = GetInt("ENGINE_PER_STOP_MINUTES", cfg.PerStopMinutes)
	cfg.MinimumMinutes = GetInt("ENGINE_MINIMUM_MINUTES", cfg.MinimumMinutes)
	cfg.TranslateTimeout = GetDuration("TRANSLATE_TIMEOUT", cfg.TranslateTimeout)
	cfg.TransliterateFallback = GetBool("TRANSLITERATE_FALLBACK", cfg.TransliterateFallback)

	if err := validator.New().Struct(cfg); err != nil {
		return services.Config{}, fmt.Errorf("load engine config: %w", err)
	}

	return cfg, nil
}
