package services

import "time"

// FieldWeights scales how much a hit on each searchable field counts.
// Route name and vehicle id are kept only for backward search compatibility
// and weigh less than stop names.
type FieldWeights struct {
	Stop             float64 `yaml:"stop" validate:"gt=0,lte=1"`
	StartDestination float64 `yaml:"startDestination" validate:"gt=0,lte=1"`
	AllStops         float64 `yaml:"allStops" validate:"gt=0,lte=1"`
	FullRoute        float64 `yaml:"fullRoute" validate:"gt=0,lte=1"`
	RouteName        float64 `yaml:"routeName" validate:"gt=0,lte=1"`
	VehicleID        float64 `yaml:"vehicleId" validate:"gt=0,lte=1"`
}

// Config tunes matching, ranking and journey synthesis.
type Config struct {
	// Threshold rejects single-name matches scoring above it.
	Threshold float64 `yaml:"threshold" validate:"gte=0,lte=1"`
	// CombinedThreshold applies to the "{source} {destination}" strategy only.
	CombinedThreshold float64 `yaml:"combinedThreshold" validate:"gte=0,lte=1"`
	MinMatchLength    int     `yaml:"minMatchLength" validate:"gte=1"`

	ManualSubstringScore float64 `yaml:"manualSubstringScore" validate:"gte=0,lte=1"`
	SequenceScore        float64 `yaml:"sequenceScore" validate:"gte=0,lte=1"`

	MaxResults     int `yaml:"maxResults" validate:"gt=0"`
	MaxSuggestions int `yaml:"maxSuggestions" validate:"gt=0"`

	PerStopMinutes int `yaml:"perStopMinutes" validate:"gt=0"`
	MinimumMinutes int `yaml:"minimumMinutes" validate:"gte=0"`

	TranslateTimeout      time.Duration `yaml:"translateTimeout" validate:"gt=0"`
	TransliterateFallback bool          `yaml:"transliterateFallback"`

	Weights FieldWeights `yaml:"weights"`
}

// DefaultConfig returns the canonical tuning: 0.3 for single stop names,
// 0.6 for the combined source+destination text.
func DefaultConfig() Config {
	return Config{
		Threshold:             0.3,
		CombinedThreshold:     0.6,
		MinMatchLength:        2,
		ManualSubstringScore:  0.1,
		SequenceScore:         0,
		MaxResults:            10,
		MaxSuggestions:        20,
		PerStopMinutes:        15,
		MinimumMinutes:        15,
		TranslateTimeout:      3 * time.Second,
		TransliterateFallback: true,
		Weights: FieldWeights{
			Stop:             1.0,
			StartDestination: 1.0,
			AllStops:         0.9,
			FullRoute:        0.8,
			RouteName:        0.6,
			VehicleID:        0.5,
		},
	}
}
