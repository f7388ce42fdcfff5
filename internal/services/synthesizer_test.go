package services

import (
	"bus-journey-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeThobToBasni(t *testing.T) {
	r := thobBasni()
	s := NewSynthesizer(DefaultConfig())

	j := s.Synthesize(&r, r.Stops[0], r.Stops[2], 0, domain.StrategySequence)

	require.Len(t, j.StopsInBetween, 1)
	assert.Equal(t, "Dhaundaara", j.StopsInBetween[0].Name)
	assert.Equal(t, 2, j.TotalStopsInJourney)
	assert.Equal(t, 30, j.EstimatedMinutes)
	assert.Equal(t, "30 minutes", j.EstimatedJourneyTime)
	assert.Equal(t, domain.QualityExcellent, j.MatchQuality)
	assert.Equal(t, domain.StrategySequence, j.Strategy)
	assert.Greater(t, j.DistanceKm, 25.0)
	assert.Less(t, j.DistanceKm, 40.0)
}

func TestSynthesizeAdjacentStops(t *testing.T) {
	r := thobBasni()
	s := NewSynthesizer(DefaultConfig())

	j := s.Synthesize(&r, r.Stops[1], r.Stops[2], 0.45, domain.StrategyIntersection)

	assert.Empty(t, j.StopsInBetween)
	assert.NotNil(t, j.StopsInBetween)
	assert.Equal(t, 1, j.TotalStopsInJourney)
	assert.Equal(t, "15 minutes", j.EstimatedJourneyTime)
	assert.Equal(t, domain.QualityGood, j.MatchQuality)
}

func TestSynthesizeSparseOrders(t *testing.T) {
	r := domain.Route{ID: "R", Stops: []domain.Stop{
		{Name: "A", Order: 1},
		{Name: "B", Order: 5},
		{Name: "C", Order: 9},
		{Name: "D", Order: 20},
	}}
	s := NewSynthesizer(DefaultConfig())

	j := s.Synthesize(&r, r.Stops[0], r.Stops[2], 0.65, domain.StrategyCombined)

	assert.Equal(t, []domain.Stop{{Name: "B", Order: 5}}, j.StopsInBetween)
	assert.Equal(t, 8, j.TotalStopsInJourney)
	assert.Equal(t, 0.0, j.DistanceKm)
	assert.Equal(t, domain.QualityFair, j.MatchQuality)
}

func TestEstimateMinutes(t *testing.T) {
	s := NewSynthesizer(DefaultConfig())
	assert.Equal(t, 15, s.EstimateMinutes(0))
	assert.Equal(t, 15, s.EstimateMinutes(1))
	assert.Equal(t, 45, s.EstimateMinutes(3))

	cfg := DefaultConfig()
	cfg.PerStopMinutes = 1
	cfg.MinimumMinutes = 0
	s = NewSynthesizer(cfg)
	assert.Equal(t, "1 minute", formatMinutes(s.EstimateMinutes(1)))
}
