package services

import (
	"bus-journey-service/internal/domain"
	"fmt"
	"math"
)

// Synthesizer derives journey details for a validated from -> to pair.
type Synthesizer struct {
	perStopMinutes int
	minimumMinutes int
}

func NewSynthesizer(cfg Config) *Synthesizer {
	return &Synthesizer{
		perStopMinutes: cfg.PerStopMinutes,
		minimumMinutes: cfg.MinimumMinutes,
	}
}

// Synthesize assumes ValidateSequence(route, &from, &to) holds.
func (s *Synthesizer) Synthesize(
	route *domain.Route,
	from domain.Stop,
	to domain.Stop,
	score float64,
	strategy domain.Strategy,
) domain.JourneyResult {
	stops := route.OrderedStops()

	between := make([]domain.Stop, 0)
	segment := make([]domain.Stop, 0, len(stops))
	for _, st := range stops {
		if st.Order > from.Order && st.Order < to.Order {
			between = append(between, st)
		}
		if st.Order >= from.Order && st.Order <= to.Order {
			segment = append(segment, st)
		}
	}

	total := to.Order - from.Order
	minutes := s.EstimateMinutes(total)

	return domain.JourneyResult{
		Route:                route,
		FromStop:             from,
		ToStop:               to,
		StopsInBetween:       between,
		TotalStopsInJourney:  total,
		EstimatedJourneyTime: formatMinutes(minutes),
		EstimatedMinutes:     minutes,
		DistanceKm:           segmentDistanceKm(segment),
		MatchScore:           score,
		MatchQuality:         domain.QualityFor(score),
		Strategy:             strategy,
	}
}

// EstimateMinutes is a flat per-stop heuristic with a floor.
func (s *Synthesizer) EstimateMinutes(totalStops int) int {
	return max(totalStops*s.perStopMinutes, s.minimumMinutes)
}

func formatMinutes(m int) string {
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

// segmentDistanceKm sums haversine legs along the segment. Routes recorded
// without coordinates report 0.
func segmentDistanceKm(segment []domain.Stop) float64 {
	var km float64
	for i := 1; i < len(segment); i++ {
		a, b := segment[i-1], segment[i]
		if !hasPosition(a) || !hasPosition(b) {
			return 0
		}
		km += a.Coordinates().DistanceKm(b.Coordinates())
	}
	return math.Round(km*100) / 100
}

func hasPosition(s domain.Stop) bool {
	return s.Latitude != 0 || s.Longitude != 0
}
