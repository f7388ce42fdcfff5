package domain

// Strategy identifies which matching strategy produced a candidate.
type Strategy string

const (
	StrategyCombined        Strategy = "combined"
	StrategyIntersection    Strategy = "intersection"
	StrategyManualSubstring Strategy = "manual-substring"
	StrategySequence        Strategy = "sequence"
)

// Rank orders strategies by signal strength; higher wins score ties.
func (s Strategy) Rank() int {
	switch s {
	case StrategySequence:
		return 4
	case StrategyManualSubstring:
		return 3
	case StrategyIntersection:
		return 2
	case StrategyCombined:
		return 1
	default:
		return 0
	}
}

// MatchQuality buckets a match score for display.
type MatchQuality string

const (
	QualityExcellent MatchQuality = "excellent"
	QualityGood      MatchQuality = "good"
	QualityFair      MatchQuality = "fair"
	QualityPoor      MatchQuality = "poor"
)

// QualityFor maps a distance-like score (lower is better) to a quality bucket.
func QualityFor(score float64) MatchQuality {
	switch {
	case score < 0.3:
		return QualityExcellent
	case score < 0.5:
		return QualityGood
	case score < 0.7:
		return QualityFair
	default:
		return QualityPoor
	}
}

// A route that one strategy considered relevant to a query.
// MatchedStop is nil when the hit came from a non-stop field
// such as the route name.
type MatchCandidate struct {
	Route       *Route
	MatchedStop *Stop
	Score       float64
	Strategy    Strategy
}

// The sub-path of a route between two validated stops.
type JourneyResult struct {
	Route                *Route
	FromStop             Stop
	ToStop               Stop
	StopsInBetween       []Stop
	TotalStopsInJourney  int
	EstimatedJourneyTime string
	EstimatedMinutes     int
	DistanceKm           float64
	MatchScore           float64
	MatchQuality         MatchQuality
	Strategy             Strategy
}

// NoMatch is returned instead of an empty result list. It carries stop names
// the caller can offer as corrections.
type NoMatch struct {
	AvailableLocations []string
	SearchTips         []string
}

// Resolution is the outcome of a journey query: either ranked journeys or
// a NoMatch, never both.
type Resolution struct {
	Journeys []JourneyResult
	NoMatch  *NoMatch
}

func (r Resolution) Found() bool { return len(r.Journeys) > 0 }
