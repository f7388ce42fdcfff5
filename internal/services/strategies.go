package services

import (
	"bus-journey-service/internal/domain"
	"strings"
)

// strategy is a pure function over an immutable route snapshot. Each
// strategy emits at most one candidate per route.
type strategy struct {
	name domain.Strategy
	run  func(routes []routeIndex, src, dst string) []domain.MatchCandidate
}

func (r *Ranker) strategies() []strategy {
	return []strategy{
		{name: domain.StrategyCombined, run: r.combined},
		{name: domain.StrategyIntersection, run: r.intersection},
		{name: domain.StrategyManualSubstring, run: r.manualSubstring},
		{name: domain.StrategySequence, run: r.sequence},
	}
}

// combined matches "{src} {dst}" against each route's stop text.
func (r *Ranker) combined(routes []routeIndex, src, dst string) []domain.MatchCandidate {
	query := strings.TrimSpace(src + " " + dst)

	var out []domain.MatchCandidate
	for i := range routes {
		score, ok := r.matcher.MatchCombined(query, &routes[i])
		if !ok {
			continue
		}
		out = append(out, domain.MatchCandidate{
			Route:    routes[i].route,
			Score:    score,
			Strategy: domain.StrategyCombined,
		})
	}
	return out
}

// intersection matches src and dst independently and keeps routes hit by
// both, scored by the mean of the two.
func (r *Ranker) intersection(routes []routeIndex, src, dst string) []domain.MatchCandidate {
	var out []domain.MatchCandidate
	for i := range routes {
		from := r.matcher.Match(src, &routes[i])
		if from == nil {
			continue
		}
		to := r.matcher.Match(dst, &routes[i])
		if to == nil {
			continue
		}
		out = append(out, domain.MatchCandidate{
			Route:       routes[i].route,
			MatchedStop: from.MatchedStop,
			Score:       (from.Score + to.Score) / 2,
			Strategy:    domain.StrategyIntersection,
		})
	}
	return out
}

// manualSubstring accepts routes whose stop text contains both names, or is
// contained in them, at a fixed near-exact score.
func (r *Ranker) manualSubstring(routes []routeIndex, src, dst string) []domain.MatchCandidate {
	var out []domain.MatchCandidate
	for i := range routes {
		text := routes[i].composite
		if !containsEither(text, src, r.cfg.MinMatchLength) || !containsEither(text, dst, r.cfg.MinMatchLength) {
			continue
		}
		out = append(out, domain.MatchCandidate{
			Route:    routes[i].route,
			Score:    r.cfg.ManualSubstringScore,
			Strategy: domain.StrategyManualSubstring,
		})
	}
	return out
}

// sequence scans the ordered stop names and accepts a route only when src
// is found strictly before dst. Correct order is the strongest signal, so it
// gets the best fixed score.
func (r *Ranker) sequence(routes []routeIndex, src, dst string) []domain.MatchCandidate {
	var out []domain.MatchCandidate
	for i := range routes {
		ix := &routes[i]
		si := firstContaining(ix.names, src, r.cfg.MinMatchLength)
		di := firstContaining(ix.names, dst, r.cfg.MinMatchLength)
		if !validIndexOrder(si, di) {
			continue
		}

		s := ix.stops[si]
		out = append(out, domain.MatchCandidate{
			Route:       ix.route,
			MatchedStop: &s,
			Score:       r.cfg.SequenceScore,
			Strategy:    domain.StrategySequence,
		})
	}
	return out
}

// firstContaining returns the earliest stop in the best containment tier
// for query, so "Thob" lands on "Thob" rather than an earlier "Thob Chauraha".
func firstContaining(names []string, query string, minLen int) int {
	best, bestTier := noStop, tierNone
	for i, n := range names {
		if t := containmentTier(n, query, minLen); t < bestTier {
			best, bestTier = i, t
		}
	}
	return best
}
