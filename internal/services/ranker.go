package services

import (
	"bus-journey-service/internal/domain"
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Ranker runs every matching strategy over a route snapshot and merges
// their candidates into one deduplicated, score-sorted list.
type Ranker struct {
	matcher *Matcher
	cfg     Config
}

func NewRanker(matcher *Matcher, cfg Config) *Ranker {
	return &Ranker{matcher: matcher, cfg: cfg}
}

// Rank evaluates the strategies concurrently. Strategies share only the
// read-only snapshot, and mergeCandidates does not depend on the order the
// strategy outputs arrive in. The list is not truncated: candidates still
// have to survive stop-order validation before the result cap applies.
func (r *Ranker) Rank(ctx context.Context, routes []routeIndex, src, dst string) []domain.MatchCandidate {
	if len(routes) == 0 {
		return nil
	}

	strategies := r.strategies()
	results := make([][]domain.MatchCandidate, len(strategies))

	g, ctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.run(routes, src, dst)
			return nil
		})
	}
	// A cancelled request still merges whatever finished.
	_ = g.Wait()

	return mergeCandidates(0, results...)
}

// mergeCandidates keeps the best candidate per route, sorts ascending by
// score and truncates to limit.
func mergeCandidates(limit int, sets ...[]domain.MatchCandidate) []domain.MatchCandidate {
	best := make(map[string]domain.MatchCandidate)
	for _, set := range sets {
		for _, c := range set {
			if c.Route == nil {
				continue
			}
			cur, ok := best[c.Route.ID]
			if !ok || better(c, cur) {
				best[c.Route.ID] = c
			}
		}
	}

	out := make([]domain.MatchCandidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		if a.Strategy.Rank() != b.Strategy.Rank() {
			return a.Strategy.Rank() > b.Strategy.Rank()
		}
		if a.Route.Name != b.Route.Name {
			return a.Route.Name < b.Route.Name
		}
		return a.Route.ID < b.Route.ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// better reports whether a should replace b for the same route. Lower score
// wins; on equal scores the stronger strategy wins.
func better(a, b domain.MatchCandidate) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Strategy.Rank() > b.Strategy.Rank()
}

var searchTips = []string{
	"Check the spelling of both stop names",
	"Try a nearby major stop or landmark instead",
	"Use the stop name as written on the bus board",
	"Make sure the bus passes your source stop before the destination",
}

// noMatch builds the suggestion payload from the stop names of all routes,
// in route order, without duplicates.
func noMatch(routes []routeIndex, limit int) *domain.NoMatch {
	tips := make([]string, len(searchTips))
	copy(tips, searchTips)

	return &domain.NoMatch{
		AvailableLocations: availableLocations(routes, limit),
		SearchTips:         tips,
	}
}

func availableLocations(routes []routeIndex, limit int) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	for _, ix := range routes {
		for i, s := range ix.stops {
			if limit > 0 && len(out) >= limit {
				return out
			}
			key := ix.names[i]
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s.Name)
		}
	}
	return out
}
