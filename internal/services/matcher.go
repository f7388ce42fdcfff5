package services

import (
	"bus-journey-service/internal/domain"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/mozillazg/go-unidecode"
)

const noStop = -1

// searchField is one searchable projection of a route.
type searchField struct {
	text   string
	weight float64
	stop   int // index into routeIndex.stops, or noStop
}

// routeIndex holds the precomputed, folded search text of one route.
// It is built once per resolution and never mutated afterwards.
type routeIndex struct {
	route     *domain.Route
	stops     []domain.Stop
	names     []string
	composite string
	fields    []searchField
}

func newRouteIndex(r *domain.Route, w FieldWeights) routeIndex {
	stops := r.OrderedStops()
	names := make([]string, len(stops))
	for i, s := range stops {
		names[i] = canonicalName(s.Name)
	}

	composite := strings.Join(names, " ")
	fields := make([]searchField, 0, len(names)+5)
	for i, n := range names {
		fields = append(fields, searchField{text: n, weight: w.Stop, stop: i})
	}

	if len(names) > 0 {
		fields = append(fields, searchField{
			text:   names[0] + " " + names[len(names)-1],
			weight: w.StartDestination,
			stop:   noStop,
		})
	}

	fields = append(fields,
		searchField{text: composite, weight: w.AllStops, stop: noStop},
		searchField{text: strings.TrimSpace(canonicalName(r.Name) + " " + composite), weight: w.FullRoute, stop: noStop},
		searchField{text: canonicalName(r.Name), weight: w.RouteName, stop: noStop},
		searchField{text: canonicalName(r.VehicleID), weight: w.VehicleID, stop: noStop},
	)

	return routeIndex{
		route:     r,
		stops:     stops,
		names:     names,
		composite: composite,
		fields:    fields,
	}
}

func buildIndex(routes []domain.Route, w FieldWeights) []routeIndex {
	out := make([]routeIndex, 0, len(routes))
	for i := range routes {
		out = append(out, newRouteIndex(&routes[i], w))
	}
	return out
}

// canonicalName folds a stored stop or route name. Names stored in a
// non-Latin script are transliterated so they compare with normalized queries.
func canonicalName(s string) string {
	f := foldText(s)
	if hasNonLatin(f) {
		if t := foldText(unidecode.Unidecode(f)); t != "" {
			return t
		}
	}
	return f
}

// Matcher scores normalized queries against routes. Scores are distances:
// 0 is a perfect hit, 1 is no resemblance.
type Matcher struct {
	threshold         float64
	combinedThreshold float64
	minLen            int
}

func NewMatcher(cfg Config) *Matcher {
	return &Matcher{
		threshold:         cfg.Threshold,
		combinedThreshold: cfg.CombinedThreshold,
		minLen:            cfg.MinMatchLength,
	}
}

// Match scores query against every searchable field of the route and
// returns the best weighted hit, or nil when nothing is under the threshold.
func (m *Matcher) Match(query string, ix *routeIndex) *domain.MatchCandidate {
	if !m.usable(query) {
		return nil
	}

	best := 1.0
	for _, f := range ix.fields {
		if f.text == "" {
			continue
		}
		s := weighted(fieldDistance(query, f.text), f.weight)
		if s < best {
			best = s
		}
	}
	if best > m.threshold {
		return nil
	}

	c := &domain.MatchCandidate{Route: ix.route, Score: best}
	if i, _, ok := m.bestStop(query, ix, noStop); ok {
		s := ix.stops[i]
		c.MatchedStop = &s
	}
	return c
}

// MatchCombined scores a multi-token query against the route's stop text.
// Each token is scored on its own and the mean is used.
func (m *Matcher) MatchCombined(query string, ix *routeIndex) (float64, bool) {
	if ix.composite == "" {
		return 1, false
	}

	var sum float64
	var n int
	for _, tok := range strings.Fields(query) {
		if !m.usable(tok) {
			continue
		}
		sum += fieldDistance(tok, ix.composite)
		n++
	}
	if n == 0 {
		return 1, false
	}

	score := sum / float64(n)
	return score, score <= m.combinedThreshold
}

// LocateJourney finds the boarding and alighting stops for src and dst on
// the route. The boarding stop is the best match for src (earliest on ties);
// among equally good matches for dst, one after the boarding stop is
// preferred so looping routes resolve in travel order.
func (m *Matcher) LocateJourney(ix *routeIndex, src, dst string) (from, to *domain.Stop, ok bool) {
	fi, _, ok := m.bestStop(src, ix, noStop)
	if !ok {
		return nil, nil, false
	}
	ti, _, ok := m.bestStop(dst, ix, fi)
	if !ok {
		return nil, nil, false
	}

	f, t := ix.stops[fi], ix.stops[ti]
	return &f, &t, true
}

// Stop name hits are ranked in tiers. An exact name beats a stop whose
// name contains the query, which beats a query that contains the stop name.
// Fuzzy hits rank last.
const (
	tierExact = iota
	tierNameContains
	tierQueryContains
	tierFuzzy
	tierNone
)

var tierScores = [...]float64{
	tierExact:         0,
	tierNameContains:  0.05,
	tierQueryContains: 0.1,
}

// containmentTier classifies how name relates to query without edit
// distance. Either side must be at least minLen runes to count.
func containmentTier(name, query string, minLen int) int {
	switch {
	case name == "" || query == "":
		return tierNone
	case name == query:
		return tierExact
	case utf8.RuneCountInString(query) >= minLen && strings.Contains(name, query):
		return tierNameContains
	case utf8.RuneCountInString(name) >= minLen && strings.Contains(query, name):
		return tierQueryContains
	}
	return tierNone
}

type stopHit struct {
	tier  int
	score float64
}

func (h stopHit) less(o stopHit) bool {
	if h.tier != o.tier {
		return h.tier < o.tier
	}
	return h.score < o.score
}

// bestStop returns the index of the stop whose name is closest to query.
// When after is a valid index, equal hits are broken in favour of the first
// stop past it; otherwise the earliest stop wins.
func (m *Matcher) bestStop(query string, ix *routeIndex, after int) (int, float64, bool) {
	if !m.usable(query) {
		return noStop, 1, false
	}

	best, bestHit := noStop, stopHit{tier: tierNone, score: 1}
	for i, name := range ix.names {
		h, ok := m.stopDistance(query, name)
		if !ok {
			continue
		}
		switch {
		case best == noStop || h.less(bestHit):
			best, bestHit = i, h
		case h == bestHit && after != noStop && best <= after && i > after:
			best = i
		}
	}

	return best, bestHit.score, best != noStop
}

func (m *Matcher) stopDistance(query, name string) (stopHit, bool) {
	if t := containmentTier(name, query, m.minLen); t != tierNone {
		return stopHit{tier: t, score: tierScores[t]}, true
	}
	if name == "" {
		return stopHit{}, false
	}
	d := fieldDistance(query, name)
	if d > m.threshold {
		return stopHit{}, false
	}
	return stopHit{tier: tierFuzzy, score: d}, true
}

func (m *Matcher) usable(query string) bool {
	return utf8.RuneCountInString(strings.ReplaceAll(query, " ", "")) >= m.minLen
}

// fieldDistance is 0 when text contains query, otherwise the smallest
// normalized edit distance between query and any run of consecutive words
// in text of about the same word count.
func fieldDistance(query, text string) float64 {
	if query == "" || text == "" {
		return 1
	}
	if strings.Contains(text, query) {
		return 0
	}

	best := normalizedDistance(query, text)

	qWords := strings.Fields(query)
	tWords := strings.Fields(text)
	for size := max(1, len(qWords)-1); size <= len(qWords)+1 && size <= len(tWords); size++ {
		for i := 0; i+size <= len(tWords); i++ {
			if d := normalizedDistance(query, strings.Join(tWords[i:i+size], " ")); d < best {
				best = d
			}
		}
	}

	return best
}

func normalizedDistance(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}

// weighted maps a raw distance through a field weight: a perfect hit on a
// low-weight field still costs 1-weight.
func weighted(raw, weight float64) float64 {
	return 1 - (1-raw)*weight
}

// containsEither reports bidirectional containment. The shorter side must
// be at least minLen runes so single letters do not match everything.
func containsEither(a, b string, minLen int) bool {
	if a == "" || b == "" {
		return false
	}
	if utf8.RuneCountInString(b) >= minLen && strings.Contains(a, b) {
		return true
	}
	return utf8.RuneCountInString(a) >= minLen && strings.Contains(b, a)
}
