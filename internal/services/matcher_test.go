package services

import (
	"bus-journey-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(r domain.Route) routeIndex {
	return newRouteIndex(&r, DefaultConfig().Weights)
}

func TestFieldDistance(t *testing.T) {
	assert.Equal(t, 0.0, fieldDistance("sardarpura", "sardarpura"))
	assert.Equal(t, 0.0, fieldDistance("jalori", "jalori gate"))
	assert.InDelta(t, 1.0/11, fieldDistance("sojti gate", "paota sojati gate sardarpura"), 1e-9)
	assert.InDelta(t, 1.0/9, fieldDistance("sudowala", "thob sudhowala basni"), 1e-9)
	assert.Equal(t, 1.0, fieldDistance("", "thob"))
	assert.Equal(t, 1.0, fieldDistance("thob", ""))
}

func TestWeighted(t *testing.T) {
	assert.Equal(t, 0.0, weighted(0, 1))
	assert.InDelta(t, 0.5, weighted(0, 0.5), 1e-9)
	assert.InDelta(t, 1.0, weighted(1, 0.5), 1e-9)
}

func TestContainsEither(t *testing.T) {
	assert.True(t, containsEither("jalori gate", "jalori", 2))
	assert.True(t, containsEither("jalori", "jalori gate", 2))
	assert.False(t, containsEither("jalori gate", "j", 2))
	assert.False(t, containsEither("", "jalori", 2))
}

func TestMatchExactAndFuzzy(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	r := newRoute("R1", "Thob - Basni", "Thob", "Dhaundaara", "Sudhowala", "Basni")
	ix := indexOf(r)

	c := m.Match("sudhowala", &ix)
	require.NotNil(t, c)
	assert.Equal(t, 0.0, c.Score)
	require.NotNil(t, c.MatchedStop)
	assert.Equal(t, "Sudhowala", c.MatchedStop.Name)

	c = m.Match("sudowala", &ix)
	require.NotNil(t, c)
	assert.InDelta(t, 1.0/9, c.Score, 1e-9)
	assert.Equal(t, "Sudhowala", c.MatchedStop.Name)

	assert.Nil(t, m.Match("ratanada", &ix))
}

func TestMatchIgnoresShortQueries(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	ix := indexOf(newRoute("R1", "Thob - Basni", "Thob", "Basni"))

	assert.Nil(t, m.Match("t", &ix))
	assert.Nil(t, m.Match("", &ix))
}

func TestMatchVehicleIDAloneIsNotEnough(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	r := thobBasni()
	ix := indexOf(r)

	assert.Nil(t, m.Match(canonicalName(r.VehicleID), &ix))
}

func TestMatchCombined(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	ix := indexOf(newRoute("R1", "Thob - Basni", "Thob", "Dhaundaara", "Basni"))

	score, ok := m.MatchCombined("thob basni", &ix)
	assert.True(t, ok)
	assert.Equal(t, 0.0, score)

	_, ok = m.MatchCombined("zzzzzz qqqqqq", &ix)
	assert.False(t, ok)

	empty := indexOf(domain.Route{ID: "E"})
	_, ok = m.MatchCombined("thob", &empty)
	assert.False(t, ok)
}

func TestLocateJourney(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	ix := indexOf(newRoute("R1", "Thob - Basni", "Thob", "Dhaundaara", "Basni"))

	from, to, ok := m.LocateJourney(&ix, "thob", "basni")
	require.True(t, ok)
	assert.Equal(t, "Thob", from.Name)
	assert.Equal(t, "Basni", to.Name)

	_, _, ok = m.LocateJourney(&ix, "thob", "ratanada")
	assert.False(t, ok)
}

func TestLocateJourneyPrefersStopAfterBoarding(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	ix := indexOf(newRoute("LOOP", "Paota Loop", "Paota", "Ratanada", "Sardarpura", "Paota"))

	from, to, ok := m.LocateJourney(&ix, "ratanada", "paota")
	require.True(t, ok)
	assert.Equal(t, 1, from.Order)
	assert.Equal(t, 3, to.Order)

	from, to, ok = m.LocateJourney(&ix, "paota", "sardarpura")
	require.True(t, ok)
	assert.Equal(t, 0, from.Order)
	assert.Equal(t, 2, to.Order)
}

func TestCanonicalNameTransliteratesStoredNames(t *testing.T) {
	got := canonicalName("थोब")
	assert.NotEmpty(t, got)
	assert.True(t, isLatinOnly(got))
	assert.Equal(t, "jalori gate", canonicalName(" Jalori-Gate "))
}

func TestContainmentTier(t *testing.T) {
	assert.Equal(t, tierExact, containmentTier("thob", "thob", 2))
	assert.Equal(t, tierNameContains, containmentTier("thob chauraha", "thob", 2))
	assert.Equal(t, tierQueryContains, containmentTier("jodhpur", "new jodhpur", 2))
	assert.Equal(t, tierNone, containmentTier("thob", "t", 2))
	assert.Equal(t, tierNone, containmentTier("", "thob", 2))
}

func TestLocateJourneyPrefersExactOverContainment(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	ix := indexOf(newRoute("R1", "Thob Line", "Thob Chauraha", "Dhaundaara", "Thob", "Basni"))

	from, to, ok := m.LocateJourney(&ix, "thob", "basni")
	require.True(t, ok)
	assert.Equal(t, 2, from.Order)
	assert.Equal(t, 3, to.Order)

	ix = indexOf(newRoute("R2", "Jodhpur Line", "Jodhpur", "Basni", "New Jodhpur"))
	from, to, ok = m.LocateJourney(&ix, "new jodhpur", "basni")
	require.True(t, ok)
	assert.Equal(t, 2, from.Order)
	assert.Equal(t, 1, to.Order)
	assert.False(t, ValidateSequence(ix.route, from, to))

	from, _, ok = m.LocateJourney(&ix, "jodhpur", "basni")
	require.True(t, ok)
	assert.Equal(t, 0, from.Order)
}
