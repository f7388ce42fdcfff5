package services

import (
	"bus-journey-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSequence(t *testing.T) {
	r := thobBasni()
	thob, dhaundaara, basni := r.Stops[0], r.Stops[1], r.Stops[2]
	stranger := domain.Stop{Name: "Paota", Order: 1}

	cases := []struct {
		name     string
		route    *domain.Route
		from, to *domain.Stop
		want     bool
	}{
		{name: "forward", route: &r, from: &thob, to: &basni, want: true},
		{name: "adjacent", route: &r, from: &dhaundaara, to: &basni, want: true},
		{name: "reversed", route: &r, from: &basni, to: &thob, want: false},
		{name: "same stop", route: &r, from: &thob, to: &thob, want: false},
		{name: "stop not on route", route: &r, from: &thob, to: &stranger, want: false},
		{name: "nil from", route: &r, from: nil, to: &basni, want: false},
		{name: "nil to", route: &r, from: &thob, to: nil, want: false},
		{name: "nil route", route: nil, from: &thob, to: &basni, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateSequence(tc.route, tc.from, tc.to))
		})
	}
}

func TestValidIndexOrder(t *testing.T) {
	assert.True(t, validIndexOrder(0, 2))
	assert.False(t, validIndexOrder(2, 0))
	assert.False(t, validIndexOrder(1, 1))
	assert.False(t, validIndexOrder(noStop, 2))
	assert.False(t, validIndexOrder(0, noStop))
}
