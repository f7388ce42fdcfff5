package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Represents a single named point on a bus route.
// Order is the stop's position in the route; the first stop of a route
// is its start point and the last one its end point.
type Stop struct {
	Name      string
	Latitude  float64
	Longitude float64
	Order     int
}

func (s Stop) Coordinates() Coordinates {
	return Coordinates{Lon: s.Longitude, Lat: s.Latitude}
}

// Represents the path a single bus follows.
// Stops are kept sorted by strictly increasing Order. Names are stored as
// entered by operators and are not normalized at rest.
type Route struct {
	ID        string
	Name      string
	VehicleID string
	Capacity  int
	Active    bool
	Stops     []Stop
}

// Start returns the first stop of the route.
func (r *Route) Start() (Stop, bool) {
	if len(r.Stops) == 0 {
		return Stop{}, false
	}
	return r.Stops[0], true
}

// End returns the last stop of the route.
func (r *Route) End() (Stop, bool) {
	if len(r.Stops) == 0 {
		return Stop{}, false
	}
	return r.Stops[len(r.Stops)-1], true
}

// OrderedStops returns a copy of the stops sorted by Order.
func (r *Route) OrderedStops() []Stop {
	out := make([]Stop, len(r.Stops))
	copy(out, r.Stops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Validate checks the ordering invariant and that every stop is named.
func (r *Route) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("validate route: id must not be empty")
	}

	for i, s := range r.Stops {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("validate route %s: stop #%d has an empty name", r.ID, i+1)
		}
		if i > 0 && s.Order <= r.Stops[i-1].Order {
			return fmt.Errorf(
				"validate route %s: stop %q order %d does not follow %d",
				r.ID, s.Name, s.Order, r.Stops[i-1].Order,
			)
		}
	}

	return nil
}

// StopAt returns the stop with the given order, if present.
func (r *Route) StopAt(order int) (Stop, bool) {
	for _, s := range r.Stops {
		if s.Order == order {
			return s, true
		}
	}
	return Stop{}, false
}
