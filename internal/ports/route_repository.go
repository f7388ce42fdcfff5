package ports

import (
	"bus-journey-service/internal/domain"
	"context"
)

// Port: a boundary for retrieving the routes eligible for journey matching.
type RouteRepository interface {
	// Return a snapshot of all active routes with their ordered stops.
	FindAllActive(ctx context.Context) ([]domain.Route, error)
}
