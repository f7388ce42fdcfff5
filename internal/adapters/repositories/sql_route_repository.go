package repositories

import (
	"bus-journey-service/internal/domain"
	"bus-journey-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLRouteRepository struct {
	db *sql.DB
}

var _ ports.RouteRepository = (*SQLRouteRepository)(nil)

func NewSQLRouteRepository(db *sql.DB) (*SQLRouteRepository, error) {
	if db == nil {
		return nil, errors.New("new route repository: DB is nil")
	}
	return &SQLRouteRepository{db: db}, nil
}

// FindAllActive returns active routes with their stops in travel order.
// Routes come back sorted by id.
func (r *SQLRouteRepository) FindAllActive(ctx context.Context) ([]domain.Route, error) {
	const q = `
	SELECT r.route_id, r.name, r.vehicle_id, r.capacity,
		s.stop_order, s.name, s.lat, s.lon
	FROM routes r
	LEFT JOIN route_stops s ON s.route_id = r.route_id
	WHERE r.active
	ORDER BY r.route_id, s.stop_order;
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find active routes: query: %w", err)
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		var (
			id, name, vehicle string
			capacity          int
			order             sql.NullInt64
			stopName          sql.NullString
			lat, lon          sql.NullFloat64
		)
		if err := rows.Scan(&id, &name, &vehicle, &capacity, &order, &stopName, &lat, &lon); err != nil {
			return nil, fmt.Errorf("find active routes: scan: %w", err)
		}

		if n := len(routes); n == 0 || routes[n-1].ID != id {
			routes = append(routes, domain.Route{
				ID:        id,
				Name:      name,
				VehicleID: vehicle,
				Capacity:  capacity,
				Active:    true,
			})
		}
		if !order.Valid {
			continue
		}

		cur := &routes[len(routes)-1]
		cur.Stops = append(cur.Stops, domain.Stop{
			Name:      stopName.String,
			Latitude:  lat.Float64,
			Longitude: lon.Float64,
			Order:     int(order.Int64),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find active routes: rows: %w", err)
	}

	return routes, nil
}
