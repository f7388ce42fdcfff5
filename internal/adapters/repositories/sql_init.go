package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the route schema. The DDL is valid for both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		vehicle_id TEXT NOT NULL DEFAULT '',
		capacity INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS route_stops (
		route_id TEXT NOT NULL REFERENCES routes(route_id) ON DELETE CASCADE,
		stop_order INTEGER NOT NULL,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (route_id, stop_order)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_routes_active
	ON routes(active);
	`

	statements := []string{
		createRoutesQuery,
		createStopsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StopSeed struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Order *int    `json:"order,omitempty"`
}

type RouteSeed struct {
	RouteID   string     `json:"route_id"`
	RouteName string     `json:"route_name"`
	BusNumber string     `json:"bus_number"`
	Capacity  int        `json:"capacity"`
	Active    *bool      `json:"active,omitempty"`
	Stops     []StopSeed `json:"stops"`
}

// Populate the database with routes from a JSON file. Stops without an
// explicit order take their position in the list.
func SeedFromJSON(db *sql.DB, dialect Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed routes: read %q: %w", jsonPath, err)
	}

	var data []RouteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed routes: parse json: %w", err)
	}

	return SeedRoutes(db, dialect, data)
}

func SeedRoutes(db *sql.DB, dialect Dialect, data []RouteSeed) error {
	if db == nil {
		return errors.New("seed routes: DB is nil")
	}

	for i, item := range data {
		if strings.TrimSpace(item.RouteID) == "" {
			return fmt.Errorf("seed routes: item at index %d: route_id cannot be empty", i+1)
		}
		for j, s := range item.Stops {
			if strings.TrimSpace(s.Name) == "" {
				return fmt.Errorf("seed routes: route %q stop at index %d: name cannot be empty", item.RouteID, j+1)
			}
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed routes: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	b := dialect.bind
	routeStmt, err := tx.Prepare(fmt.Sprintf(`
	INSERT INTO routes (route_id, name, vehicle_id, capacity, active)
	VALUES (%s, %s, %s, %s, %s)
	ON CONFLICT (route_id) DO UPDATE
	SET name = EXCLUDED.name,
		vehicle_id = EXCLUDED.vehicle_id,
		capacity = EXCLUDED.capacity,
		active = EXCLUDED.active;
	`, b(1), b(2), b(3), b(4), b(5)))
	if err != nil {
		return fmt.Errorf("seed routes: prepare route insert: %w", err)
	}
	defer routeStmt.Close()

	clearStmt, err := tx.Prepare(fmt.Sprintf(`DELETE FROM route_stops WHERE route_id = %s;`, b(1)))
	if err != nil {
		return fmt.Errorf("seed routes: prepare stop delete: %w", err)
	}
	defer clearStmt.Close()

	stopStmt, err := tx.Prepare(fmt.Sprintf(`
	INSERT INTO route_stops (route_id, stop_order, name, lat, lon)
	VALUES (%s, %s, %s, %s, %s);
	`, b(1), b(2), b(3), b(4), b(5)))
	if err != nil {
		return fmt.Errorf("seed routes: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	for _, r := range data {
		active := true
		if r.Active != nil {
			active = *r.Active
		}

		if _, err := routeStmt.Exec(r.RouteID, strings.TrimSpace(r.RouteName), strings.TrimSpace(r.BusNumber), r.Capacity, active); err != nil {
			return fmt.Errorf("seed routes: insert route_id=%s: %w", r.RouteID, err)
		}
		if _, err := clearStmt.Exec(r.RouteID); err != nil {
			return fmt.Errorf("seed routes: clear stops route_id=%s: %w", r.RouteID, err)
		}

		for pos, s := range r.Stops {
			order := pos
			if s.Order != nil {
				order = *s.Order
			}
			if _, err := stopStmt.Exec(r.RouteID, order, strings.TrimSpace(s.Name), s.Lat, s.Lng); err != nil {
				return fmt.Errorf("seed routes: insert stop route_id=%s order=%d: %w", r.RouteID, order, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed routes: commit tx: %w", err)
	}

	return nil
}
