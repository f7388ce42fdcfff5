package services

import (
	"bus-journey-service/internal/domain"
	"context"
	"errors"
	"time"
)

func newRoute(id, name string, stops ...string) domain.Route {
	r := domain.Route{ID: id, Name: name, VehicleID: "RJ19 " + id, Active: true}
	for i, s := range stops {
		r.Stops = append(r.Stops, domain.Stop{Name: s, Order: i})
	}
	return r
}

func thobBasni() domain.Route {
	return domain.Route{
		ID:        "JDH-101",
		Name:      "Thob - Basni",
		VehicleID: "RJ19 PA 1101",
		Active:    true,
		Stops: []domain.Stop{
			{Name: "Thob", Latitude: 26.1883, Longitude: 72.7437, Order: 0},
			{Name: "Dhaundaara", Latitude: 26.2012, Longitude: 72.8125, Order: 1},
			{Name: "Basni", Latitude: 26.2311, Longitude: 73.0402, Order: 2},
		},
	}
}

type staticRepo struct {
	routes []domain.Route
	err    error
}

func (r staticRepo) FindAllActive(context.Context) ([]domain.Route, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Route, len(r.routes))
	copy(out, r.routes)
	return out, nil
}

type mapTranslator map[string]string

func (m mapTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	out, ok := m[text]
	if !ok {
		return "", errors.New("no translation")
	}
	return out, nil
}

type blockingTranslator struct{}

func (blockingTranslator) Translate(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TranslateTimeout = 50 * time.Millisecond
	return cfg
}
