package services

import (
	"bus-journey-service/internal/domain"
	"bus-journey-service/internal/platform/obs"
	"bus-journey-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrEmptyQuery = errors.New("source and destination are required")
	ErrSameStops  = errors.New("source and destination must be different")
)

// ValidateQuery is the caller-side input check run before ResolveJourney.
func ValidateQuery(source, destination string) error {
	src := strings.TrimSpace(source)
	dst := strings.TrimSpace(destination)
	if src == "" || dst == "" {
		return ErrEmptyQuery
	}
	if strings.EqualFold(src, dst) {
		return ErrSameStops
	}
	return nil
}

// Engine resolves free-text source/destination pairs into ranked journeys.
// It holds no per-query state and is safe for concurrent use.
type Engine struct {
	repo        ports.RouteRepository
	normalizer  *Normalizer
	matcher     *Matcher
	ranker      *Ranker
	synthesizer *Synthesizer
	cfg         Config
	logger      *zap.Logger
}

func NewEngine(
	repo ports.RouteRepository,
	translator ports.NameTranslator,
	cfg Config,
	logger *zap.Logger,
) (*Engine, error) {
	if repo == nil {
		return nil, errors.New("new engine: route repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	matcher := NewMatcher(cfg)
	return &Engine{
		repo:        repo,
		normalizer:  NewNormalizer(translator, cfg, logger),
		matcher:     matcher,
		ranker:      NewRanker(matcher, cfg),
		synthesizer: NewSynthesizer(cfg),
		cfg:         cfg,
		logger:      logger,
	}, nil
}

// ResolveJourney runs the full pipeline: normalize, fetch routes, rank,
// validate order, synthesize. It never returns an error; collaborator
// failures degrade to a NoMatch.
func (e *Engine) ResolveJourney(ctx context.Context, source, destination string) domain.Resolution {
	defer obs.Time(ctx, e.logger, "engine.ResolveJourney")(nil)

	routes := e.loadRoutes(ctx)
	index := buildIndex(routes, e.cfg.Weights)
	if len(index) == 0 {
		return domain.Resolution{NoMatch: noMatch(index, e.cfg.MaxSuggestions)}
	}

	src := e.normalizer.Normalize(ctx, source)
	dst := e.normalizer.Normalize(ctx, destination)

	byID := make(map[string]*routeIndex, len(index))
	for i := range index {
		byID[index[i].route.ID] = &index[i]
	}

	candidates := e.ranker.Rank(ctx, index, src, dst)

	journeys := make([]domain.JourneyResult, 0, min(len(candidates), e.cfg.MaxResults))
	for _, c := range candidates {
		if len(journeys) >= e.cfg.MaxResults {
			break
		}
		ix := byID[c.Route.ID]
		from, to, ok := e.matcher.LocateJourney(ix, src, dst)
		if !ok || !ValidateSequence(c.Route, from, to) {
			continue
		}
		journeys = append(journeys, e.synthesizer.Synthesize(c.Route, *from, *to, c.Score, c.Strategy))
	}

	e.logger.Debug("journey resolved",
		zap.String("source", src),
		zap.String("destination", dst),
		zap.Int("routes", len(index)),
		zap.Int("candidates", len(candidates)),
		zap.Int("journeys", len(journeys)),
	)

	if len(journeys) == 0 {
		return domain.Resolution{NoMatch: noMatch(index, e.cfg.MaxSuggestions)}
	}
	return domain.Resolution{Journeys: journeys}
}

// AvailableLocations lists distinct stop names across active routes.
func (e *Engine) AvailableLocations(ctx context.Context, limit int) []string {
	return availableLocations(buildIndex(e.loadRoutes(ctx), e.cfg.Weights), limit)
}

// loadRoutes fetches the route snapshot. Repository failures and invalid
// routes are logged and skipped.
func (e *Engine) loadRoutes(ctx context.Context) []domain.Route {
	routes, err := e.repo.FindAllActive(ctx)
	if err != nil {
		e.logger.Warn("route repository unavailable, resolving against no routes",
			zap.Error(fmt.Errorf("load routes: %w", err)),
		)
		return nil
	}

	valid := make([]domain.Route, 0, len(routes))
	for _, r := range routes {
		if err := r.Validate(); err != nil {
			e.logger.Warn("skipping invalid route", zap.String("route_id", r.ID), zap.Error(err))
			continue
		}
		valid = append(valid, r)
	}
	return valid
}
