package handlers

import (
	"bus-journey-service/internal/api/dto"
	"bus-journey-service/internal/domain"
	"bus-journey-service/internal/services"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JourneyResolver is the engine surface the HTTP layer depends on.
type JourneyResolver interface {
	ResolveJourney(ctx context.Context, source, destination string) domain.Resolution
	AvailableLocations(ctx context.Context, limit int) []string
}

type JourneyHandler struct {
	Resolver JourneyResolver
	Logger   *zap.Logger
}

func NewJourneyHandler(resolver JourneyResolver, logger *zap.Logger) *JourneyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JourneyHandler{Resolver: resolver, Logger: logger}
}

func (h *JourneyHandler) RegisterRoutes(r *gin.RouterGroup) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/journeys", h.Search)
		v1.POST("/journeys", h.Search)
		v1.POST("/voice/journeys", h.Voice)
		v1.GET("/locations", h.Locations)
	}
}

// Search resolves a source/destination pair given as query parameters (GET)
// or a JSON body (POST).
func (h *JourneyHandler) Search(c *gin.Context) {
	var req dto.JourneyRequest

	var err error
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	h.resolve(c, req.Source, req.Destination, nil)
}

// Voice splits a spoken transcript into source and destination and then
// behaves like Search.
func (h *JourneyHandler) Voice(c *gin.Context) {
	var req dto.VoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "transcript is required")
		return
	}

	src, dst, ok := services.ParseVoiceQuery(req.Transcript)
	if !ok {
		requestLogger(c, h.Logger).Info("voice transcript not understood", zap.String("transcript", req.Transcript))
		writeError(c, http.StatusBadRequest, `could not find a source and destination, try "from <place> to <place>"`)
		return
	}

	h.resolve(c, src, dst, &dto.QueryEcho{Source: src, Destination: dst})
}

func (h *JourneyHandler) resolve(c *gin.Context, source, destination string, echo *dto.QueryEcho) {
	if err := services.ValidateQuery(source, destination); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	source = strings.TrimSpace(source)
	destination = strings.TrimSpace(destination)

	res := h.Resolver.ResolveJourney(c.Request.Context(), source, destination)
	if !res.Found() {
		requestLogger(c, h.Logger).Info("no journey found",
			zap.String("source", source),
			zap.String("destination", destination),
		)
		c.JSON(http.StatusOK, dto.NewNoMatchResponse(res.NoMatch, echo))
		return
	}

	c.JSON(http.StatusOK, dto.NewJourneysFoundResponse(res.Journeys, echo))
}

// Locations lists distinct stop names for client-side autocompletion.
func (h *JourneyHandler) Locations(c *gin.Context) {
	locs := h.Resolver.AvailableLocations(c.Request.Context(), 0)
	if locs == nil {
		locs = []string{}
	}
	c.JSON(http.StatusOK, dto.LocationsResponse{Success: true, Count: len(locs), Data: locs})
}
