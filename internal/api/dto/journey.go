package dto

import "bus-journey-service/internal/domain"

// MaxLocationSuggestions caps availableLocations in no-match bodies.
const MaxLocationSuggestions = 10

type JourneyRequest struct {
	Source      string `json:"source" form:"source"`
	Destination string `json:"destination" form:"destination"`
}

type VoiceRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

type QueryEcho struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type StopResponse struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Order     int     `json:"order"`
}

type RouteResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"routeName"`
	BusNumber  string         `json:"busNumber"`
	Capacity   int            `json:"capacity"`
	StartPoint *StopResponse  `json:"startPoint,omitempty"`
	EndPoint   *StopResponse  `json:"endPoint,omitempty"`
	Stops      []StopResponse `json:"stops"`
}

type JourneyResponse struct {
	Route                RouteResponse  `json:"route"`
	FromStop             StopResponse   `json:"fromStop"`
	ToStop               StopResponse   `json:"toStop"`
	StopsInBetween       []StopResponse `json:"stopsInBetween"`
	TotalStopsInJourney  int            `json:"totalStopsInJourney"`
	EstimatedJourneyTime string         `json:"estimatedJourneyTime"`
	EstimatedMinutes     int            `json:"estimatedMinutes"`
	DistanceKm           float64        `json:"distanceKm"`
	MatchScore           float64        `json:"matchScore"`
	MatchQuality         string         `json:"matchQuality"`
	Strategy             string         `json:"strategy"`
}

type JourneysFoundResponse struct {
	Success bool              `json:"success"`
	Query   *QueryEcho        `json:"query,omitempty"`
	Count   int               `json:"count"`
	Data    []JourneyResponse `json:"data"`
}

type Suggestions struct {
	AvailableLocations []string `json:"availableLocations"`
	SearchTips         []string `json:"searchTips"`
}

type NoMatchResponse struct {
	Success     bool        `json:"success"`
	Query       *QueryEcho  `json:"query,omitempty"`
	Message     string      `json:"message"`
	Suggestions Suggestions `json:"suggestions"`
}

type LocationsResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Data    []string `json:"data"`
}

func NewStopResponse(s domain.Stop) StopResponse {
	return StopResponse{
		Name:      s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Order:     s.Order,
	}
}

func newStopResponses(stops []domain.Stop) []StopResponse {
	out := make([]StopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, NewStopResponse(s))
	}
	return out
}

func NewRouteResponse(r *domain.Route) RouteResponse {
	if r == nil {
		return RouteResponse{Stops: []StopResponse{}}
	}

	res := RouteResponse{
		ID:        r.ID,
		Name:      r.Name,
		BusNumber: r.VehicleID,
		Capacity:  r.Capacity,
		Stops:     newStopResponses(r.Stops),
	}
	if s, ok := r.Start(); ok {
		start := NewStopResponse(s)
		res.StartPoint = &start
	}
	if s, ok := r.End(); ok {
		end := NewStopResponse(s)
		res.EndPoint = &end
	}
	return res
}

func NewJourneyResponse(j domain.JourneyResult) JourneyResponse {
	return JourneyResponse{
		Route:                NewRouteResponse(j.Route),
		FromStop:             NewStopResponse(j.FromStop),
		ToStop:               NewStopResponse(j.ToStop),
		StopsInBetween:       newStopResponses(j.StopsInBetween),
		TotalStopsInJourney:  j.TotalStopsInJourney,
		EstimatedJourneyTime: j.EstimatedJourneyTime,
		EstimatedMinutes:     j.EstimatedMinutes,
		DistanceKm:           j.DistanceKm,
		MatchScore:           j.MatchScore,
		MatchQuality:         string(j.MatchQuality),
		Strategy:             string(j.Strategy),
	}
}

func NewJourneysFoundResponse(journeys []domain.JourneyResult, q *QueryEcho) JourneysFoundResponse {
	data := make([]JourneyResponse, 0, len(journeys))
	for _, j := range journeys {
		data = append(data, NewJourneyResponse(j))
	}
	return JourneysFoundResponse{Success: true, Query: q, Count: len(data), Data: data}
}

func NewNoMatchResponse(nm *domain.NoMatch, q *QueryEcho) NoMatchResponse {
	res := NoMatchResponse{
		Success: false,
		Query:   q,
		Message: "No direct bus routes found between these locations",
		Suggestions: Suggestions{
			AvailableLocations: []string{},
			SearchTips:         []string{},
		},
	}
	if nm == nil {
		return res
	}

	locs := nm.AvailableLocations
	if len(locs) > MaxLocationSuggestions {
		locs = locs[:MaxLocationSuggestions]
	}
	res.Suggestions.AvailableLocations = append(res.Suggestions.AvailableLocations, locs...)
	res.Suggestions.SearchTips = append(res.Suggestions.SearchTips, nm.SearchTips...)
	return res
}
