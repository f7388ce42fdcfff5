package services

import "bus-journey-service/internal/domain"

// ValidateSequence reports whether a journey from -> to is travelable on
// route: both stops must be on it and from must come strictly before to.
func ValidateSequence(route *domain.Route, from, to *domain.Stop) bool {
	if route == nil || from == nil || to == nil {
		return false
	}
	if !onRoute(route, from) || !onRoute(route, to) {
		return false
	}
	return from.Order < to.Order
}

func onRoute(route *domain.Route, s *domain.Stop) bool {
	got, ok := route.StopAt(s.Order)
	return ok && got.Name == s.Name
}

// validIndexOrder is the positional form used while scanning stop lists.
func validIndexOrder(srcIdx, dstIdx int) bool {
	return srcIdx != noStop && dstIdx != noStop && srcIdx < dstIdx
}
