package service

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"parkfinder/internal/db"
	apierrors "parkfinder/internal/errors"
	"parkfinder/internal/geo"
	"parkfinder/internal/schedule"
)

// DefaultRadiusKm is the fixed search radius around the requested origin.
const DefaultRadiusKm = 5.0

// SpaceStore is the radius query capability the search depends on. Results are
// already filtered to available spaces whose available_from date is not after
// minAvailableFrom, in store-native order.
type SpaceStore interface {
	FindWithinRadius(ctx context.Context, center geo.Point, radiusRadians float64, minAvailableFrom time.Time) ([]db.ParkingSpace, error)
}

type SearchService struct {
	Store    SpaceStore
	RadiusKm float64
}

func NewSearchService(store SpaceStore, radiusKm float64) *SearchService {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	return &SearchService{Store: store, RadiusKm: radiusKm}
}

// Search returns the spaces near origin that are open for the whole requested
// window, preserving store order. origin is a "lat,lng" string; start and end
// are ISO-8601 timestamps. All input faults abort with a bad-request error
// before the store is queried.
func (s *SearchService) Search(ctx context.Context, origin, start, end string) ([]db.ParkingSpace, error) {
	center, err := parseOrigin(origin)
	if err != nil {
		return nil, err
	}
	startTime, err := parseTimestamp(start, "start_time")
	if err != nil {
		return nil, err
	}
	endTime, err := parseTimestamp(end, "end_time")
	if err != nil {
		return nil, err
	}
	if !endTime.After(startTime) {
		return nil, apierrors.ErrBadRequest("end_time must be after start_time")
	}

	candidates, err := s.Store.FindWithinRadius(ctx, center, geo.Radians(s.RadiusKm), startTime)
	if err != nil {
		log.Printf("Error from FindWithinRadius: %v", err)
		return nil, apierrors.ErrUpstream("error searching nearby spaces")
	}

	var results []db.ParkingSpace
	for _, space := range candidates {
		if schedule.Matches(space.Availability, startTime, endTime) {
			results = append(results, space)
		}
	}
	return results, nil
}

func parseOrigin(origin string) (geo.Point, error) {
	if strings.TrimSpace(origin) == "" {
		return geo.Point{}, apierrors.ErrBadRequest("origin is required")
	}
	parts := strings.Split(origin, ",")
	if len(parts) != 2 {
		return geo.Point{}, apierrors.ErrBadRequest("origin must be 'lat,lng'")
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil || math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return geo.Point{}, apierrors.ErrBadRequest("origin coordinates must be numeric")
	}
	point := geo.Point{Lat: lat, Lng: lng}
	if !point.Valid() {
		return geo.Point{}, apierrors.ErrBadRequest("origin coordinates out of range")
	}
	return point, nil
}

// timestampLayouts are tried in order; naive timestamps are read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseTimestamp(value, field string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, apierrors.ErrBadRequest(field + " is required")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apierrors.ErrBadRequest(field + " is not a valid timestamp")
}
