package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkfinder/internal/db"
	"parkfinder/internal/entities"
	"parkfinder/internal/geo"
	"parkfinder/internal/repository"
	"parkfinder/internal/schedule"
	"parkfinder/internal/service"
)

func searchRouter(store service.SpaceStore) *mux.Router {
	searchSvc := service.NewSearchService(store, 0)
	handler := NewSpaceHandler(searchSvc, nil)

	r := mux.NewRouter()
	r.HandleFunc("/api/spaces/search", handler.SearchSpaces).Methods("GET")
	return r
}

func seededStore() *repository.MemorySpaceStore {
	store := repository.NewMemorySpaceStore()
	store.Put(db.ParkingSpace{
		ID:            "sf",
		OwnerID:       "owner-1",
		Title:         "Mission District driveway",
		Location:      geo.Point{Lat: 37.77, Lng: -122.42},
		AvailableFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsAvailable:   true,
		Availability: schedule.Normalize(map[string]schedule.DayHours{
			"wednesday": {In: "08:00", Out: "20:00"},
		}),
	})
	return store
}

func TestSearchSpacesEndpoint(t *testing.T) {
	router := searchRouter(seededStore())

	req := httptest.NewRequest(http.MethodGet,
		"/api/spaces/search?origin=37.77,-122.42&start_time=2024-03-06T10:00&end_time=2024-03-06T11:00", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var results []entities.SpaceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "sf", results[0].ID)
	require.Len(t, results[0].Availability, 1)
	assert.Equal(t, "wednesday", results[0].Availability[0].Day)
	assert.Equal(t, "08:00", results[0].Availability[0].From)
}

func TestSearchSpacesEndpointEmptyResult(t *testing.T) {
	router := searchRouter(seededStore())

	// Thursday: no slot for that weekday.
	req := httptest.NewRequest(http.MethodGet,
		"/api/spaces/search?origin=37.77,-122.42&start_time=2024-03-07T10:00&end_time=2024-03-07T11:00", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestSearchSpacesEndpointMalformedInput(t *testing.T) {
	router := searchRouter(seededStore())

	cases := []string{
		"/api/spaces/search?start_time=2024-03-06T10:00&end_time=2024-03-06T11:00",
		"/api/spaces/search?origin=abc,12.3&start_time=2024-03-06T10:00&end_time=2024-03-06T11:00",
		"/api/spaces/search?origin=37.77,-122.42&start_time=bad&end_time=2024-03-06T11:00",
		"/api/spaces/search?origin=37.77,-122.42&start_time=2024-03-06T11:00&end_time=2024-03-06T10:00",
	}
	for _, url := range cases {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
	}
}

type brokenStore struct{}

func (brokenStore) FindWithinRadius(ctx context.Context, center geo.Point, radiusRadians float64, minAvailableFrom time.Time) ([]db.ParkingSpace, error) {
	return nil, errors.New("store down")
}

func TestSearchSpacesEndpointUpstreamFailure(t *testing.T) {
	router := searchRouter(brokenStore{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/spaces/search?origin=37.77,-122.42&start_time=2024-03-06T10:00&end_time=2024-03-06T11:00", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
