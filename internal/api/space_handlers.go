package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"parkfinder/internal/entities"
	"parkfinder/internal/service"
)

type SpaceHandler struct {
	SearchService *service.SearchService
	SpaceService  *service.SpaceService
}

func NewSpaceHandler(searchSvc *service.SearchService, spaceSvc *service.SpaceService) *SpaceHandler {
	return &SpaceHandler{SearchService: searchSvc, SpaceService: spaceSvc}
}

// SearchSpaces handles GET /api/spaces/search?origin=lat,lng&start_time=...&end_time=...
func (h *SpaceHandler) SearchSpaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	results, err := h.SearchService.Search(
		r.Context(),
		query.Get("origin"),
		query.Get("start_time"),
		query.Get("end_time"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewSpaceResponses(results))
}

func (h *SpaceHandler) CreateSpace(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	space, err := h.SpaceService.CreateSpace(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewSpaceResponse(*space))
}

func (h *SpaceHandler) GetSpace(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	space, err := h.SpaceService.GetSpace(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewSpaceResponse(*space))
}

func (h *SpaceHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	slots, err := h.SpaceService.UpdateSchedule(r.Context(), id, req.Schedule)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Schedule updated",
		"slot_count": len(slots),
	})
}

func (h *SpaceHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.SpaceService.SetAvailability(r.Context(), id, req.IsAvailable); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Availability updated"})
}
