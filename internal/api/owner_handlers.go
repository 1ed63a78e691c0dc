package api

import (
	"encoding/json"
	"net/http"

	"parkfinder/internal/entities"
	"parkfinder/internal/service"
)

type OwnerHandler struct {
	Service *service.OwnerService
}

func NewOwnerHandler(svc *service.OwnerService) *OwnerHandler {
	return &OwnerHandler{Service: svc}
}

func (h *OwnerHandler) CreateOwner(w http.ResponseWriter, r *http.Request) {
	var req CreateOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	owner, err := h.Service.CreateOwner(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewOwnerResponse(*owner))
}

// GetOwnerByEmail handles GET /api/owners?email=...
func (h *OwnerHandler) GetOwnerByEmail(w http.ResponseWriter, r *http.Request) {
	owner, err := h.Service.GetOwnerByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewOwnerResponse(*owner))
}
