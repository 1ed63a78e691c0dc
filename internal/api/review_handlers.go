package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"parkfinder/internal/entities"
	"parkfinder/internal/service"
)

type ReviewHandler struct {
	Service *service.ReviewService
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["id"]
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	review, err := h.Service.CreateReview(r.Context(), spaceID, req.AuthorName, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewReviewResponse(*review))
}

func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["id"]
	reviews, err := h.Service.ListReviews(r.Context(), spaceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewReviewResponses(reviews))
}
