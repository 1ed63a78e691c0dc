package entities

import (
	"time"

	"parkfinder/internal/db"
)

type ReviewResponse struct {
	ID         int       `json:"id"`
	SpaceID    string    `json:"space_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReviewResponse(review db.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		SpaceID:    review.SpaceID,
		AuthorName: review.AuthorName,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

func NewReviewResponses(reviews []db.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, NewReviewResponse(review))
	}
	return responses
}
