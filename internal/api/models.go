package api

import "parkfinder/internal/schedule"

// Reviews
type CreateReviewRequest struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Owners
type CreateOwnerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Spaces
type UpdateScheduleRequest struct {
	Schedule map[string]schedule.DayHours `json:"schedule"`
}

type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}
