package entities

import (
	"time"

	"parkfinder/internal/db"
)

type OwnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewOwnerResponse(owner db.Owner) OwnerResponse {
	return OwnerResponse{
		ID:        owner.ID,
		Name:      owner.Name,
		Email:     owner.Email,
		Phone:     owner.Phone,
		CreatedAt: owner.CreatedAt,
	}
}
