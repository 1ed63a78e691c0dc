package entities

import (
	"time"

	"parkfinder/internal/db"
	"parkfinder/internal/geo"
	"parkfinder/internal/schedule"
)

type CreateSpaceRequest struct {
	Title         string                       `json:"title"`
	Address       string                       `json:"address"`
	Lat           float64                      `json:"lat"`
	Lng           float64                      `json:"lng"`
	OwnerEmail    string                       `json:"owner_email"`
	AvailableFrom string                       `json:"available_from"`
	Schedule      map[string]schedule.DayHours `json:"schedule"`
}

type SlotResponse struct {
	Day  string `json:"day"`
	From string `json:"from"`
	To   string `json:"to"`
}

type SpaceResponse struct {
	ID            string         `json:"id"`
	OwnerID       string         `json:"owner_id"`
	Title         string         `json:"title"`
	Address       string         `json:"address"`
	Location      geo.Point      `json:"location"`
	AvailableFrom time.Time      `json:"available_from"`
	IsAvailable   bool           `json:"is_available"`
	Rating        float64        `json:"rating"`
	Availability  []SlotResponse `json:"availability"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func NewSpaceResponse(space db.ParkingSpace) SpaceResponse {
	slots := make([]SlotResponse, 0, len(space.Availability))
	for _, slot := range space.Availability {
		slots = append(slots, SlotResponse{
			Day:  schedule.DayName(slot.Day),
			From: slot.From.String(),
			To:   slot.To.String(),
		})
	}
	return SpaceResponse{
		ID:            space.ID,
		OwnerID:       space.OwnerID,
		Title:         space.Title,
		Address:       space.Address,
		Location:      space.Location,
		AvailableFrom: space.AvailableFrom,
		IsAvailable:   space.IsAvailable,
		Rating:        space.Rating,
		Availability:  slots,
		CreatedAt:     space.CreatedAt,
		UpdatedAt:     space.UpdatedAt,
	}
}

func NewSpaceResponses(spaces []db.ParkingSpace) []SpaceResponse {
	responses := make([]SpaceResponse, 0, len(spaces))
	for _, space := range spaces {
		responses = append(responses, NewSpaceResponse(space))
	}
	return responses
}
