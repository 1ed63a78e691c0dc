package db

import (
	"time"

	"parkfinder/internal/geo"
	"parkfinder/internal/schedule"
)

type Owner struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

type ParkingSpace struct {
	ID            string
	OwnerID       string
	Title         string
	Address       string
	Location      geo.Point
	AvailableFrom time.Time
	IsAvailable   bool
	Rating        float64
	Availability  []schedule.Slot
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Review struct {
	ID         int
	SpaceID    string
	AuthorName string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}
