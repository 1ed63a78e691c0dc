package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"parkfinder/internal/db"
	"parkfinder/internal/entities"
	apierrors "parkfinder/internal/errors"
	"parkfinder/internal/geo"
	"parkfinder/internal/schedule"
)

// SpaceStorage is the space persistence capability the service depends on,
// satisfied by repository.SpaceRepository.
type SpaceStorage interface {
	CreateSpace(ctx context.Context, space *db.ParkingSpace) error
	GetSpaceByID(ctx context.Context, id string) (*db.ParkingSpace, error)
	UpdateSchedule(ctx context.Context, id string, slots []schedule.Slot) error
	SetAvailability(ctx context.Context, id string, available bool) error
}

// OwnerLookup resolves owners by their stored (lowercased) email.
type OwnerLookup interface {
	GetOwnerByEmail(ctx context.Context, email string) (*db.Owner, error)
}

type SpaceService struct {
	Spaces SpaceStorage
	Owners OwnerLookup
}

func NewSpaceService(spaces SpaceStorage, owners OwnerLookup) *SpaceService {
	return &SpaceService{Spaces: spaces, Owners: owners}
}

// availableFromLayouts: owners supply either a date or a full timestamp.
var availableFromLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// CreateSpace resolves the owner by email, normalizes the supplied schedule and
// persists the space with its weekly availability table.
func (s *SpaceService) CreateSpace(ctx context.Context, req *entities.CreateSpaceRequest) (*db.ParkingSpace, error) {
	if req.Title == "" {
		return nil, apierrors.ErrBadRequest("title is required")
	}
	// Owners are stored with lowercased emails; normalize before the lookup so
	// mixed-case input resolves the same owner.
	ownerEmail := strings.ToLower(strings.TrimSpace(req.OwnerEmail))
	if ownerEmail == "" {
		return nil, apierrors.ErrBadRequest("owner_email is required")
	}
	location := geo.Point{Lat: req.Lat, Lng: req.Lng}
	if !location.Valid() {
		return nil, apierrors.ErrBadRequest("lat/lng out of range")
	}

	availableFrom, err := parseAvailableFrom(req.AvailableFrom)
	if err != nil {
		return nil, err
	}

	owner, err := s.Owners.GetOwnerByEmail(ctx, ownerEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.ErrNotFound("owner not found")
		}
		log.Printf("Error resolving owner '%s': %v", ownerEmail, err)
		return nil, err
	}

	now := time.Now().UTC()
	space := &db.ParkingSpace{
		ID:            uuid.NewString(),
		OwnerID:       owner.ID,
		Title:         req.Title,
		Address:       req.Address,
		Location:      location,
		AvailableFrom: availableFrom,
		IsAvailable:   true,
		Availability:  schedule.Normalize(req.Schedule),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Spaces.CreateSpace(ctx, space); err != nil {
		log.Printf("Error creating parking space: %v", err)
		return nil, err
	}
	return space, nil
}

func (s *SpaceService) GetSpace(ctx context.Context, id string) (*db.ParkingSpace, error) {
	space, err := s.Spaces.GetSpaceByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.ErrNotFound("parking space not found")
		}
		return nil, err
	}
	return space, nil
}

// UpdateSchedule re-runs the normalizer over the new owner-supplied hours and
// replaces the stored weekly availability table.
func (s *SpaceService) UpdateSchedule(ctx context.Context, id string, hours map[string]schedule.DayHours) ([]schedule.Slot, error) {
	slots := schedule.Normalize(hours)
	if err := s.Spaces.UpdateSchedule(ctx, id, slots); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.ErrNotFound("parking space not found")
		}
		return nil, err
	}
	return slots, nil
}

func (s *SpaceService) SetAvailability(ctx context.Context, id string, available bool) error {
	if err := s.Spaces.SetAvailability(ctx, id, available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apierrors.ErrNotFound("parking space not found")
		}
		return err
	}
	return nil
}

func parseAvailableFrom(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apierrors.ErrBadRequest("available_from is required")
	}
	for _, layout := range availableFromLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apierrors.ErrBadRequest("available_from is not a valid date")
}
