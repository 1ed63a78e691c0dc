package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"parkfinder/internal/db"
	apierrors "parkfinder/internal/errors"
	"parkfinder/internal/repository"
)

type OwnerService struct {
	Owners *repository.OwnerRepository
}

func NewOwnerService(owners *repository.OwnerRepository) *OwnerService {
	return &OwnerService{Owners: owners}
}

func (s *OwnerService) CreateOwner(ctx context.Context, name, email, phone string) (*db.Owner, error) {
	if name == "" {
		return nil, apierrors.ErrBadRequest("name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apierrors.ErrBadRequest("a valid email is required")
	}

	owner := &db.Owner{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Owners.CreateOwner(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

func (s *OwnerService) GetOwnerByEmail(ctx context.Context, email string) (*db.Owner, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apierrors.ErrBadRequest("email is required")
	}
	owner, err := s.Owners.GetOwnerByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.ErrNotFound("owner not found")
		}
		return nil, err
	}
	return owner, nil
}
