package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkfinder/internal/db"
)

type OwnerRepository struct {
	DB *sql.DB
}

func NewOwnerRepository(database *sql.DB) *OwnerRepository {
	return &OwnerRepository{DB: database}
}

func (r *OwnerRepository) CreateOwner(ctx context.Context, owner *db.Owner) error {
	query := `
		INSERT INTO owners (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	err := r.DB.QueryRowContext(ctx, query,
		owner.ID, owner.Name, owner.Email, owner.Phone, owner.CreatedAt,
	).Scan(&owner.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting owner: %w", err)
	}
	return nil
}

func (r *OwnerRepository) GetOwnerByEmail(ctx context.Context, email string) (*db.Owner, error) {
	var owner db.Owner
	query := `SELECT id, name, email, phone, created_at FROM owners WHERE email = $1`
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&owner.ID, &owner.Name, &owner.Email, &owner.Phone, &owner.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("owner with email '%s' not found: %w", email, err)
		}
		return nil, fmt.Errorf("error querying owner: %w", err)
	}
	return &owner, nil
}

func (r *OwnerRepository) GetOwnerByID(ctx context.Context, id string) (*db.Owner, error) {
	var owner db.Owner
	query := `SELECT id, name, email, phone, created_at FROM owners WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&owner.ID, &owner.Name, &owner.Email, &owner.Phone, &owner.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("owner '%s' not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying owner: %w", err)
	}
	return &owner, nil
}
