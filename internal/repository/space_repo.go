package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"parkfinder/internal/db"
	"parkfinder/internal/geo"
	"parkfinder/internal/schedule"
)

type SpaceRepository struct {
	DB *sql.DB
}

func NewSpaceRepository(database *sql.DB) *SpaceRepository {
	return &SpaceRepository{DB: database}
}

func (r *SpaceRepository) CreateSpace(ctx context.Context, space *db.ParkingSpace) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO parking_spaces
		(id, owner_id, title, address, lat, lng, available_from, is_available, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = tx.ExecContext(ctx, query,
		space.ID,
		space.OwnerID,
		space.Title,
		space.Address,
		space.Location.Lat,
		space.Location.Lng,
		space.AvailableFrom,
		space.IsAvailable,
		space.Rating,
		space.CreatedAt,
		space.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting parking space: %w", err)
	}

	if err := insertSlots(ctx, tx, space.ID, space.Availability); err != nil {
		return err
	}

	return tx.Commit()
}

func insertSlots(ctx context.Context, tx *sql.Tx, spaceID string, slots []schedule.Slot) error {
	for _, slot := range slots {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO space_availability (space_id, day, from_minutes, to_minutes) VALUES ($1, $2, $3, $4)`,
			spaceID, int(slot.Day), int(slot.From), int(slot.To),
		)
		if err != nil {
			return fmt.Errorf("error inserting availability slot: %w", err)
		}
	}
	return nil
}

func (r *SpaceRepository) GetSpaceByID(ctx context.Context, id string) (*db.ParkingSpace, error) {
	var space db.ParkingSpace
	query := `
		SELECT id, owner_id, title, address, lat, lng, available_from, is_available, rating, created_at, updated_at
		FROM parking_spaces WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&space.ID, &space.OwnerID, &space.Title, &space.Address,
		&space.Location.Lat, &space.Location.Lng,
		&space.AvailableFrom, &space.IsAvailable, &space.Rating,
		&space.CreatedAt, &space.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("parking space '%s' not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying parking space: %w", err)
	}

	slotsBySpace, err := r.loadSlots(ctx, []string{space.ID})
	if err != nil {
		return nil, err
	}
	space.Availability = slotsBySpace[space.ID]
	return &space, nil
}

// UpdateSchedule replaces the weekly availability table of a space with a freshly
// normalized one.
func (r *SpaceRepository) UpdateSchedule(ctx context.Context, id string, slots []schedule.Slot) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE parking_spaces SET updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error touching parking space: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("parking space '%s' not found: %w", id, sql.ErrNoRows)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM space_availability WHERE space_id = $1`, id); err != nil {
		return fmt.Errorf("error clearing availability slots: %w", err)
	}
	if err := insertSlots(ctx, tx, id, slots); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SpaceRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE parking_spaces SET is_available = $1, updated_at = NOW() WHERE id = $2`,
		available, id)
	if err != nil {
		return fmt.Errorf("error updating availability flag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("parking space '%s' not found: %w", id, sql.ErrNoRows)
	}
	return nil
}

// FindWithinRadius returns every available space whose coordinate lies within the
// spherical cap of the given angular radius around center and whose available_from
// date is not after minAvailableFrom.
//
// Plain Postgres has no spatial index, so the query prefilters on a btree-friendly
// lat/lng bounding box and the rows are refined with the exact haversine check.
func (r *SpaceRepository) FindWithinRadius(ctx context.Context, center geo.Point, radiusRadians float64, minAvailableFrom time.Time) ([]db.ParkingSpace, error) {
	minLat, maxLat, minLng, maxLng := geo.BoundingBox(center, radiusRadians)

	query := `
		SELECT id, owner_id, title, address, lat, lng, available_from, is_available, rating, created_at, updated_at
		FROM parking_spaces
		WHERE is_available = TRUE
		  AND available_from <= $1
		  AND lat BETWEEN $2 AND $3
		  AND lng BETWEEN $4 AND $5
		ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query, minAvailableFrom, minLat, maxLat, minLng, maxLng)
	if err != nil {
		return nil, fmt.Errorf("error querying spaces within radius: %w", err)
	}
	defer rows.Close()

	var spaces []db.ParkingSpace
	var ids []string
	for rows.Next() {
		var space db.ParkingSpace
		err := rows.Scan(
			&space.ID, &space.OwnerID, &space.Title, &space.Address,
			&space.Location.Lat, &space.Location.Lng,
			&space.AvailableFrom, &space.IsAvailable, &space.Rating,
			&space.CreatedAt, &space.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning parking space: %w", err)
		}
		if !geo.Within(center, radiusRadians, space.Location) {
			continue
		}
		spaces = append(spaces, space)
		ids = append(ids, space.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating parking space rows: %w", err)
	}

	if len(spaces) == 0 {
		return spaces, nil
	}

	slotsBySpace, err := r.loadSlots(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range spaces {
		spaces[i].Availability = slotsBySpace[spaces[i].ID]
	}
	return spaces, nil
}

// ListAvailable returns every currently available space with its slots, for
// rebuilding the in-memory search index.
func (r *SpaceRepository) ListAvailable(ctx context.Context) ([]db.ParkingSpace, error) {
	query := `
		SELECT id, owner_id, title, address, lat, lng, available_from, is_available, rating, created_at, updated_at
		FROM parking_spaces
		WHERE is_available = TRUE
		ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing available spaces: %w", err)
	}
	defer rows.Close()

	var spaces []db.ParkingSpace
	var ids []string
	for rows.Next() {
		var space db.ParkingSpace
		err := rows.Scan(
			&space.ID, &space.OwnerID, &space.Title, &space.Address,
			&space.Location.Lat, &space.Location.Lng,
			&space.AvailableFrom, &space.IsAvailable, &space.Rating,
			&space.CreatedAt, &space.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning parking space: %w", err)
		}
		spaces = append(spaces, space)
		ids = append(ids, space.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating parking space rows: %w", err)
	}

	if len(spaces) == 0 {
		return spaces, nil
	}

	slotsBySpace, err := r.loadSlots(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range spaces {
		spaces[i].Availability = slotsBySpace[spaces[i].ID]
	}
	return spaces, nil
}

func (r *SpaceRepository) loadSlots(ctx context.Context, spaceIDs []string) (map[string][]schedule.Slot, error) {
	// (day + 6) % 7 reorders time.Weekday values Monday-first.
	query := `
		SELECT space_id, day, from_minutes, to_minutes
		FROM space_availability
		WHERE space_id = ANY($1)
		ORDER BY space_id, (day + 6) % 7`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(spaceIDs))
	if err != nil {
		return nil, fmt.Errorf("error querying availability slots: %w", err)
	}
	defer rows.Close()

	slots := make(map[string][]schedule.Slot)
	for rows.Next() {
		var spaceID string
		var day, from, to int
		if err := rows.Scan(&spaceID, &day, &from, &to); err != nil {
			return nil, fmt.Errorf("error scanning availability slot: %w", err)
		}
		slots[spaceID] = append(slots[spaceID], schedule.Slot{
			Day:  time.Weekday(day),
			From: schedule.ClockTime(from),
			To:   schedule.ClockTime(to),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating slot rows: %w", err)
	}
	return slots, nil
}
