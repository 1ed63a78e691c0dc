package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"parkfinder/internal/db"
)

type ReviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(database *sql.DB) *ReviewRepository {
	return &ReviewRepository{DB: database}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *db.Review) error {
	query := `
		INSERT INTO reviews (space_id, author_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		review.SpaceID, review.AuthorName, review.Rating, review.Comment, review.CreatedAt,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) ListReviewsBySpace(ctx context.Context, spaceID string) ([]db.Review, error) {
	query := `
		SELECT id, space_id, author_name, rating, comment, created_at
		FROM reviews
		WHERE space_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, spaceID)
	if err != nil {
		return nil, fmt.Errorf("error querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []db.Review
	for rows.Next() {
		var review db.Review
		if err := rows.Scan(&review.ID, &review.SpaceID, &review.AuthorName, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating review rows: %w", err)
	}
	return reviews, nil
}

// RefreshSpaceRatings recomputes the cached per-space average rating from the
// reviews table. Returns the number of spaces updated.
func (r *ReviewRepository) RefreshSpaceRatings(ctx context.Context) (int64, error) {
	query := `
		UPDATE parking_spaces ps
		SET rating = agg.avg_rating
		FROM (
			SELECT space_id, ROUND(AVG(rating)::numeric, 2) AS avg_rating
			FROM reviews
			GROUP BY space_id
		) agg
		WHERE ps.id = agg.space_id AND ps.rating IS DISTINCT FROM agg.avg_rating`

	result, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("error refreshing space ratings: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
		return 0, nil
	}
	return affected, nil
}
