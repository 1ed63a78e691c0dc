package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkfinder/internal/db"
)

type fakeReviewStorage struct {
	reviews []db.Review
}

func (f *fakeReviewStorage) CreateReview(ctx context.Context, review *db.Review) error {
	review.ID = len(f.reviews) + 1
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewStorage) ListReviewsBySpace(ctx context.Context, spaceID string) ([]db.Review, error) {
	var reviews []db.Review
	for _, review := range f.reviews {
		if review.SpaceID == spaceID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

type fakeOwnerResolver struct {
	owners map[string]db.Owner
}

func (f *fakeOwnerResolver) GetOwnerByID(ctx context.Context, id string) (*db.Owner, error) {
	owner, ok := f.owners[id]
	if !ok {
		return nil, fmt.Errorf("owner '%s' not found: %w", id, sql.ErrNoRows)
	}
	return &owner, nil
}

func newReviewServiceWithSpace() (*ReviewService, *fakeReviewStorage) {
	owner := storedOwner()
	space := db.ParkingSpace{
		ID:            "space-1",
		OwnerID:       owner.ID,
		Title:         "Mission District driveway",
		AvailableFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsAvailable:   true,
	}
	reviews := &fakeReviewStorage{}
	svc := NewReviewService(
		reviews,
		newFakeSpaceStorage(space),
		&fakeOwnerResolver{owners: map[string]db.Owner{owner.ID: owner}},
	)
	return svc, reviews
}

func TestCreateReviewRejectsInvalidRating(t *testing.T) {
	svc, reviews := newReviewServiceWithSpace()

	for _, rating := range []int{0, 6, -1, 100} {
		_, err := svc.CreateReview(context.Background(), "space-1", "Bob", rating, "nice spot")
		requireHTTPError(t, err, http.StatusBadRequest)
	}
	assert.Empty(t, reviews.reviews, "invalid ratings must not be stored")
}

func TestCreateReviewRejectsMissingAuthor(t *testing.T) {
	svc, reviews := newReviewServiceWithSpace()

	_, err := svc.CreateReview(context.Background(), "space-1", "", 4, "nice spot")
	requireHTTPError(t, err, http.StatusBadRequest)
	assert.Empty(t, reviews.reviews)
}

func TestCreateReviewUnknownSpace(t *testing.T) {
	svc, _ := newReviewServiceWithSpace()

	_, err := svc.CreateReview(context.Background(), "missing", "Bob", 4, "nice spot")
	requireHTTPError(t, err, http.StatusNotFound)
}

func TestCreateReviewValidRating(t *testing.T) {
	svc, reviews := newReviewServiceWithSpace()

	review, err := svc.CreateReview(context.Background(), "space-1", "Bob", 5, "nice spot")
	require.NoError(t, err)
	assert.Equal(t, 1, review.ID)
	assert.Equal(t, "space-1", review.SpaceID)
	assert.Equal(t, 5, review.Rating)

	require.Len(t, reviews.reviews, 1)
	assert.Equal(t, "Bob", reviews.reviews[0].AuthorName)
}

func TestListReviewsUnknownSpace(t *testing.T) {
	svc, _ := newReviewServiceWithSpace()

	_, err := svc.ListReviews(context.Background(), "missing")
	requireHTTPError(t, err, http.StatusNotFound)
}

func TestListReviewsFiltersBySpace(t *testing.T) {
	svc, reviews := newReviewServiceWithSpace()
	reviews.reviews = []db.Review{
		{ID: 1, SpaceID: "space-1", AuthorName: "Bob", Rating: 5},
		{ID: 2, SpaceID: "other", AuthorName: "Carol", Rating: 3},
	}

	got, err := svc.ListReviews(context.Background(), "space-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].AuthorName)
}
