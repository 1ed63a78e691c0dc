package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"parkfinder/internal/db"
	apierrors "parkfinder/internal/errors"
)

// ReviewStorage is the review persistence capability the service depends on,
// satisfied by repository.ReviewRepository.
type ReviewStorage interface {
	CreateReview(ctx context.Context, review *db.Review) error
	ListReviewsBySpace(ctx context.Context, spaceID string) ([]db.Review, error)
}

// OwnerResolver resolves owners by id for notifications.
type OwnerResolver interface {
	GetOwnerByID(ctx context.Context, id string) (*db.Owner, error)
}

type ReviewService struct {
	Reviews ReviewStorage
	Spaces  SpaceStorage
	Owners  OwnerResolver
}

func NewReviewService(reviews ReviewStorage, spaces SpaceStorage, owners OwnerResolver) *ReviewService {
	return &ReviewService{Reviews: reviews, Spaces: spaces, Owners: owners}
}

// CreateReview stores a review for an existing space and notifies the space
// owner in the background. Notification failures are logged, never surfaced.
func (s *ReviewService) CreateReview(ctx context.Context, spaceID, authorName string, rating int, comment string) (*db.Review, error) {
	if authorName == "" {
		return nil, apierrors.ErrBadRequest("author_name is required")
	}
	if rating < 1 || rating > 5 {
		return nil, apierrors.ErrBadRequest("rating must be between 1 and 5")
	}

	space, err := s.Spaces.GetSpaceByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.ErrNotFound("parking space not found")
		}
		return nil, err
	}

	review := &db.Review{
		SpaceID:    space.ID,
		AuthorName: authorName,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Reviews.CreateReview(ctx, review); err != nil {
		log.Printf("Error creating review for space %s: %v", space.ID, err)
		return nil, err
	}

	go s.notifyOwner(space, review)

	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, spaceID string) ([]db.Review, error) {
	if _, err := s.Spaces.GetSpaceByID(ctx, spaceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.ErrNotFound("parking space not found")
		}
		return nil, err
	}
	return s.Reviews.ListReviewsBySpace(ctx, spaceID)
}

func (s *ReviewService) notifyOwner(space *db.ParkingSpace, review *db.Review) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	owner, err := s.Owners.GetOwnerByID(ctx, space.OwnerID)
	if err != nil {
		log.Printf("Could not resolve owner for review notification on space %s: %v", space.ID, err)
		return
	}

	subject := fmt.Sprintf("New review for your parking space '%s'", space.Title)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\n%s left a %d-star review on your parking space '%s'.\n\n%s\n\nParkFinder",
		owner.Name, review.AuthorName, review.Rating, space.Title, review.Comment,
	)
	htmlBody := fmt.Sprintf(
		"<p>Hello %s,</p><p><strong>%s</strong> left a <strong>%d-star</strong> review on your parking space '%s'.</p><p>%s</p><p>ParkFinder</p>",
		owner.Name, review.AuthorName, review.Rating, space.Title, review.Comment,
	)

	if err := SendEmailWithSendGrid(owner.Email, owner.Name, subject, plainBody, htmlBody); err != nil {
		log.Printf("Review notification email for space %s failed: %v", space.ID, err)
	}

	if owner.Phone != "" {
		sms := fmt.Sprintf("ParkFinder: %s left a %d-star review on '%s'. Details in your email.",
			review.AuthorName, review.Rating, space.Title)
		if err := SendSMS(owner.Phone, sms); err != nil {
			log.Printf("Review notification SMS for space %s failed: %v", space.ID, err)
		}
	}
}
