package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"parkfinder/internal/repository"
)

type JobService struct {
	Spaces  *repository.SpaceRepository
	Reviews *repository.ReviewRepository
	Index   *repository.MemorySpaceStore
}

func NewJobService(spaces *repository.SpaceRepository, reviews *repository.ReviewRepository, index *repository.MemorySpaceStore) *JobService {
	return &JobService{Spaces: spaces, Reviews: reviews, Index: index}
}

// RefreshSpaceRatings recomputes the cached average rating of every reviewed space.
func (s *JobService) RefreshSpaceRatings() error {
	log.Println("Cron Job: Refreshing space ratings...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	updated, err := s.Reviews.RefreshSpaceRatings(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to refresh space ratings: %w", err)
	}

	log.Printf("Cron Job: Refreshed ratings for %d spaces.", updated)
	return nil
}

// RebuildSearchIndex reloads the in-memory grid index from the durable store.
// No-op when the service runs without the in-memory index.
func (s *JobService) RebuildSearchIndex() error {
	if s.Index == nil {
		return nil
	}
	log.Println("Cron Job: Rebuilding search index...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	spaces, err := s.Spaces.ListAvailable(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to list available spaces: %w", err)
	}

	s.Index.ReplaceAll(spaces)
	log.Printf("Cron Job: Search index rebuilt with %d spaces.", s.Index.Len())
	return nil
}
