package repository

import (
	"context"
	"sync"
	"time"

	"parkfinder/internal/db"
	"parkfinder/internal/geo"
)

// MemorySpaceStore keeps parking spaces in memory behind a grid spatial index.
// It serves the same radius query contract as SpaceRepository for stores without
// native geospatial indexing: reads come from the index, which a background job
// rebuilds from the durable store. It is also the store used by the service tests.
type MemorySpaceStore struct {
	mu     sync.RWMutex
	grid   *geo.Grid
	spaces map[string]db.ParkingSpace
}

// gridCellDegrees is roughly half a degree per cell, a few query radii wide.
const gridCellDegrees = 0.05

func NewMemorySpaceStore() *MemorySpaceStore {
	return &MemorySpaceStore{
		grid:   geo.NewGrid(gridCellDegrees),
		spaces: make(map[string]db.ParkingSpace),
	}
}

// Put inserts or replaces a space.
func (s *MemorySpaceStore) Put(space db.ParkingSpace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spaces[space.ID] = space
	s.grid.Insert(space.ID, space.Location)
}

// Delete removes a space if present.
func (s *MemorySpaceStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.spaces, id)
	s.grid.Remove(id)
}

// ReplaceAll swaps the full contents of the store in one step.
func (s *MemorySpaceStore) ReplaceAll(spaces []db.ParkingSpace) {
	grid := geo.NewGrid(gridCellDegrees)
	byID := make(map[string]db.ParkingSpace, len(spaces))
	for _, space := range spaces {
		byID[space.ID] = space
		grid.Insert(space.ID, space.Location)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = grid
	s.spaces = byID
}

// Len returns the number of stored spaces.
func (s *MemorySpaceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.spaces)
}

// FindWithinRadius mirrors SpaceRepository.FindWithinRadius over the grid index.
func (s *MemorySpaceStore) FindWithinRadius(ctx context.Context, center geo.Point, radiusRadians float64, minAvailableFrom time.Time) ([]db.ParkingSpace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var spaces []db.ParkingSpace
	for _, id := range s.grid.Within(center, radiusRadians) {
		space, ok := s.spaces[id]
		if !ok {
			continue
		}
		if !space.IsAvailable || space.AvailableFrom.After(minAvailableFrom) {
			continue
		}
		spaces = append(spaces, space)
	}
	return spaces, nil
}
