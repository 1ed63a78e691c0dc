package geo

import "math"

// Grid is an in-process spatial index that buckets points into fixed-size
// lat/lng cells. Radius lookups visit only the cells overlapping the query
// bounding box and refine each candidate with the exact haversine check,
// keeping lookups sub-linear in the number of indexed points.
//
// Grid is not safe for concurrent use; callers that share one across
// goroutines must synchronize around it.
type Grid struct {
	cellDegrees float64
	cells       map[cellKey][]gridEntry
	byID        map[string]cellKey
}

type cellKey struct {
	row, col int
}

type gridEntry struct {
	id string
	pt Point
}

// NewGrid creates a grid with the given cell size in degrees. A cell size
// around the expected query radius keeps the visited cell count small.
func NewGrid(cellDegrees float64) *Grid {
	if cellDegrees <= 0 {
		cellDegrees = 0.1
	}
	return &Grid{
		cellDegrees: cellDegrees,
		cells:       make(map[cellKey][]gridEntry),
		byID:        make(map[string]cellKey),
	}
}

func (g *Grid) keyFor(p Point) cellKey {
	return cellKey{
		row: int(math.Floor(p.Lat / g.cellDegrees)),
		col: int(math.Floor(p.Lng / g.cellDegrees)),
	}
}

// Insert adds a point under the given id, replacing any previous entry for it.
func (g *Grid) Insert(id string, p Point) {
	g.Remove(id)
	key := g.keyFor(p)
	g.cells[key] = append(g.cells[key], gridEntry{id: id, pt: p})
	g.byID[id] = key
}

// Remove drops the entry for id if present.
func (g *Grid) Remove(id string) {
	key, ok := g.byID[id]
	if !ok {
		return
	}
	entries := g.cells[key]
	for i, e := range entries {
		if e.id == id {
			g.cells[key] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(g.cells[key]) == 0 {
		delete(g.cells, key)
	}
	delete(g.byID, id)
}

// Len returns the number of indexed points.
func (g *Grid) Len() int {
	return len(g.byID)
}

// Within returns the ids of all points inside the spherical cap of the given
// angular radius around center.
func (g *Grid) Within(center Point, radiusRadians float64) []string {
	minLat, maxLat, minLng, maxLng := BoundingBox(center, radiusRadians)

	minRow := int(math.Floor(minLat / g.cellDegrees))
	maxRow := int(math.Floor(maxLat / g.cellDegrees))
	minCol := int(math.Floor(minLng / g.cellDegrees))
	maxCol := int(math.Floor(maxLng / g.cellDegrees))

	var ids []string
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[cellKey{row: row, col: col}] {
				if Within(center, radiusRadians, e.pt) {
					ids = append(ids, e.id)
				}
			}
		}
	}
	return ids
}
