package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRadians(t *testing.T) {
	assert.Equal(t, 1.0, Radians(EarthRadiusKm))
	assert.InDelta(t, 5.0/6378.1, Radians(5), 1e-12)
}

func TestDistanceKm(t *testing.T) {
	a := Point{Lat: 0, Lng: 0}
	b := Point{Lat: 0, Lng: 1}
	// One degree of longitude at the equator.
	oneDegree := EarthRadiusKm * math.Pi / 180
	assert.InDelta(t, oneDegree, DistanceKm(a, b), 0.01)
	assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
	assert.Zero(t, DistanceKm(a, a))
}

func TestWithin(t *testing.T) {
	center := Point{Lat: 37.77, Lng: -122.42}
	near := Point{Lat: 37.78, Lng: -122.42}   // ~1.1 km north
	far := Point{Lat: 37.95, Lng: -122.42}    // ~20 km north
	radius := Radians(5)

	assert.True(t, Within(center, radius, near))
	assert.True(t, Within(center, radius, center))
	assert.False(t, Within(center, radius, far))
}

func TestBoundingBoxEnclosesCap(t *testing.T) {
	center := Point{Lat: 37.77, Lng: -122.42}
	radius := Radians(5)
	minLat, maxLat, minLng, maxLng := BoundingBox(center, radius)

	// Cardinal points just inside the cap must fall inside the box.
	latDelta := radius * 180 / math.Pi * 0.99
	lngDelta := latDelta / math.Cos(center.Lat*math.Pi/180)
	for _, p := range []Point{
		{Lat: center.Lat + latDelta, Lng: center.Lng},
		{Lat: center.Lat - latDelta, Lng: center.Lng},
		{Lat: center.Lat, Lng: center.Lng + lngDelta},
		{Lat: center.Lat, Lng: center.Lng - lngDelta},
	} {
		assert.GreaterOrEqual(t, p.Lat, minLat)
		assert.LessOrEqual(t, p.Lat, maxLat)
		assert.GreaterOrEqual(t, p.Lng, minLng)
		assert.LessOrEqual(t, p.Lng, maxLng)
	}
}

func TestBoundingBoxClampsAtPoles(t *testing.T) {
	minLat, maxLat, _, maxLng := BoundingBox(Point{Lat: 89.9, Lng: 0}, Radians(50))
	assert.LessOrEqual(t, maxLat, 90.0)
	assert.GreaterOrEqual(t, minLat, -90.0)
	assert.LessOrEqual(t, maxLng, 180.0)
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Lat: 37.77, Lng: -122.42}.Valid())
	assert.True(t, Point{Lat: -90, Lng: 180}.Valid())
	assert.False(t, Point{Lat: 91, Lng: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lng: -181}.Valid())
	assert.False(t, Point{Lat: math.NaN(), Lng: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lng: math.Inf(1)}.Valid())
}
