package geo

import "math"

// EarthRadiusKm is the equatorial earth radius used for all radius conversions.
const EarthRadiusKm = 6378.1

// Point is a coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinates are finite and inside lat/lng ranges.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Radians converts a distance in kilometers to the central angle of the
// corresponding spherical cap.
func Radians(km float64) float64 {
	return km / EarthRadiusKm
}

// CentralAngle returns the haversine central angle between two points, in radians.
func CentralAngle(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceKm returns the great-circle distance between two points in kilometers.
func DistanceKm(a, b Point) float64 {
	return EarthRadiusKm * CentralAngle(a, b)
}

// Within reports whether p lies inside the spherical cap of the given angular
// radius centered at center.
func Within(center Point, radiusRadians float64, p Point) bool {
	return CentralAngle(center, p) <= radiusRadians
}

// BoundingBox returns the lat/lng box enclosing the spherical cap, in degrees.
// Longitude bounds are clamped at the antimeridian rather than wrapped.
func BoundingBox(center Point, radiusRadians float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusRadians * 180 / math.Pi

	cosLat := math.Cos(center.Lat * math.Pi / 180)
	lngDelta := 180.0
	if cosLat > 1e-9 {
		lngDelta = latDelta / cosLat
	}

	minLat = math.Max(center.Lat-latDelta, -90)
	maxLat = math.Min(center.Lat+latDelta, 90)
	minLng = math.Max(center.Lng-lngDelta, -180)
	maxLng = math.Min(center.Lng+lngDelta, 180)
	return minLat, maxLat, minLng, maxLng
}
