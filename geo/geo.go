package geo

import (
	"math"
)

//*******************************************
// geometry structs
//*******************************************

// lon/lat ordering
type Coord [2]float32

type CoordArray []Coord

func (self Coord) Lon() float32 {
	return self[0]
}
func (self Coord) Lat() float32 {
	return self[1]
}

type BBox struct {
	MinLon float32
	MinLat float32
	MaxLon float32
	MaxLat float32
}

func NewBBox(min_lon, min_lat, max_lon, max_lat float32) BBox {
	return BBox{MinLon: min_lon, MinLat: min_lat, MaxLon: max_lon, MaxLat: max_lat}
}

func (self BBox) Contains(point Coord) bool {
	return point[0] >= self.MinLon && point[0] <= self.MaxLon && point[1] >= self.MinLat && point[1] <= self.MaxLat
}
func (self BBox) Extend(point Coord) BBox {
	if point[0] < self.MinLon {
		self.MinLon = point[0]
	}
	if point[0] > self.MaxLon {
		self.MaxLon = point[0]
	}
	if point[1] < self.MinLat {
		self.MinLat = point[1]
	}
	if point[1] > self.MaxLat {
		self.MaxLat = point[1]
	}
	return self
}

//*******************************************
// spherical geometry
//*******************************************

const earth_radius = 6371000.0

// Returns the haversine distance between a and b in metres.
func HaversineDistance(a, b Coord) float32 {
	lat1 := float64(a[1]) * math.Pi / 180
	lat2 := float64(b[1]) * math.Pi / 180
	dlat := float64(b[1]-a[1]) * math.Pi / 180
	dlon := float64(b[0]-a[0]) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return float32(earth_radius * c)
}

// Returns the initial bearing from a to b in degrees (0 north, clockwise).
func Bearing(a, b Coord) float32 {
	lat1 := float64(a[1]) * math.Pi / 180
	lat2 := float64(b[1]) * math.Pi / 180
	dlon := float64(b[0]-a[0]) * math.Pi / 180

	y := math.Sin(dlon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)
	bearing := math.Atan2(y, x) * 180 / math.Pi
	return float32(math.Mod(bearing+360, 360))
}

// Returns the signed deviation from going straight at b when travelling
// a -> b -> c, in degrees within (-180, 180]. Positive values are right
// turns, negative values left turns.
func TurnAngle(a, b, c Coord) float32 {
	angle := float64(Bearing(b, c) - Bearing(a, b))
	for angle > 180 {
		angle -= 360
	}
	for angle <= -180 {
		angle += 360
	}
	return float32(angle)
}
