package geo

import (
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	a := Coord{13.0, 52.0}
	b := Coord{13.0, 52.1}
	dist := HaversineDistance(a, b)
	// one tenth of a degree of latitude is roughly 11.1 km
	if dist < 11000 || dist > 11250 {
		t.Errorf("HaversineDistance = %v; want ~11120", dist)
	}
	if HaversineDistance(a, a) != 0 {
		t.Errorf("HaversineDistance(a, a) = %v; want 0", HaversineDistance(a, a))
	}
}

func TestTurnAngle(t *testing.T) {
	a := Coord{13.0, 52.0}
	b := Coord{13.1, 52.0}
	straight := Coord{13.2, 52.0}
	right := Coord{13.1, 51.9}
	left := Coord{13.1, 52.1}

	if angle := TurnAngle(a, b, straight); angle < -1 || angle > 1 {
		t.Errorf("TurnAngle straight = %v; want ~0", angle)
	}
	if angle := TurnAngle(a, b, right); angle < 80 || angle > 100 {
		t.Errorf("TurnAngle right = %v; want ~90", angle)
	}
	if angle := TurnAngle(a, b, left); angle > -80 || angle < -100 {
		t.Errorf("TurnAngle left = %v; want ~-90", angle)
	}
}

func TestBBoxContains(t *testing.T) {
	box := NewBBox(13.0, 52.0, 14.0, 53.0)
	if !box.Contains(Coord{13.5, 52.5}) {
		t.Errorf("box.Contains = false; want true")
	}
	if box.Contains(Coord{14.5, 52.5}) {
		t.Errorf("box.Contains = true; want false")
	}
}
