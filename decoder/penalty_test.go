package decoder

import (
	"testing"

	"github.com/ttpr0/go-traffic/attr"
	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/traff"
	. "github.com/ttpr0/go-traffic/util"
)

func TestGetRoadClassPenalty(t *testing.T) {
	cases := []struct {
		lhs  traff.RoadClass
		rhs  traff.RoadClass
		want float64
	}{
		{traff.CLASS_PRIMARY, traff.CLASS_PRIMARY, 1},
		{traff.CLASS_PRIMARY, traff.CLASS_TRUNK, _REDUCED_ATTRIBUTE_PENALTY},
		{traff.CLASS_PRIMARY, traff.CLASS_SECONDARY, _REDUCED_ATTRIBUTE_PENALTY},
		{traff.CLASS_MOTORWAY, traff.CLASS_PRIMARY, _ATTRIBUTE_PENALTY},
		{traff.CLASS_OTHER, traff.CLASS_TERTIARY, _REDUCED_ATTRIBUTE_PENALTY},
		{traff.CLASS_OTHER, traff.CLASS_MOTORWAY, _ATTRIBUTE_PENALTY},
	}
	for _, c := range cases {
		got := GetRoadClassPenalty(c.lhs, c.rhs)
		if got != c.want {
			t.Errorf("GetRoadClassPenalty(%v, %v) = %v; want %v", c.lhs, c.rhs, got, c.want)
		}
	}
}

func TestGetHighwayTypePenalty(t *testing.T) {
	primary := Some(traff.CLASS_PRIMARY)

	got := GetHighwayTypePenalty(attr.PRIMARY, primary, traff.RAMPS_NONE)
	if got != 1 {
		t.Errorf("matching road = %v; want 1", got)
	}
	got = GetHighwayTypePenalty(attr.PRIMARY_LINK, primary, traff.RAMPS_NONE)
	if got != _ATTRIBUTE_PENALTY {
		t.Errorf("unexpected ramp = %v; want %v", got, _ATTRIBUTE_PENALTY)
	}
	got = GetHighwayTypePenalty(attr.PRIMARY_LINK, primary, traff.RAMPS_ALL)
	if got != 1 {
		t.Errorf("expected ramp = %v; want 1", got)
	}
	got = GetHighwayTypePenalty(attr.SECONDARY, primary, traff.RAMPS_NONE)
	if got != _REDUCED_ATTRIBUTE_PENALTY {
		t.Errorf("adjacent class = %v; want %v", got, _REDUCED_ATTRIBUTE_PENALTY)
	}
	got = GetHighwayTypePenalty(attr.UNKNOWN, primary, traff.RAMPS_NONE)
	if got != _ATTRIBUTE_PENALTY*_ATTRIBUTE_PENALTY {
		t.Errorf("unknown type = %v; want %v", got, _ATTRIBUTE_PENALTY*_ATTRIBUTE_PENALTY)
	}
	got = GetHighwayTypePenalty(attr.UNKNOWN, None[traff.RoadClass](), traff.RAMPS_NONE)
	if got != _ATTRIBUTE_PENALTY {
		t.Errorf("unknown type without class = %v; want %v", got, _ATTRIBUTE_PENALTY)
	}
}

func TestJunctionRadius(t *testing.T) {
	// ~0.01 deg of longitude at lat 52 is ~680 m
	a := geo.Coord{13.00, 52.0}

	radius := JunctionRadius(a, geo.Coord{13.10, 52.0})
	if radius != _JUNCTION_RADIUS_MAX {
		t.Errorf("long location radius = %v; want %v", radius, _JUNCTION_RADIUS_MAX)
	}
	radius = JunctionRadius(a, geo.Coord{13.01, 52.0})
	if radius != _JUNCTION_RADIUS_MIN {
		t.Errorf("short location radius = %v; want %v", radius, _JUNCTION_RADIUS_MIN)
	}
	radius = JunctionRadius(a, geo.Coord{13.02, 52.0})
	if radius < 400 || radius > 500 {
		t.Errorf("medium location radius = %v; want dist/3 near 450", radius)
	}
}
