package decoder

import (
	"math"

	"github.com/ttpr0/go-traffic/attr"
	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/structs"
	"github.com/ttpr0/go-traffic/traff"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// biased cost model
//*******************************************

const (
	_UTURN_PENALTY           = 120.0  // seconds
	_FERRY_LANDING_PENALTY   = 1200.0 // seconds
	_TURN_PENALTY_MAX_DIST   = 100.0  // metres
	_TURN_PENALTY_MIN_ANGLE  = 65.0   // degrees
	_TURN_PENALTY_FULL_ANGLE = 90.0   // degrees
	// tolerance in degrees when snapping road points onto junction
	// candidates
	_POINT_ACCURACY = 1.0e-5
)

// TraffEstimator biases the route search towards roads matching the
// location attributes. Edge weights are metres scaled with mismatch
// penalties, so traversal notionally happens at 1 m/s and all route
// times are comparable to offroad and transition penalties in
// seconds.
type TraffEstimator struct {
	graph           graph.IGraph
	location        *traff.Location
	road_ref        List[string]
	start_junctions Dict[geo.Coord, float64]
	end_junctions   Dict[geo.Coord, float64]
	left_hand       bool
}

func NewTraffEstimator(g graph.IGraph, location *traff.Location, road_ref List[string], start_junctions, end_junctions Dict[geo.Coord, float64], left_hand bool) *TraffEstimator {
	return &TraffEstimator{
		graph:           g,
		location:        location,
		road_ref:        road_ref,
		start_junctions: start_junctions,
		end_junctions:   end_junctions,
		left_hand:       left_hand,
	}
}

func (self *TraffEstimator) GetEdgeWeight(edge int32) float64 {
	attribs := self.graph.GetEdgeAttribs(edge)
	result := float64(attribs.Length)

	if self.location == nil || !self.location.RoadClass.HasValue() {
		return result
	}

	result *= GetHighwayTypePenalty(attribs.Type, self.location.RoadClass, self.location.Ramps)
	if self.road_ref.Length() > 0 {
		result *= GetRoadRefPenalty(self.road_ref, attribs.Ref)
	}
	return result
}

func (self *TraffEstimator) GetTransitionWeight(from, via, to int32) float64 {
	result := 0.0
	from_edge := self.graph.GetEdge(from)
	to_edge := self.graph.GetEdge(to)

	if from_edge.NodeA == to_edge.NodeB && from_edge.NodeB == to_edge.NodeA {
		result += _UTURN_PENALTY
	}

	from_ferry := self.graph.GetEdgeAttribs(from).Type == attr.FERRY
	to_ferry := self.graph.GetEdgeAttribs(to).Type == attr.FERRY
	if from_ferry != to_ferry {
		result += _FERRY_LANDING_PENALTY
	}

	result += self._TurnPenalty(from_edge, via, to_edge)
	return result
}

// Sharp turns across traffic close to a location endpoint are
// penalized, since a continuous location should not leave the road at
// its ends. The penalty grows towards the endpoint and scales from
// zero at the minimum angle to its full value at right angles.
func (self *TraffEstimator) _TurnPenalty(from_edge structs.Edge, via int32, to_edge structs.Edge) float64 {
	if self.location == nil {
		return 0
	}

	a := self.graph.GetNodeGeom(from_edge.NodeA)
	b := self.graph.GetNodeGeom(via)
	c := self.graph.GetNodeGeom(to_edge.NodeB)

	// left turns cross oncoming traffic in right-hand traffic
	angle := -float64(geo.TurnAngle(a, b, c))
	if self.left_hand {
		angle = -angle
	}
	if angle < _TURN_PENALTY_MIN_ANGLE {
		return 0
	}

	from_point, to_point := self._Endpoints()
	dist := math.Min(
		float64(geo.HaversineDistance(b, from_point)),
		float64(geo.HaversineDistance(b, to_point)),
	)
	if dist > _TURN_PENALTY_MAX_DIST {
		return 0
	}

	result := (_TURN_PENALTY_MAX_DIST - dist) * _ATTRIBUTE_PENALTY
	if angle < _TURN_PENALTY_FULL_ANGLE {
		result *= (angle - _TURN_PENALTY_MIN_ANGLE) / (_TURN_PENALTY_FULL_ANGLE - _TURN_PENALTY_MIN_ANGLE)
	}
	return result
}

func (self *TraffEstimator) _Endpoints() (geo.Coord, geo.Coord) {
	from := self.location.At
	if self.location.From.HasValue() {
		from = self.location.From
	}
	to := self.location.At
	if self.location.To.HasValue() {
		to = self.location.To
	}
	return from.Value.Coordinates, to.Value.Coordinates
}

// Offroad legs connecting a reference point to the road network cost
// distance times the offroad penalty. When the road point is a known
// junction candidate for that reference point, its precomputed weight
// is used instead.
func (self *TraffEstimator) GetOffroadWeight(a, b geo.Coord) float64 {
	fallback := float64(geo.HaversineDistance(a, b)) * _OFFROAD_PENALTY
	if self.location == nil {
		return fallback
	}

	if self.location.From.HasValue() {
		from := self.location.From.Value.Coordinates
		if from == a {
			return _JunctionWeight(b, self.start_junctions, fallback)
		} else if from == b {
			return _JunctionWeight(a, self.start_junctions, fallback)
		}
	}
	if self.location.To.HasValue() {
		to := self.location.To.Value.Coordinates
		if to == a {
			return _JunctionWeight(b, self.end_junctions, fallback)
		} else if to == b {
			return _JunctionWeight(a, self.end_junctions, fallback)
		}
	}
	return fallback
}

func _JunctionWeight(road_point geo.Coord, junctions Dict[geo.Coord, float64], fallback float64) float64 {
	if weight, ok := _LookupJunction(road_point, junctions); ok {
		return weight
	}
	return fallback
}

func _LookupJunction(point geo.Coord, junctions Dict[geo.Coord, float64]) (float64, bool) {
	if weight, ok := junctions[point]; ok {
		return weight, true
	}
	for junction, weight := range junctions {
		if _NearlyEqual(point, junction) {
			return weight, true
		}
	}
	return 0, false
}

func _NearlyEqual(a, b geo.Coord) bool {
	return math.Abs(float64(a[0]-b[0])) <= _POINT_ACCURACY && math.Abs(float64(a[1]-b[1])) <= _POINT_ACCURACY
}
