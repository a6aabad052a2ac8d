package decoder

import (
	"github.com/ttpr0/go-traffic/attr"
	"github.com/ttpr0/go-traffic/traff"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// attribute penalties
//*******************************************

const (
	// factor applied to the direct distance between a reference point
	// and the road network
	_OFFROAD_PENALTY = 16.0
	// factor for a full attribute mismatch
	_ATTRIBUTE_PENALTY = 4.0
	// factor for a near miss, e.g. adjacent road classes
	_REDUCED_ATTRIBUTE_PENALTY = 2.0
)

// RoadClassOf collapses graph road types onto message road classes.
// Parallel carriageways may be tagged as links, hence links map to
// the class of their underlying road.
func RoadClassOf(typ attr.RoadType) traff.RoadClass {
	switch typ.ClassRank() {
	case 0:
		return traff.CLASS_MOTORWAY
	case 1:
		return traff.CLASS_TRUNK
	case 2:
		return traff.CLASS_PRIMARY
	case 3:
		return traff.CLASS_SECONDARY
	case 4:
		return traff.CLASS_TERTIARY
	}
	return traff.CLASS_OTHER
}

// Penalty factor for a road class mismatch. Adjacent classes (e.g.
// trunk and primary) count as a near miss.
func GetRoadClassPenalty(lhs, rhs traff.RoadClass) float64 {
	if lhs == rhs {
		return 1
	}
	diff := lhs.Rank() - rhs.Rank()
	if diff == 1 || diff == -1 {
		return _REDUCED_ATTRIBUTE_PENALTY
	}
	return _ATTRIBUTE_PENALTY
}

// Penalty factor for the road type of an edge against the ramp and
// road class attributes of a location. Roads of unknown type are
// treated as mismatching on both counts.
func GetHighwayTypePenalty(typ attr.RoadType, road_class Optional[traff.RoadClass], ramps traff.Ramps) float64 {
	result := 1.0
	if typ != attr.UNKNOWN {
		if typ.IsLink() != (ramps != traff.RAMPS_NONE) {
			result *= _ATTRIBUTE_PENALTY
		}
		if road_class.HasValue() {
			result *= GetRoadClassPenalty(road_class.Value, RoadClassOf(typ))
		}
	} else {
		result *= _ATTRIBUTE_PENALTY
		if road_class.HasValue() {
			result *= _ATTRIBUTE_PENALTY
		}
	}
	return result
}
