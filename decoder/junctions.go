package decoder

import (
	"math"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/traff"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// junction candidates
//*******************************************

const (
	_JUNCTION_RADIUS_MIN = 300.0 // metres
	_JUNCTION_RADIUS_MAX = 500.0 // metres
)

// Radius around a location endpoint in which to search for
// junctions, derived from the distance between the endpoints.
func JunctionRadius(from, to geo.Coord) float64 {
	dist := float64(geo.HaversineDistance(from, to))
	radius := dist / 3
	if radius > _JUNCTION_RADIUS_MAX {
		radius = _JUNCTION_RADIUS_MAX
	} else if radius < _JUNCTION_RADIUS_MIN {
		radius = dist / 2
		if radius > _JUNCTION_RADIUS_MIN {
			radius = _JUNCTION_RADIUS_MIN
		}
	}
	return radius
}

type _JunctionCandidate struct {
	weight           float64
	segments_in      int
	segments_out     int
	two_way_segments int
}

// GetJunctionCandidates finds graph nodes near a reference point
// that qualify as junctions and scores them by distance and
// attribute mismatch. A node is a junction if it can be left through
// more than one segment other than the one through which it was
// reached, or reached through more than one segment other than the
// one through which it will be left.
func GetJunctionCandidates(g graph.IGraph, point traff.Point, radius float64, location *traff.Location, road_ref List[string]) Dict[geo.Coord, float64] {
	junctions := NewDict[geo.Coord, float64](8)
	explorer := g.GetGraphExplorer()

	nodes := g.GetNodesInRadius(point.Coordinates, float32(radius))
	for _, node := range nodes {
		dist := float64(geo.HaversineDistance(point.Coordinates, g.GetNodeGeom(node)))
		candidate := _JunctionCandidate{weight: math.Inf(1)}

		score := func(edge int32) {
			attribs := g.GetEdgeAttribs(edge)
			weight := dist * GetHighwayTypePenalty(attribs.Type, location.RoadClass, location.Ramps)
			weight *= GetRoadRefPenalty(road_ref, attribs.Ref)
			if weight < candidate.weight {
				candidate.weight = weight
			}
		}

		// two-way roads contribute a directed edge to both adjacency
		// lists, count them once on the outgoing side
		explorer.ForAdjacentEdges(node, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			score(ref.EdgeID)
			if g.GetEdgeAttribs(ref.EdgeID).Oneway {
				candidate.segments_out += 1
			} else {
				candidate.two_way_segments += 1
			}
		})
		explorer.ForAdjacentEdges(node, graph.BACKWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			if g.GetEdgeAttribs(ref.EdgeID).Oneway {
				score(ref.EdgeID)
				candidate.segments_in += 1
			}
		})

		// discount the segments used to reach and leave the node
		if candidate.segments_in > 0 {
			candidate.segments_in -= 1
		} else if candidate.two_way_segments > 0 {
			candidate.two_way_segments -= 1
		}
		if candidate.segments_out > 0 {
			candidate.segments_out -= 1
		} else if candidate.two_way_segments > 0 {
			candidate.two_way_segments -= 1
		}

		if candidate.segments_in > 0 || candidate.segments_out > 0 || candidate.two_way_segments > 0 {
			junctions[g.GetNodeGeom(node)] = candidate.weight
		}
	}
	return junctions
}
