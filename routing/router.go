package routing

import (
	"time"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/traffic"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// router contract
//*******************************************

type ResultCode byte

const (
	NO_ERROR ResultCode = iota
	CANCELLED
	ROUTE_NOT_FOUND
	POINTS_IN_DIFFERENT_TILES
	INTERNAL_ERROR
)

func (self ResultCode) String() string {
	switch self {
	case NO_ERROR:
		return "no_error"
	case CANCELLED:
		return "cancelled"
	case ROUTE_NOT_FOUND:
		return "route_not_found"
	case POINTS_IN_DIFFERENT_TILES:
		return "points_in_different_tiles"
	}
	return "internal_error"
}

// Pluggable cost model. Weights are in seconds, transitions cover
// turn, u-turn and ferry-landing penalties between two edges meeting
// at a node.
type IEstimator interface {
	GetEdgeWeight(edge int32) float64
	GetTransitionWeight(from, via, to int32) float64
	GetOffroadWeight(a, b geo.Coord) float64
}

type RouteSegment struct {
	// -1 for synthetic segments connecting checkpoints to the graph
	EdgeId        int32
	Fake          bool
	Entry         geo.Coord
	Exit          geo.Coord
	TimeFromStart float64
	Tile          geo.TileId
	SegmentId     traffic.RoadSegmentId
	Roundabout    bool
}

type Route struct {
	Segments List[RouteSegment]
}

const ROUTER_TIMEOUT = 30 * time.Second

//*******************************************
// route computation
//*******************************************

// Computes a weighted shortest path visiting the checkpoints in
// order. The search is edge-based so the estimator sees every
// transition between adjacent edges.
func CalculateRoute(g graph.IGraph, estimator IEstimator, checkpoints List[geo.Coord]) (ResultCode, Route) {
	if g == nil || g.NodeCount() == 0 {
		return INTERNAL_ERROR, Route{}
	}
	if checkpoints.Length() < 2 {
		return INTERNAL_ERROR, Route{}
	}

	nodes := NewList[int32](checkpoints.Length())
	for _, point := range checkpoints {
		node, ok := g.GetClosestNode(point)
		if !ok {
			return INTERNAL_ERROR, Route{}
		}
		nodes.Add(node)
	}

	deadline := time.Now().Add(ROUTER_TIMEOUT)
	route := Route{Segments: NewList[RouteSegment](32)}
	time_offset := 0.0
	for i := 0; i < nodes.Length()-1; i++ {
		code := _CalcLeg(g, estimator, checkpoints[i], checkpoints[i+1], nodes[i], nodes[i+1], &route, &time_offset, deadline)
		if code != NO_ERROR {
			return code, Route{}
		}
	}
	return NO_ERROR, route
}

type _EdgeLabel struct {
	time float64
	prev int32
	done bool
}

func _CalcLeg(g graph.IGraph, estimator IEstimator, start_point, end_point geo.Coord, start, end int32, route *Route, time_offset *float64, deadline time.Time) ResultCode {
	explorer := g.GetGraphExplorer()
	labels := NewDict[int32, _EdgeLabel](100)
	heap := NewPriorityQueue[int32, float64](100)

	explorer.ForAdjacentEdges(start, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
		weight := estimator.GetEdgeWeight(ref.EdgeID)
		labels[ref.EdgeID] = _EdgeLabel{time: weight, prev: -1}
		heap.Enqueue(ref.EdgeID, weight)
	})

	final_edge := int32(-1)
	steps := 0
	for {
		edge, ok := heap.Dequeue()
		if !ok {
			break
		}
		label := labels[edge]
		if label.done {
			continue
		}
		label.done = true
		labels[edge] = label

		steps += 1
		if steps%1000 == 0 && time.Now().After(deadline) {
			return CANCELLED
		}

		head := g.GetEdge(edge).NodeB
		if head == end {
			final_edge = edge
			break
		}
		explorer.ForAdjacentEdges(head, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			transition := estimator.GetTransitionWeight(edge, head, ref.EdgeID)
			new_time := label.time + transition + estimator.GetEdgeWeight(ref.EdgeID)
			other, exists := labels[ref.EdgeID]
			if !exists || new_time < other.time {
				labels[ref.EdgeID] = _EdgeLabel{time: new_time, prev: edge}
				heap.Enqueue(ref.EdgeID, new_time)
			}
		})
	}

	if final_edge == -1 {
		if start != end {
			start_tile := geo.TileOf(g.GetNodeGeom(start))
			end_tile := geo.TileOf(g.GetNodeGeom(end))
			if start_tile != end_tile {
				return POINTS_IN_DIFFERENT_TILES
			}
			return ROUTE_NOT_FOUND
		}
		// degenerate leg, both checkpoints snap to the same node
	}

	// backtrack
	edges := NewList[int32](16)
	for edge := final_edge; edge != -1; edge = labels[edge].prev {
		edges.Add(edge)
	}
	for i, j := 0, edges.Length()-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	// leading synthetic segment from the checkpoint onto the graph
	start_geom := g.GetNodeGeom(start)
	*time_offset += estimator.GetOffroadWeight(start_point, start_geom)
	route.Segments.Add(RouteSegment{
		EdgeId:        -1,
		Fake:          true,
		Entry:         start_point,
		Exit:          start_geom,
		TimeFromStart: *time_offset,
	})

	leg_base := *time_offset
	for _, edge := range edges {
		attribs := g.GetEdgeAttribs(edge)
		e := g.GetEdge(edge)
		*time_offset = leg_base + labels[edge].time
		route.Segments.Add(RouteSegment{
			EdgeId:        edge,
			Entry:         g.GetNodeGeom(e.NodeA),
			Exit:          g.GetNodeGeom(e.NodeB),
			TimeFromStart: *time_offset,
			Tile:          attribs.Tile,
			SegmentId:     traffic.NewRoadSegmentId(attribs.Feature, attribs.SegmentIndex, attribs.Dir),
			Roundabout:    attribs.Roundabout,
		})
	}

	// trailing synthetic segment back to the checkpoint
	end_geom := g.GetNodeGeom(end)
	*time_offset += estimator.GetOffroadWeight(end_geom, end_point)
	route.Segments.Add(RouteSegment{
		EdgeId:        -1,
		Fake:          true,
		Entry:         end_geom,
		Exit:          end_point,
		TimeFromStart: *time_offset,
	})
	return NO_ERROR
}
