package routing

import (
	"testing"

	"github.com/ttpr0/go-traffic/attr"
	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/structs"
	. "github.com/ttpr0/go-traffic/util"
)

// straight west-east road with four nodes, two-way
func _BuildTestGraph() *graph.Graph {
	locs := []geo.Coord{
		{13.00, 52.0},
		{13.01, 52.0},
		{13.02, 52.0},
		{13.03, 52.0},
	}
	nodes := NewList[structs.Node](len(locs))
	node_attrs := NewList[attr.NodeAttribs](len(locs))
	for _, loc := range locs {
		nodes.Add(structs.Node{Loc: loc})
		node_attrs.Add(attr.NodeAttribs{})
	}

	edges := NewList[structs.Edge](6)
	edge_attrs := NewList[attr.EdgeAttribs](6)
	edge_geoms := NewList[geo.CoordArray](6)
	node_geoms := NewList[geo.Coord](len(locs))
	for _, loc := range locs {
		node_geoms.Add(loc)
	}
	for i := 0; i < len(locs)-1; i++ {
		length := geo.HaversineDistance(locs[i], locs[i+1])
		for dir := byte(0); dir < 2; dir++ {
			a, b := int32(i), int32(i+1)
			if dir == 1 {
				a, b = b, a
			}
			edges.Add(structs.Edge{NodeA: a, NodeB: b})
			edge_attrs.Add(attr.EdgeAttribs{
				Type:         attr.PRIMARY,
				Length:       length,
				Maxspeed:     100,
				Feature:      1,
				SegmentIndex: uint16(i),
				Dir:          dir,
				Tile:         geo.TileOf(locs[i]),
			})
			edge_geoms.Add(geo.CoordArray{locs[i], locs[i+1]})
		}
	}
	attrib := attr.New(Array[attr.NodeAttribs](node_attrs), Array[attr.EdgeAttribs](edge_attrs), Array[geo.Coord](node_geoms), Array[geo.CoordArray](edge_geoms))
	return graph.NewGraph(Array[structs.Node](nodes), Array[structs.Edge](edges), attrib)
}

type _TestEstimator struct {
	g graph.IGraph
}

func (self *_TestEstimator) GetEdgeWeight(edge int32) float64 {
	return float64(self.g.GetEdgeAttribs(edge).Length)
}
func (self *_TestEstimator) GetTransitionWeight(from, via, to int32) float64 {
	return 0
}
func (self *_TestEstimator) GetOffroadWeight(a, b geo.Coord) float64 {
	return float64(geo.HaversineDistance(a, b)) * 16
}

func TestCalculateRoute(t *testing.T) {
	g := _BuildTestGraph()
	estimator := &_TestEstimator{g: g}

	checkpoints := NewList[geo.Coord](2)
	checkpoints.Add(geo.Coord{13.001, 52.0})
	checkpoints.Add(geo.Coord{13.029, 52.0})
	code, route := CalculateRoute(g, estimator, checkpoints)
	if code != NO_ERROR {
		t.Fatalf("CalculateRoute code = %v; want no_error", code)
	}

	real := 0
	fakes := 0
	for _, segment := range route.Segments {
		if segment.Fake {
			fakes++
		} else {
			real++
		}
	}
	if fakes != 2 {
		t.Errorf("fake segments = %v; want 2", fakes)
	}
	if real != 3 {
		t.Errorf("real segments = %v; want 3", real)
	}

	if route.Segments.Get(0).Fake != true {
		t.Errorf("first segment not fake")
	}
	last := route.Segments.Get(route.Segments.Length() - 1)
	if last.Fake != true {
		t.Errorf("last segment not fake")
	}

	// times must be monotonic
	prev := 0.0
	for _, segment := range route.Segments {
		if segment.TimeFromStart < prev {
			t.Errorf("TimeFromStart not monotonic: %v < %v", segment.TimeFromStart, prev)
		}
		prev = segment.TimeFromStart
	}

	// forward direction keeps feature direction
	for _, segment := range route.Segments {
		if segment.Fake {
			continue
		}
		if segment.SegmentId.Dir != 0 {
			t.Errorf("segment dir = %v; want 0", segment.SegmentId.Dir)
		}
	}
}

func TestCalculateRouteReverse(t *testing.T) {
	g := _BuildTestGraph()
	estimator := &_TestEstimator{g: g}

	checkpoints := NewList[geo.Coord](2)
	checkpoints.Add(geo.Coord{13.029, 52.0})
	checkpoints.Add(geo.Coord{13.001, 52.0})
	code, route := CalculateRoute(g, estimator, checkpoints)
	if code != NO_ERROR {
		t.Fatalf("CalculateRoute code = %v; want no_error", code)
	}
	for _, segment := range route.Segments {
		if segment.Fake {
			continue
		}
		if segment.SegmentId.Dir != 1 {
			t.Errorf("segment dir = %v; want 1", segment.SegmentId.Dir)
		}
	}
}

func TestCalculateRouteErrors(t *testing.T) {
	g := _BuildTestGraph()
	estimator := &_TestEstimator{g: g}

	checkpoints := NewList[geo.Coord](1)
	checkpoints.Add(geo.Coord{13.0, 52.0})
	code, _ := CalculateRoute(g, estimator, checkpoints)
	if code != INTERNAL_ERROR {
		t.Errorf("CalculateRoute with one checkpoint = %v; want internal_error", code)
	}

	code, _ = CalculateRoute(nil, estimator, checkpoints)
	if code != INTERNAL_ERROR {
		t.Errorf("CalculateRoute without graph = %v; want internal_error", code)
	}
}
