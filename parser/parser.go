package parser

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/ttpr0/go-traffic/attr"
	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/structs"
	. "github.com/ttpr0/go-traffic/util"
	"golang.org/x/exp/slog"
)

// ParseGraph builds the road graph from an OSM pbf extract. Ways are
// split into edges at junction nodes, every retained way becomes one
// road feature whose edges carry consecutive segment indexes.
func ParseGraph(pbf_file string) *graph.Graph {
	nodes := NewList[OSMNode](10000)
	edges := NewList[OSMEdge](10000)
	index_mapping := NewDict[int64, int](10000)
	_ParseOsm(pbf_file, &nodes, &edges, &index_mapping)
	slog.Info(fmt.Sprintf("parsed %v edges and %v nodes", edges.Length(), nodes.Length()))
	return _CreateGraph(&nodes, &edges)
}

func _ParseOsm(filename string, nodes *List[OSMNode], edges *List[OSMEdge], index_mapping *Dict[int64, int]) {
	osm_nodes := NewDict[int64, TempNode](1000)

	file, err := os.Open(filename)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_InitWayHandler(scanner, &osm_nodes)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_NodeHandler(scanner, &osm_nodes, nodes, index_mapping)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_WayHandler(scanner, edges, &osm_nodes, index_mapping)
	scanner.Close()
}

// Expands the undirected way edges into directed graph edges. Both
// directions of a two-way road share feature id and segment index and
// are told apart by the direction flag.
func _CreateGraph(osmnodes *List[OSMNode], osmedges *List[OSMEdge]) *graph.Graph {
	nodes := NewList[structs.Node](osmnodes.Length())
	node_attrs := NewList[attr.NodeAttribs](osmnodes.Length())
	node_geoms := NewList[geo.Coord](osmnodes.Length())
	for _, osmnode := range *osmnodes {
		nodes.Add(structs.Node{Loc: osmnode.Point})
		node_attrs.Add(osmnode.Attr)
		node_geoms.Add(osmnode.Point)
	}

	edges := NewList[structs.Edge](osmedges.Length() * 2)
	edge_attrs := NewList[attr.EdgeAttribs](osmedges.Length() * 2)
	edge_geoms := NewList[geo.CoordArray](osmedges.Length() * 2)
	for _, osmedge := range *osmedges {
		length := float32(0)
		for i := 0; i < osmedge.Nodes.Length()-1; i++ {
			length += geo.HaversineDistance(osmedge.Nodes[i], osmedge.Nodes[i+1])
		}

		edge_attr := osmedge.Attr
		edge_attr.Length = length
		edge_attr.Dir = 0
		edge_attr.Tile = geo.TileOf(osmedge.Nodes[0])
		edges.Add(structs.Edge{NodeA: int32(osmedge.NodeA), NodeB: int32(osmedge.NodeB)})
		edge_attrs.Add(edge_attr)
		edge_geoms.Add(geo.CoordArray(osmedge.Nodes))

		if !osmedge.Attr.Oneway {
			reversed := NewList[geo.Coord](osmedge.Nodes.Length())
			for i := osmedge.Nodes.Length() - 1; i >= 0; i-- {
				reversed.Add(osmedge.Nodes[i])
			}
			edge_attr.Dir = 1
			edges.Add(structs.Edge{NodeA: int32(osmedge.NodeB), NodeB: int32(osmedge.NodeA)})
			edge_attrs.Add(edge_attr)
			edge_geoms.Add(geo.CoordArray(reversed))
		}
	}

	attrib := attr.New(Array[attr.NodeAttribs](node_attrs), Array[attr.EdgeAttribs](edge_attrs), Array[geo.Coord](node_geoms), Array[geo.CoordArray](edge_geoms))
	return graph.NewGraph(Array[structs.Node](nodes), Array[structs.Edge](edges), attrib)
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(scanner *osmpbf.Scanner, osm_nodes *Dict[int64, TempNode]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !_IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			for i := 0; i < l; i++ {
				ndref := nodes[i].FeatureID().Ref()
				if !osm_nodes.ContainsKey(ndref) {
					(*osm_nodes)[ndref] = TempNode{geo.Coord{0, 0}, 1}
				} else {
					node := (*osm_nodes)[ndref]
					node.Count += 1
					(*osm_nodes)[ndref] = node
				}
			}
			node_a := (*osm_nodes)[nodes[0].FeatureID().Ref()]
			node_b := (*osm_nodes)[nodes[l-1].FeatureID().Ref()]
			node_a.Count += 1
			node_b.Count += 1
			(*osm_nodes)[nodes[0].FeatureID().Ref()] = node_a
			(*osm_nodes)[nodes[l-1].FeatureID().Ref()] = node_b
		default:
			continue
		}
	}
}

func _NodeHandler(scanner *osmpbf.Scanner, osm_nodes *Dict[int64, TempNode], nodes *List[OSMNode], index_mapping *Dict[int64, int]) {
	i := 0
	c := 0

	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			if !osm_nodes.ContainsKey(id) {
				continue
			}
			tags := Dict[string, string](object.TagMap())
			c += 1
			if c%1000 == 0 {
				slog.Debug(fmt.Sprintf("%v", c))
			}
			on := osm_nodes.Get(id)
			if on.Count > 1 {
				node := OSMNode{
					Point: geo.Coord{float32(object.Lon), float32(object.Lat)},
					Attr:  _DecodeNode(tags),
				}
				nodes.Add(node)
				index_mapping.Set(id, i)
				i += 1
			}
			on.Point[0] = float32(object.Lon)
			on.Point[1] = float32(object.Lat)
			osm_nodes.Set(id, on)
		default:
			continue
		}
	}
}

func _WayHandler(scanner *osmpbf.Scanner, edges *List[OSMEdge], osm_nodes *Dict[int64, TempNode], index_mapping *Dict[int64, int]) {
	c := 0
	feature := uint32(0)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !_IsValidHighway(tags) {
				continue
			}
			c += 1
			if c%1000 == 0 {
				slog.Debug(fmt.Sprintf("%v", c))
			}
			feature += 1
			way_attr := _DecodeEdge(tags)
			way_attr.Feature = feature

			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			start := nodes[0].FeatureID().Ref()
			segment := uint16(0)
			e := OSMEdge{}
			for i := 0; i < l; i++ {
				curr := nodes[i].FeatureID().Ref()
				on := osm_nodes.Get(curr)
				e.Nodes.Add(on.Point)
				if on.Count > 1 && curr != start {
					e.NodeA = index_mapping.Get(start)
					e.NodeB = index_mapping.Get(curr)
					e.Attr = way_attr
					e.Attr.SegmentIndex = segment
					edges.Add(e)
					segment += 1
					start = curr
					e = OSMEdge{}
					e.Nodes.Add(on.Point)
				}
			}
		default:
			continue
		}
	}
}
