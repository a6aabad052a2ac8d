package graph

import (
	"github.com/ttpr0/go-traffic/attr"
	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/structs"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// graph interfaces
//******************************************

type IGraph interface {
	GetGraphExplorer() IGraphExplorer
	NodeCount() int
	EdgeCount() int
	GetNode(node int32) structs.Node
	GetEdge(edge int32) structs.Edge
	GetNodeGeom(node int32) geo.Coord
	GetEdgeAttribs(edge int32) attr.EdgeAttribs
	GetEdgeGeom(edge int32) geo.CoordArray
	GetClosestNode(point geo.Coord) (int32, bool)
	GetNodesInRadius(point geo.Coord, radius float32) List[int32]
	Tiles() []geo.TileId
}

// not thread safe, use only one instance per thread
type IGraphExplorer interface {
	// Iterates through the adjacency of a node calling the callback for every edge.
	//
	// direction tells the traversal direction (FORWARD means outgoing edges, BACKWARD ingoing edges)
	ForAdjacentEdges(node int32, dir Direction, typ Adjacency, callback func(EdgeRef))
	GetOtherNode(edge EdgeRef, node int32) int32
}

//*******************************************
// road graph
//******************************************

type Graph struct {
	nodes    Array[structs.Node]
	edges    Array[structs.Edge]
	topology structs.AdjacencyArray
	attrib   *attr.GraphAttributes
	index    Optional[*GraphIndex]
	tiles    []geo.TileId
}

func (self *Graph) GetGraphExplorer() IGraphExplorer {
	accessor := self.topology.GetAccessor()
	return &BaseGraphExplorer{
		graph:    self,
		accessor: &accessor,
	}
}
func (self *Graph) NodeCount() int {
	return self.nodes.Length()
}
func (self *Graph) EdgeCount() int {
	return self.edges.Length()
}
func (self *Graph) GetNode(node int32) structs.Node {
	return self.nodes[node]
}
func (self *Graph) GetEdge(edge int32) structs.Edge {
	return self.edges[edge]
}
func (self *Graph) GetNodeGeom(node int32) geo.Coord {
	return self.nodes[node].Loc
}
func (self *Graph) GetEdgeAttribs(edge int32) attr.EdgeAttribs {
	return self.attrib.GetEdgeAttribs(edge)
}
func (self *Graph) GetEdgeGeom(edge int32) geo.CoordArray {
	return self.attrib.GetEdgeGeom(edge)
}
func (self *Graph) GetClosestNode(point geo.Coord) (int32, bool) {
	if !self.index.HasValue() {
		self.index = Some(NewGraphIndex(self.nodes))
	}
	return self.index.Value.GetClosestNode(point)
}
func (self *Graph) GetNodesInRadius(point geo.Coord, radius float32) List[int32] {
	if !self.index.HasValue() {
		self.index = Some(NewGraphIndex(self.nodes))
	}
	return self.index.Value.GetNodesInRadius(point, radius)
}

// Returns the identifiers of all tiles the graph has edges in.
func (self *Graph) Tiles() []geo.TileId {
	return self.tiles
}

//*******************************************
// base-graph explorer
//******************************************

type BaseGraphExplorer struct {
	graph    *Graph
	accessor structs.IAdjAccessor
}

func (self *BaseGraphExplorer) ForAdjacentEdges(node int32, direction Direction, typ Adjacency, callback func(EdgeRef)) {
	if typ == ADJACENT_ALL || typ == ADJACENT_EDGES {
		self.accessor.SetBaseNode(node, direction == FORWARD)
		for self.accessor.Next() {
			edge_id := self.accessor.GetEdgeID()
			other_id := self.accessor.GetOtherID()
			callback(EdgeRef{
				EdgeID:  edge_id,
				OtherID: other_id,
			})
		}
	} else {
		panic("Adjacency-type not implemented for this graph.")
	}
}
func (self *BaseGraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	e := self.graph.GetEdge(edge.EdgeID)
	if node == e.NodeA {
		return e.NodeB
	}
	if node == e.NodeB {
		return e.NodeA
	}
	return -1
}
