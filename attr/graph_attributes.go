package attr

import (
	"github.com/ttpr0/go-traffic/geo"
	. "github.com/ttpr0/go-traffic/util"
)

type IAttributes interface {
	GetNodeAttribs(node int32) NodeAttribs
	GetEdgeAttribs(edge int32) EdgeAttribs
	GetNodeGeom(node int32) geo.Coord
	GetEdgeGeom(edge int32) geo.CoordArray
}

type GraphAttributes struct {
	node_attribs Array[NodeAttribs]
	edge_attribs Array[EdgeAttribs]
	node_geoms   []geo.Coord
	edge_geoms   []geo.CoordArray
}

func New(nodes Array[NodeAttribs], edges Array[EdgeAttribs], node_geoms Array[geo.Coord], edge_geoms Array[geo.CoordArray]) *GraphAttributes {
	return &GraphAttributes{
		node_attribs: nodes,
		edge_attribs: edges,
		node_geoms:   node_geoms,
		edge_geoms:   edge_geoms,
	}
}

func (self *GraphAttributes) GetNodeAttribs(node int32) NodeAttribs {
	return self.node_attribs[node]
}
func (self *GraphAttributes) GetEdgeAttribs(edge int32) EdgeAttribs {
	return self.edge_attribs[edge]
}
func (self *GraphAttributes) GetNodeGeom(node int32) geo.Coord {
	return self.node_geoms[node]
}
func (self *GraphAttributes) GetEdgeGeom(edge int32) geo.CoordArray {
	return self.edge_geoms[edge]
}
func (self *GraphAttributes) NodeCount() int {
	return len(self.node_attribs)
}
func (self *GraphAttributes) EdgeCount() int {
	return len(self.edge_attribs)
}
