package graph

import (
	"github.com/ttpr0/go-traffic/attr"
	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/structs"
	. "github.com/ttpr0/go-traffic/util"
	"golang.org/x/exp/slices"
)

func NewGraph(nodes Array[structs.Node], edges Array[structs.Edge], attrib *attr.GraphAttributes) *Graph {
	topology := structs.BuildAdjacencyArray(nodes, edges)

	tiles := NewList[geo.TileId](10)
	for i := 0; i < edges.Length(); i++ {
		tile := attrib.GetEdgeAttribs(int32(i)).Tile
		if !slices.Contains(tiles, tile) {
			tiles.Add(tile)
		}
	}
	slices.Sort(tiles)

	return &Graph{
		nodes:    nodes,
		edges:    edges,
		topology: topology,
		attrib:   attrib,
		index:    None[*GraphIndex](),
		tiles:    tiles,
	}
}
