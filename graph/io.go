package graph

import (
	"os"

	"github.com/ttpr0/go-traffic/attr"
	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/structs"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// load and store
//*******************************************

func Store(graph *Graph, file string) {
	writer := NewBufferWriter()

	Write[int32](writer, int32(graph.NodeCount()))
	Write[int32](writer, int32(graph.EdgeCount()))
	WriteArray(writer, graph.nodes)
	WriteArray(writer, graph.edges)
	for i := 0; i < graph.NodeCount(); i++ {
		n := graph.attrib.GetNodeAttribs(int32(i))
		Write[int8](writer, n.Type)
	}
	for i := 0; i < graph.EdgeCount(); i++ {
		e := graph.attrib.GetEdgeAttribs(int32(i))
		Write[int8](writer, int8(e.Type))
		Write[float32](writer, e.Length)
		Write[byte](writer, e.Maxspeed)
		Write[bool](writer, e.Oneway)
		Write[bool](writer, e.Roundabout)
		Write[uint32](writer, e.Feature)
		Write[uint16](writer, e.SegmentIndex)
		Write[byte](writer, e.Dir)
		Write[int32](writer, int32(e.Tile))
		WriteString(writer, e.Ref)
		geom := graph.attrib.GetEdgeGeom(int32(i))
		WriteArray(writer, Array[geo.Coord](geom))
	}

	outfile, err := os.Create(file)
	if err != nil {
		panic("failed to create graph file: " + err.Error())
	}
	defer outfile.Close()
	outfile.Write(writer.Bytes())
}

func Load(file string) *Graph {
	data, err := os.ReadFile(file)
	if err != nil {
		panic("failed to read graph file: " + err.Error())
	}
	reader := NewBufferReader(data)

	node_count := Read[int32](reader)
	edge_count := Read[int32](reader)
	nodes := Array[structs.Node](ReadArray[structs.Node](reader))
	edges := Array[structs.Edge](ReadArray[structs.Edge](reader))

	node_attribs := NewArray[attr.NodeAttribs](int(node_count))
	node_geoms := NewArray[geo.Coord](int(node_count))
	for i := 0; i < int(node_count); i++ {
		node_attribs[i] = attr.NodeAttribs{Type: Read[int8](reader)}
		node_geoms[i] = nodes[i].Loc
	}
	edge_attribs := NewArray[attr.EdgeAttribs](int(edge_count))
	edge_geoms := NewArray[geo.CoordArray](int(edge_count))
	for i := 0; i < int(edge_count); i++ {
		e := attr.EdgeAttribs{}
		e.Type = attr.RoadType(Read[int8](reader))
		e.Length = Read[float32](reader)
		e.Maxspeed = Read[byte](reader)
		e.Oneway = Read[bool](reader)
		e.Roundabout = Read[bool](reader)
		e.Feature = Read[uint32](reader)
		e.SegmentIndex = Read[uint16](reader)
		e.Dir = Read[byte](reader)
		e.Tile = geo.TileId(Read[int32](reader))
		e.Ref = ReadString(reader)
		edge_attribs[i] = e
		edge_geoms[i] = geo.CoordArray(ReadArray[geo.Coord](reader))
	}

	attrib := attr.New(node_attribs, edge_attribs, node_geoms, edge_geoms)
	return NewGraph(nodes, edges, attrib)
}
