package attr

import (
	"github.com/ttpr0/go-traffic/geo"
)

//*******************************************
// graph attributes
//*******************************************

type EdgeAttribs struct {
	Type       RoadType
	Length     float32
	Maxspeed   byte
	Oneway     bool
	Roundabout bool
	// road feature the directed edge belongs to
	Feature      uint32
	SegmentIndex uint16
	// 0 if the edge runs in feature direction, 1 if reversed
	Dir  byte
	Tile geo.TileId
	Ref  string
}

type NodeAttribs struct {
	Type int8
}
