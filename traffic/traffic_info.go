package traffic

import (
	"github.com/ttpr0/go-traffic/geo"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// road segments and colorings
//*******************************************

const (
	FORWARD_DIRECTION byte = 0
	REVERSE_DIRECTION byte = 1
)

// One directed segment of a road feature.
type RoadSegmentId struct {
	FeatureId  uint32
	SegmentIdx uint16
	Dir        byte
}

func NewRoadSegmentId(feature uint32, segment uint16, dir byte) RoadSegmentId {
	return RoadSegmentId{
		FeatureId:  feature,
		SegmentIdx: segment,
		Dir:        dir,
	}
}

// Congestion assignment for the segments of one tile.
type Coloring = Dict[RoadSegmentId, SpeedGroup]

// Congestion assignment across tiles, the unit merged between
// messages and handed to consumers.
type MultiTileColoring = Dict[geo.TileId, Coloring]

func NewColoring() Coloring {
	return NewDict[RoadSegmentId, SpeedGroup](10)
}
func NewMultiTileColoring() MultiTileColoring {
	return NewDict[geo.TileId, Coloring](1)
}

// Merges delta into target. Merging the same delta twice leaves the
// target unchanged.
func MergeColoring(target MultiTileColoring, delta MultiTileColoring) {
	for tile, coloring := range delta {
		if !target.ContainsKey(tile) {
			target[tile] = NewDict[RoadSegmentId, SpeedGroup](coloring.Length())
		}
		merged := target[tile]
		for segment, group := range coloring {
			if merged.ContainsKey(segment) {
				merged[segment] = CombineSpeedGroups(merged[segment], group)
			} else {
				merged[segment] = group
			}
		}
	}
}
