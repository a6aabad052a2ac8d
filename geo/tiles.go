package geo

import (
	"fmt"
	"math"
)

//*******************************************
// map tiles
//*******************************************

// Map data is partitioned into fixed 1x1 degree cells. The identifier
// encodes the cell's south-west corner and is stable across runs.
type TileId int32

const _TILE_LON_COUNT = 360

func TileOf(point Coord) TileId {
	lon := int32(math.Floor(float64(point[0])))
	lat := int32(math.Floor(float64(point[1])))
	return TileId((lat+90)*_TILE_LON_COUNT + (lon + 180))
}

func (self TileId) BBox() BBox {
	lon := float32(int32(self)%_TILE_LON_COUNT - 180)
	lat := float32(int32(self)/_TILE_LON_COUNT - 90)
	return NewBBox(lon, lat, lon+1, lat+1)
}

func (self TileId) String() string {
	box := self.BBox()
	return fmt.Sprintf("tile_%d_%d", int32(box.MinLat), int32(box.MinLon))
}

// Returns the identifiers of all tiles intersecting the given rect.
func TilesCovering(box BBox) []TileId {
	min_lon := int32(math.Floor(float64(box.MinLon)))
	min_lat := int32(math.Floor(float64(box.MinLat)))
	max_lon := int32(math.Floor(float64(box.MaxLon)))
	max_lat := int32(math.Floor(float64(box.MaxLat)))
	tiles := make([]TileId, 0, 4)
	for lat := min_lat; lat <= max_lat; lat++ {
		for lon := min_lon; lon <= max_lon; lon++ {
			tiles = append(tiles, TileId((lat+90)*_TILE_LON_COUNT+(lon+180)))
		}
	}
	return tiles
}
