package graph

import (
	"math"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/structs"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// spatial node index
//*******************************************

const _CELL_SIZE = 0.01

// Uniform grid over node locations for closest-node and radius queries.
type GraphIndex struct {
	cells Dict[int64, List[int32]]
	nodes Array[structs.Node]
}

func NewGraphIndex(nodes Array[structs.Node]) *GraphIndex {
	cells := NewDict[int64, List[int32]](nodes.Length() / 4)
	for i := 0; i < nodes.Length(); i++ {
		key := _CellKey(nodes[i].Loc)
		cell := cells[key]
		cell.Add(int32(i))
		cells[key] = cell
	}
	return &GraphIndex{
		cells: cells,
		nodes: nodes,
	}
}

func _CellKey(point geo.Coord) int64 {
	x := int64(math.Floor(float64(point[0]) / _CELL_SIZE))
	y := int64(math.Floor(float64(point[1]) / _CELL_SIZE))
	return y<<32 | (x & 0xFFFFFFFF)
}

func (self *GraphIndex) GetClosestNode(point geo.Coord) (int32, bool) {
	x := int64(math.Floor(float64(point[0]) / _CELL_SIZE))
	y := int64(math.Floor(float64(point[1]) / _CELL_SIZE))

	closest := int32(-1)
	closest_dist := float32(math.MaxFloat32)
	// expand ring by ring until a hit plus one safety ring has been scanned
	for ring := int64(0); ring <= 20; ring++ {
		found := false
		for dy := -ring; dy <= ring; dy++ {
			for dx := -ring; dx <= ring; dx++ {
				if dx > -ring && dx < ring && dy > -ring && dy < ring {
					continue
				}
				key := (y+dy)<<32 | ((x + dx) & 0xFFFFFFFF)
				if !self.cells.ContainsKey(key) {
					continue
				}
				for _, node := range self.cells[key] {
					dist := geo.HaversineDistance(point, self.nodes[node].Loc)
					if dist < closest_dist {
						closest = node
						closest_dist = dist
						found = true
					}
				}
			}
		}
		if closest != -1 && !found && ring > 0 {
			break
		}
	}
	return closest, closest != -1
}

func (self *GraphIndex) GetNodesInRadius(point geo.Coord, radius float32) List[int32] {
	lat_delta := float64(radius) / 111320.0
	lon_delta := lat_delta / math.Cos(float64(point[1])*math.Pi/180)

	min_x := int64(math.Floor((float64(point[0]) - lon_delta) / _CELL_SIZE))
	max_x := int64(math.Floor((float64(point[0]) + lon_delta) / _CELL_SIZE))
	min_y := int64(math.Floor((float64(point[1]) - lat_delta) / _CELL_SIZE))
	max_y := int64(math.Floor((float64(point[1]) + lat_delta) / _CELL_SIZE))

	result := NewList[int32](10)
	for y := min_y; y <= max_y; y++ {
		for x := min_x; x <= max_x; x++ {
			key := y<<32 | (x & 0xFFFFFFFF)
			if !self.cells.ContainsKey(key) {
				continue
			}
			for _, node := range self.cells[key] {
				if geo.HaversineDistance(point, self.nodes[node].Loc) <= radius {
					result.Add(node)
				}
			}
		}
	}
	return result
}
