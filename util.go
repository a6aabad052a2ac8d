package main

import (
	"os"

	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/traffic"
	. "github.com/ttpr0/go-traffic/util"
)

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// BuildSegmentIndex maps every stable road-segment id onto its graph edge,
// used to resolve coloring entries back to renderable geometries.
func BuildSegmentIndex(g *graph.Graph) Dict[traffic.RoadSegmentId, int32] {
	segments := NewDict[traffic.RoadSegmentId, int32](g.EdgeCount())
	for i := 0; i < g.EdgeCount(); i++ {
		attribs := g.GetEdgeAttribs(int32(i))
		segments[traffic.NewRoadSegmentId(attribs.Feature, attribs.SegmentIndex, attribs.Dir)] = int32(i)
	}
	return segments
}
