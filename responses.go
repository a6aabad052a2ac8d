package main

import (
	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/traffic"
	. "github.com/ttpr0/go-traffic/util"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type StateResponse struct {
	State   TrafficState `json:"state"`
	Enabled bool         `json:"enabled"`
}

// NewColoringResponse renders the merged coloring as a GeoJSON feature
// collection, one line feature per colored road segment.
func NewColoringResponse(coloring traffic.MultiTileColoring, g *graph.Graph, segments Dict[traffic.RoadSegmentId, int32]) geo.FeatureCollection {
	features := NewList[geo.Feature](100)
	for tile, groups := range coloring {
		for segment, group := range groups {
			if !segments.ContainsKey(segment) {
				continue
			}
			edge := segments.Get(segment)
			geom := geo.NewLineString(g.GetEdgeGeom(edge))
			props := NewDict[string, any](2)
			props["tile"] = tile.String()
			props["speed_group"] = group.String()
			obj := geo.NewFeature(geom, props)
			features.Add(obj)
		}
	}
	return geo.NewFeatureCollection(features)
}
