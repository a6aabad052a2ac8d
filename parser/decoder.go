package parser

import (
	"github.com/ttpr0/go-traffic/attr"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// osm tag decoding
//*******************************************

var road_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "unclassified": true, "road": true, "track": true}

func _IsValidHighway(tags Dict[string, string]) bool {
	if tags.Get("route") == "ferry" {
		return true
	}
	if !tags.ContainsKey("highway") {
		return false
	}
	return road_types.ContainsKey(tags.Get("highway"))
}

func _DecodeNode(tags Dict[string, string]) attr.NodeAttribs {
	return attr.NodeAttribs{Type: 0}
}

// Decodes the per-way attributes shared by every edge split from the
// way. Length, feature and tile assignment happen during the split.
func _DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs {
	e := attr.EdgeAttribs{}
	if tags.Get("route") == "ferry" {
		e.Type = attr.FERRY
	} else {
		e.Type = _GetType(tags.Get("highway"))
	}
	e.Maxspeed = byte(_GetMaxspeed(tags.Get("maxspeed"), e.Type))
	e.Oneway = _IsOneway(tags.Get("oneway"), tags.Get("junction"), e.Type)
	e.Roundabout = _IsRoundabout(tags.Get("junction"))
	e.Ref = tags.Get("ref")
	return e
}
