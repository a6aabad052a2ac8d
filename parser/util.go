package parser

import (
	"strconv"

	"github.com/ttpr0/go-traffic/attr"
)

//*******************************************
// utility methods
//*******************************************

func _IsOneway(oneway string, junction string, typ attr.RoadType) bool {
	if typ == attr.MOTORWAY || typ == attr.TRUNK || typ == attr.MOTORWAY_LINK || typ == attr.TRUNK_LINK {
		return oneway != "no"
	}
	if junction == "roundabout" || junction == "circular" {
		return true
	}
	return oneway == "yes"
}

func _IsRoundabout(junction string) bool {
	return junction == "roundabout" || junction == "circular"
}

func _GetType(typ string) attr.RoadType {
	switch typ {
	case "motorway":
		return attr.MOTORWAY
	case "motorway_link":
		return attr.MOTORWAY_LINK
	case "trunk":
		return attr.TRUNK
	case "trunk_link":
		return attr.TRUNK_LINK
	case "primary":
		return attr.PRIMARY
	case "primary_link":
		return attr.PRIMARY_LINK
	case "secondary":
		return attr.SECONDARY
	case "secondary_link":
		return attr.SECONDARY_LINK
	case "tertiary":
		return attr.TERTIARY
	case "tertiary_link":
		return attr.TERTIARY_LINK
	case "residential":
		return attr.RESIDENTIAL
	case "living_street":
		return attr.LIVING_STREET
	case "unclassified":
		return attr.UNCLASSIFIED
	case "road":
		return attr.ROAD
	case "track":
		return attr.TRACK
	}
	return attr.UNKNOWN
}

// Posted speed limit in km/h, falling back to defaults per road type.
// 0 means unknown, the decoder skips such edges when converting
// delays to speed groups.
func _GetMaxspeed(maxspeed string, typ attr.RoadType) int32 {
	if maxspeed == "" {
		switch typ {
		case attr.MOTORWAY, attr.TRUNK:
			return 130
		case attr.MOTORWAY_LINK, attr.TRUNK_LINK:
			return 60
		case attr.PRIMARY, attr.SECONDARY:
			return 100
		case attr.TERTIARY:
			return 70
		case attr.PRIMARY_LINK, attr.SECONDARY_LINK, attr.TERTIARY_LINK:
			return 50
		case attr.RESIDENTIAL, attr.UNCLASSIFIED:
			return 50
		case attr.LIVING_STREET:
			return 10
		case attr.FERRY:
			return 0
		default:
			return 30
		}
	}
	if maxspeed == "walk" {
		return 10
	}
	if maxspeed == "none" {
		return 130
	}
	speed, err := strconv.Atoi(maxspeed)
	if err != nil {
		return 0
	}
	return int32(speed)
}
