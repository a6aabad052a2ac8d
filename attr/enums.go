package attr

import (
	"encoding/json"
	"errors"
)

//*******************************************
// enums
//*******************************************

type RoadType int8

const (
	UNKNOWN        RoadType = 0
	MOTORWAY       RoadType = 1
	MOTORWAY_LINK  RoadType = 2
	TRUNK          RoadType = 3
	TRUNK_LINK     RoadType = 4
	PRIMARY        RoadType = 5
	PRIMARY_LINK   RoadType = 6
	SECONDARY      RoadType = 7
	SECONDARY_LINK RoadType = 8
	TERTIARY       RoadType = 9
	TERTIARY_LINK  RoadType = 10
	RESIDENTIAL    RoadType = 11
	LIVING_STREET  RoadType = 12
	UNCLASSIFIED   RoadType = 13
	ROAD           RoadType = 14
	TRACK          RoadType = 15
	FERRY          RoadType = 16
)

func (self RoadType) String() string {
	switch self {
	case MOTORWAY:
		return "motorway"
	case MOTORWAY_LINK:
		return "motorway_link"
	case TRUNK:
		return "trunk"
	case TRUNK_LINK:
		return "trunk_link"
	case PRIMARY:
		return "primary"
	case PRIMARY_LINK:
		return "primary_link"
	case SECONDARY:
		return "secondary"
	case SECONDARY_LINK:
		return "secondary_link"
	case TERTIARY:
		return "tertiary"
	case TERTIARY_LINK:
		return "tertiary_link"
	case RESIDENTIAL:
		return "residential"
	case LIVING_STREET:
		return "living_street"
	case UNCLASSIFIED:
		return "unclassified"
	case ROAD:
		return "road"
	case TRACK:
		return "track"
	case FERRY:
		return "ferry"
	}
	return ""
}

func RoadTypeFromString(typ string) RoadType {
	switch typ {
	case "motorway":
		return MOTORWAY
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk":
		return TRUNK
	case "trunk_link":
		return TRUNK_LINK
	case "primary":
		return PRIMARY
	case "primary_link":
		return PRIMARY_LINK
	case "secondary":
		return SECONDARY
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary":
		return TERTIARY
	case "tertiary_link":
		return TERTIARY_LINK
	case "residential":
		return RESIDENTIAL
	case "living_street":
		return LIVING_STREET
	case "unclassified":
		return UNCLASSIFIED
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "ferry":
		return FERRY
	}
	return UNKNOWN
}

func (self RoadType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *RoadType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self = RoadTypeFromString(typ)
	if *self == UNKNOWN && typ != "" {
		return errors.New("invalid road type: " + typ)
	}
	return nil
}

// True for ramps and other link roads connecting carriageways.
func (self RoadType) IsLink() bool {
	switch self {
	case MOTORWAY_LINK, TRUNK_LINK, PRIMARY_LINK, SECONDARY_LINK, TERTIARY_LINK:
		return true
	}
	return false
}

// Collapses link types onto their parent road and orders roads from
// motorway (0) downwards. Returns -1 for types without a rank.
func (self RoadType) ClassRank() int {
	switch self {
	case MOTORWAY, MOTORWAY_LINK:
		return 0
	case TRUNK, TRUNK_LINK:
		return 1
	case PRIMARY, PRIMARY_LINK:
		return 2
	case SECONDARY, SECONDARY_LINK:
		return 3
	case TERTIARY, TERTIARY_LINK:
		return 4
	case UNCLASSIFIED, ROAD:
		return 5
	case RESIDENTIAL, LIVING_STREET:
		return 6
	case TRACK:
		return 7
	}
	return -1
}
