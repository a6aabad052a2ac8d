package traffic

import (
	"encoding/json"
	"errors"
)

//*******************************************
// speed groups
//*******************************************

// Bucketed ratio of actual to posted speed. G0 is the slowest bucket,
// TEMP_BLOCK marks an impassable road.
type SpeedGroup byte

const (
	G0         SpeedGroup = 0
	G1         SpeedGroup = 1
	G2         SpeedGroup = 2
	G3         SpeedGroup = 3
	G4         SpeedGroup = 4
	G5         SpeedGroup = 5
	TEMP_BLOCK SpeedGroup = 6
	UNKNOWN    SpeedGroup = 7
)

// upper bound of each group in percent of the posted speed
var speed_group_thresholds = [8]byte{8, 16, 33, 58, 83, 100, 100, 100}

func (self SpeedGroup) Threshold() byte {
	return speed_group_thresholds[self]
}

func (self SpeedGroup) String() string {
	switch self {
	case G0:
		return "G0"
	case G1:
		return "G1"
	case G2:
		return "G2"
	case G3:
		return "G3"
	case G4:
		return "G4"
	case G5:
		return "G5"
	case TEMP_BLOCK:
		return "temp_block"
	case UNKNOWN:
		return "unknown"
	}
	return ""
}

func SpeedGroupFromString(group string) SpeedGroup {
	switch group {
	case "G0":
		return G0
	case "G1":
		return G1
	case "G2":
		return G2
	case "G3":
		return G3
	case "G4":
		return G4
	case "G5":
		return G5
	case "temp_block":
		return TEMP_BLOCK
	}
	return UNKNOWN
}

func (self SpeedGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *SpeedGroup) UnmarshalJSON(data []byte) error {
	var group string
	err := json.Unmarshal(data, &group)
	if err != nil {
		return err
	}
	*self = SpeedGroupFromString(group)
	if *self == UNKNOWN && group != "unknown" {
		return errors.New("invalid speed group: " + group)
	}
	return nil
}

// Returns the group covering the given percentage of the posted speed.
func SpeedGroupByPercentage(percentage float64) SpeedGroup {
	if percentage < 0 {
		percentage = 0
	}
	for group := G0; group <= G5; group++ {
		if percentage <= float64(speed_group_thresholds[group]) {
			return group
		}
	}
	return G5
}

// Combines two congestion observations for the same segment. A hard
// block always wins, unknown never overrides and otherwise the slower
// group is kept.
func CombineSpeedGroups(a, b SpeedGroup) SpeedGroup {
	if a == TEMP_BLOCK || b == TEMP_BLOCK {
		return TEMP_BLOCK
	}
	if a == UNKNOWN {
		return b
	}
	if b == UNKNOWN {
		return a
	}
	if a < b {
		return a
	}
	return b
}
