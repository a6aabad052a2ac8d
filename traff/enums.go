package traff

import (
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// enums
//*******************************************

type Directionality byte

const (
	ONE_DIRECTION   Directionality = 0
	BOTH_DIRECTIONS Directionality = 1
)

func (self Directionality) String() string {
	if self == ONE_DIRECTION {
		return "ONE_DIRECTION"
	}
	return "BOTH_DIRECTIONS"
}
func DirectionalityFromString(value string) Directionality {
	if value == "ONE_DIRECTION" {
		return ONE_DIRECTION
	}
	return BOTH_DIRECTIONS
}

type Ramps byte

const (
	RAMPS_NONE  Ramps = 0
	RAMPS_ALL   Ramps = 1
	RAMPS_ENTRY Ramps = 2
	RAMPS_EXIT  Ramps = 3
)

func (self Ramps) String() string {
	switch self {
	case RAMPS_ALL:
		return "ALL"
	case RAMPS_ENTRY:
		return "ENTRY"
	case RAMPS_EXIT:
		return "EXIT"
	}
	return "NONE"
}
func RampsFromString(value string) Ramps {
	switch value {
	case "ALL":
		return RAMPS_ALL
	case "ENTRY":
		return RAMPS_ENTRY
	case "EXIT":
		return RAMPS_EXIT
	}
	return RAMPS_NONE
}

type RoadClass byte

const (
	CLASS_MOTORWAY  RoadClass = 0
	CLASS_TRUNK     RoadClass = 1
	CLASS_PRIMARY   RoadClass = 2
	CLASS_SECONDARY RoadClass = 3
	CLASS_TERTIARY  RoadClass = 4
	CLASS_OTHER     RoadClass = 5
)

func (self RoadClass) String() string {
	switch self {
	case CLASS_MOTORWAY:
		return "MOTORWAY"
	case CLASS_TRUNK:
		return "TRUNK"
	case CLASS_PRIMARY:
		return "PRIMARY"
	case CLASS_SECONDARY:
		return "SECONDARY"
	case CLASS_TERTIARY:
		return "TERTIARY"
	}
	return "OTHER"
}
func RoadClassFromString(value string) Optional[RoadClass] {
	switch value {
	case "MOTORWAY":
		return Some(CLASS_MOTORWAY)
	case "TRUNK":
		return Some(CLASS_TRUNK)
	case "PRIMARY":
		return Some(CLASS_PRIMARY)
	case "SECONDARY":
		return Some(CLASS_SECONDARY)
	case "TERTIARY":
		return Some(CLASS_TERTIARY)
	case "OTHER":
		return Some(CLASS_OTHER)
	}
	return None[RoadClass]()
}

// Ordering matching attr.RoadType.ClassRank.
func (self RoadClass) Rank() int {
	return int(self)
}

type Fuzziness byte

const (
	FUZZINESS_LOW_RES        Fuzziness = 0
	FUZZINESS_MEDIUM_RES     Fuzziness = 1
	FUZZINESS_START_UNKNOWN  Fuzziness = 2
	FUZZINESS_END_UNKNOWN    Fuzziness = 3
	FUZZINESS_EXTENT_UNKNOWN Fuzziness = 4
)

func (self Fuzziness) String() string {
	switch self {
	case FUZZINESS_LOW_RES:
		return "LOW_RES"
	case FUZZINESS_MEDIUM_RES:
		return "MEDIUM_RES"
	case FUZZINESS_START_UNKNOWN:
		return "START_UNKNOWN"
	case FUZZINESS_END_UNKNOWN:
		return "END_UNKNOWN"
	}
	return "EXTENT_UNKNOWN"
}
func FuzzinessFromString(value string) Optional[Fuzziness] {
	switch value {
	case "LOW_RES":
		return Some(FUZZINESS_LOW_RES)
	case "MEDIUM_RES":
		return Some(FUZZINESS_MEDIUM_RES)
	case "START_UNKNOWN":
		return Some(FUZZINESS_START_UNKNOWN)
	case "END_UNKNOWN":
		return Some(FUZZINESS_END_UNKNOWN)
	case "EXTENT_UNKNOWN":
		return Some(FUZZINESS_EXTENT_UNKNOWN)
	}
	return None[Fuzziness]()
}

//*******************************************
// response status
//*******************************************

type ResponseStatus byte

const (
	STATUS_OK ResponseStatus = iota
	STATUS_INVALID_OPERATION
	STATUS_SUBSCRIPTION_REJECTED
	STATUS_NOT_COVERED
	STATUS_PARTIALLY_COVERED
	STATUS_SUBSCRIPTION_UNKNOWN
	STATUS_PUSH_REJECTED
	STATUS_INTERNAL_ERROR
	// not a wire value, marks responses that could not be parsed
	STATUS_INVALID
)

var response_status_names = Dict[ResponseStatus, string]{
	STATUS_OK:                    "OK",
	STATUS_INVALID_OPERATION:     "INVALID",
	STATUS_SUBSCRIPTION_REJECTED: "SUBSCRIPTION_REJECTED",
	STATUS_NOT_COVERED:           "NOT_COVERED",
	STATUS_PARTIALLY_COVERED:     "PARTIALLY_COVERED",
	STATUS_SUBSCRIPTION_UNKNOWN:  "SUBSCRIPTION_UNKNOWN",
	STATUS_PUSH_REJECTED:         "PUSH_REJECTED",
	STATUS_INTERNAL_ERROR:        "INTERNAL_ERROR",
}

func (self ResponseStatus) String() string {
	if name, ok := response_status_names[self]; ok {
		return name
	}
	return "INVALID_RESPONSE"
}
func ResponseStatusFromString(value string) ResponseStatus {
	for status, name := range response_status_names {
		if name == value {
			return status
		}
	}
	return STATUS_INVALID
}

//*******************************************
// event classes and types
//*******************************************

type EventClass byte

const (
	CLASS_INVALID EventClass = iota
	CLASS_ACTIVITY
	CLASS_AUTHORITY
	CLASS_CARPOOL
	CLASS_CONGESTION
	CLASS_CONSTRUCTION
	CLASS_DELAY
	CLASS_ENVIRONMENT
	CLASS_EQUIPMENT_STATUS
	CLASS_HAZARD
	CLASS_INCIDENT
	CLASS_RESTRICTION
	CLASS_SECURITY
	CLASS_TRANSPORT
	CLASS_WEATHER
)

var event_class_names = Dict[EventClass, string]{
	CLASS_ACTIVITY:         "ACTIVITY",
	CLASS_AUTHORITY:        "AUTHORITY",
	CLASS_CARPOOL:          "CARPOOL",
	CLASS_CONGESTION:       "CONGESTION",
	CLASS_CONSTRUCTION:     "CONSTRUCTION",
	CLASS_DELAY:            "DELAY",
	CLASS_ENVIRONMENT:      "ENVIRONMENT",
	CLASS_EQUIPMENT_STATUS: "EQUIPMENT_STATUS",
	CLASS_HAZARD:           "HAZARD",
	CLASS_INCIDENT:         "INCIDENT",
	CLASS_RESTRICTION:      "RESTRICTION",
	CLASS_SECURITY:         "SECURITY",
	CLASS_TRANSPORT:        "TRANSPORT",
	CLASS_WEATHER:          "WEATHER",
}

func (self EventClass) String() string {
	if name, ok := event_class_names[self]; ok {
		return name
	}
	return "INVALID"
}
func EventClassFromString(value string) EventClass {
	for class, name := range event_class_names {
		if name == value {
			return class
		}
	}
	return CLASS_INVALID
}

type EventType byte

const (
	EVENT_INVALID EventType = iota
	CONGESTION_CLEARED
	CONGESTION_FORECAST_WITHDRAWN
	CONGESTION_HEAVY_TRAFFIC
	CONGESTION_LONG_QUEUE
	CONGESTION_NONE
	CONGESTION_NORMAL_TRAFFIC
	CONGESTION_QUEUE
	CONGESTION_QUEUE_LIKELY
	CONGESTION_SLOW_TRAFFIC
	CONGESTION_STATIONARY_TRAFFIC
	CONGESTION_STATIONARY_TRAFFIC_LIKELY
	CONGESTION_TRAFFIC_BUILDING_UP
	CONGESTION_TRAFFIC_CONGESTION
	CONGESTION_TRAFFIC_EASING
	CONGESTION_TRAFFIC_FLOWING_FREELY
	CONGESTION_TRAFFIC_HEAVIER_THAN_NORMAL
	CONGESTION_TRAFFIC_LIGHTER_THAN_NORMAL
	CONGESTION_TRAFFIC_MUCH_HEAVIER_THAN_NORMAL
	CONGESTION_TRAFFIC_PROBLEM
	DELAY_CLEARANCE
	DELAY_DELAY
	DELAY_DELAY_POSSIBLE
	DELAY_FORECAST_WITHDRAWN
	DELAY_LONG_DELAY
	DELAY_SEVERAL_HOURS
	DELAY_UNCERTAIN_DURATION
	DELAY_VERY_LONG_DELAY
	RESTRICTION_BLOCKED
	RESTRICTION_BLOCKED_AHEAD
	RESTRICTION_CARRIAGEWAY_BLOCKED
	RESTRICTION_CARRIAGEWAY_CLOSED
	RESTRICTION_CLOSED
	RESTRICTION_CLOSED_AHEAD
	RESTRICTION_ENTRY_BLOCKED
	RESTRICTION_ENTRY_REOPENED
	RESTRICTION_EXIT_BLOCKED
	RESTRICTION_EXIT_REOPENED
	RESTRICTION_OPEN
	RESTRICTION_RAMP_BLOCKED
	RESTRICTION_RAMP_CLOSED
	RESTRICTION_RAMP_REOPENED
	RESTRICTION_REOPENED
	RESTRICTION_SPEED_LIMIT
	RESTRICTION_SPEED_LIMIT_LIFTED
)

var event_type_names = Dict[EventType, string]{
	CONGESTION_CLEARED:                          "CONGESTION_CLEARED",
	CONGESTION_FORECAST_WITHDRAWN:               "CONGESTION_FORECAST_WITHDRAWN",
	CONGESTION_HEAVY_TRAFFIC:                    "CONGESTION_HEAVY_TRAFFIC",
	CONGESTION_LONG_QUEUE:                       "CONGESTION_LONG_QUEUE",
	CONGESTION_NONE:                             "CONGESTION_NONE",
	CONGESTION_NORMAL_TRAFFIC:                   "CONGESTION_NORMAL_TRAFFIC",
	CONGESTION_QUEUE:                            "CONGESTION_QUEUE",
	CONGESTION_QUEUE_LIKELY:                     "CONGESTION_QUEUE_LIKELY",
	CONGESTION_SLOW_TRAFFIC:                     "CONGESTION_SLOW_TRAFFIC",
	CONGESTION_STATIONARY_TRAFFIC:               "CONGESTION_STATIONARY_TRAFFIC",
	CONGESTION_STATIONARY_TRAFFIC_LIKELY:        "CONGESTION_STATIONARY_TRAFFIC_LIKELY",
	CONGESTION_TRAFFIC_BUILDING_UP:              "CONGESTION_TRAFFIC_BUILDING_UP",
	CONGESTION_TRAFFIC_CONGESTION:               "CONGESTION_TRAFFIC_CONGESTION",
	CONGESTION_TRAFFIC_EASING:                   "CONGESTION_TRAFFIC_EASING",
	CONGESTION_TRAFFIC_FLOWING_FREELY:           "CONGESTION_TRAFFIC_FLOWING_FREELY",
	CONGESTION_TRAFFIC_HEAVIER_THAN_NORMAL:      "CONGESTION_TRAFFIC_HEAVIER_THAN_NORMAL",
	CONGESTION_TRAFFIC_LIGHTER_THAN_NORMAL:      "CONGESTION_TRAFFIC_LIGHTER_THAN_NORMAL",
	CONGESTION_TRAFFIC_MUCH_HEAVIER_THAN_NORMAL: "CONGESTION_TRAFFIC_MUCH_HEAVIER_THAN_NORMAL",
	CONGESTION_TRAFFIC_PROBLEM:                  "CONGESTION_TRAFFIC_PROBLEM",
	DELAY_CLEARANCE:                             "DELAY_CLEARANCE",
	DELAY_DELAY:                                 "DELAY_DELAY",
	DELAY_DELAY_POSSIBLE:                        "DELAY_DELAY_POSSIBLE",
	DELAY_FORECAST_WITHDRAWN:                    "DELAY_FORECAST_WITHDRAWN",
	DELAY_LONG_DELAY:                            "DELAY_LONG_DELAY",
	DELAY_SEVERAL_HOURS:                         "DELAY_SEVERAL_HOURS",
	DELAY_UNCERTAIN_DURATION:                    "DELAY_UNCERTAIN_DURATION",
	DELAY_VERY_LONG_DELAY:                       "DELAY_VERY_LONG_DELAY",
	RESTRICTION_BLOCKED:                         "RESTRICTION_BLOCKED",
	RESTRICTION_BLOCKED_AHEAD:                   "RESTRICTION_BLOCKED_AHEAD",
	RESTRICTION_CARRIAGEWAY_BLOCKED:             "RESTRICTION_CARRIAGEWAY_BLOCKED",
	RESTRICTION_CARRIAGEWAY_CLOSED:              "RESTRICTION_CARRIAGEWAY_CLOSED",
	RESTRICTION_CLOSED:                          "RESTRICTION_CLOSED",
	RESTRICTION_CLOSED_AHEAD:                    "RESTRICTION_CLOSED_AHEAD",
	RESTRICTION_ENTRY_BLOCKED:                   "RESTRICTION_ENTRY_BLOCKED",
	RESTRICTION_ENTRY_REOPENED:                  "RESTRICTION_ENTRY_REOPENED",
	RESTRICTION_EXIT_BLOCKED:                    "RESTRICTION_EXIT_BLOCKED",
	RESTRICTION_EXIT_REOPENED:                   "RESTRICTION_EXIT_REOPENED",
	RESTRICTION_OPEN:                            "RESTRICTION_OPEN",
	RESTRICTION_RAMP_BLOCKED:                    "RESTRICTION_RAMP_BLOCKED",
	RESTRICTION_RAMP_CLOSED:                     "RESTRICTION_RAMP_CLOSED",
	RESTRICTION_RAMP_REOPENED:                   "RESTRICTION_RAMP_REOPENED",
	RESTRICTION_REOPENED:                        "RESTRICTION_REOPENED",
	RESTRICTION_SPEED_LIMIT:                     "RESTRICTION_SPEED_LIMIT",
	RESTRICTION_SPEED_LIMIT_LIFTED:              "RESTRICTION_SPEED_LIMIT_LIFTED",
}

func (self EventType) String() string {
	if name, ok := event_type_names[self]; ok {
		return name
	}
	return "INVALID"
}
func EventTypeFromString(value string) EventType {
	for typ, name := range event_type_names {
		if name == value {
			return typ
		}
	}
	return EVENT_INVALID
}
