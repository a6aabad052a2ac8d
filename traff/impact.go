package traff

import (
	"github.com/ttpr0/go-traffic/traffic"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// traffic impact
//*******************************************

// sentinel for "no speed limit known"
const MAXSPEED_NONE uint8 = 255

// Consolidated impact of all events of a message.
type TrafficImpact struct {
	SpeedGroup traffic.SpeedGroup
	Maxspeed   uint8
	DelayMins  uint16
}

func NewTrafficImpact() TrafficImpact {
	return TrafficImpact{
		SpeedGroup: traffic.UNKNOWN,
		Maxspeed:   MAXSPEED_NONE,
		DelayMins:  0,
	}
}

// Two impacts carrying a hard block are equal regardless of their
// other members.
func (self TrafficImpact) Equal(other TrafficImpact) bool {
	if self.SpeedGroup == traffic.TEMP_BLOCK && other.SpeedGroup == traffic.TEMP_BLOCK {
		return true
	}
	return self == other
}

func (self TrafficImpact) IsEmpty() bool {
	return self.SpeedGroup == traffic.UNKNOWN && self.Maxspeed == MAXSPEED_NONE && self.DelayMins == 0
}

var event_speed_groups = Dict[EventType, traffic.SpeedGroup]{
	CONGESTION_HEAVY_TRAFFIC:                    traffic.G4,
	CONGESTION_LONG_QUEUE:                       traffic.G0,
	CONGESTION_NONE:                             traffic.G5,
	CONGESTION_NORMAL_TRAFFIC:                   traffic.G5,
	CONGESTION_QUEUE:                            traffic.G2,
	CONGESTION_QUEUE_LIKELY:                     traffic.G3,
	CONGESTION_SLOW_TRAFFIC:                     traffic.G3,
	CONGESTION_STATIONARY_TRAFFIC:               traffic.G1,
	CONGESTION_STATIONARY_TRAFFIC_LIKELY:        traffic.G2,
	CONGESTION_TRAFFIC_BUILDING_UP:              traffic.G4,
	CONGESTION_TRAFFIC_CONGESTION:               traffic.G3,
	CONGESTION_TRAFFIC_FLOWING_FREELY:           traffic.G5,
	CONGESTION_TRAFFIC_HEAVIER_THAN_NORMAL:      traffic.G4,
	CONGESTION_TRAFFIC_LIGHTER_THAN_NORMAL:      traffic.G5,
	CONGESTION_TRAFFIC_MUCH_HEAVIER_THAN_NORMAL: traffic.G3,
	CONGESTION_TRAFFIC_PROBLEM:                  traffic.G3,
	DELAY_DELAY:                                 traffic.G2,
	DELAY_DELAY_POSSIBLE:                        traffic.G3,
	DELAY_LONG_DELAY:                            traffic.G1,
	DELAY_VERY_LONG_DELAY:                       traffic.G0,
	RESTRICTION_BLOCKED:                         traffic.TEMP_BLOCK,
	RESTRICTION_BLOCKED_AHEAD:                   traffic.TEMP_BLOCK,
	RESTRICTION_CLOSED:                          traffic.TEMP_BLOCK,
	RESTRICTION_CLOSED_AHEAD:                    traffic.TEMP_BLOCK,
	RESTRICTION_ENTRY_BLOCKED:                   traffic.TEMP_BLOCK,
	RESTRICTION_EXIT_BLOCKED:                    traffic.TEMP_BLOCK,
	RESTRICTION_RAMP_BLOCKED:                    traffic.TEMP_BLOCK,
	RESTRICTION_RAMP_CLOSED:                     traffic.TEMP_BLOCK,
	RESTRICTION_SPEED_LIMIT:                     traffic.G4,
}

var event_delays = Dict[EventType, uint16]{
	DELAY_SEVERAL_HOURS:      150,
	DELAY_UNCERTAIN_DURATION: 60,
}

// Consolidates all events of the message into a single impact. A hard
// block short-circuits, otherwise the worst speed group, the lowest
// explicit speed and the largest delay are combined. Returns None if
// no event carries an actual impact.
func (self *Message) GetTrafficImpact() Optional[TrafficImpact] {
	if self.Events.Length() == 0 {
		return None[TrafficImpact]()
	}

	impacts := NewList[TrafficImpact](self.Events.Length())
	for _, event := range self.Events {
		impact := NewTrafficImpact()
		if group, ok := event_speed_groups[event.Type]; ok {
			impact.SpeedGroup = group
		}
		if event.Speed.HasValue() {
			impact.Maxspeed = event.Speed.Value
		}
		// clearance/withdrawn events carry no delay, the assumed
		// durations always override an explicit one
		if event.DurationMins.HasValue() && event.Class == CLASS_DELAY &&
			event.Type != DELAY_CLEARANCE &&
			event.Type != DELAY_FORECAST_WITHDRAWN &&
			event.Type != DELAY_SEVERAL_HOURS &&
			event.Type != DELAY_UNCERTAIN_DURATION {
			impact.DelayMins = event.DurationMins.Value
		} else if delay, ok := event_delays[event.Type]; ok {
			impact.DelayMins = delay
		}

		if impact.SpeedGroup == traffic.TEMP_BLOCK {
			return Some(impact)
		}
		if !impact.IsEmpty() {
			impacts.Add(impact)
		}
	}
	if impacts.Length() == 0 {
		return None[TrafficImpact]()
	}

	result := NewTrafficImpact()
	for _, impact := range impacts {
		if result.SpeedGroup == traffic.UNKNOWN {
			result.SpeedGroup = impact.SpeedGroup
		} else if impact.SpeedGroup != traffic.UNKNOWN && impact.SpeedGroup < result.SpeedGroup {
			result.SpeedGroup = impact.SpeedGroup
		}
		if impact.Maxspeed < result.Maxspeed {
			result.Maxspeed = impact.Maxspeed
		}
		if impact.DelayMins > result.DelayMins {
			result.DelayMins = impact.DelayMins
		}
	}
	if result.IsEmpty() {
		return None[TrafficImpact]()
	}
	return Some(result)
}
