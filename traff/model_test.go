package traff

import (
	"testing"
	"time"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/traffic"
	. "github.com/ttpr0/go-traffic/util"
)

func TestNewLocationValidation(t *testing.T) {
	point := Point{Coordinates: geo.Coord{13.0, 52.0}}

	_, err := NewLocation(ONE_DIRECTION, Dict[PointRole, Point]{ROLE_FROM: point})
	if err == nil {
		t.Errorf("NewLocation with one point: err = nil; want error")
	}

	location, err := NewLocation(ONE_DIRECTION, Dict[PointRole, Point]{ROLE_FROM: point, ROLE_TO: point})
	if err != nil {
		t.Errorf("NewLocation with from/to: err = %v; want nil", err)
	}
	if location.IsPoint() {
		t.Errorf("location.IsPoint() = true; want false")
	}

	location, err = NewLocation(ONE_DIRECTION, Dict[PointRole, Point]{ROLE_AT: point, ROLE_TO: point})
	if err != nil {
		t.Errorf("NewLocation with at/to: err = %v; want nil", err)
	}
	if !location.IsPoint() {
		t.Errorf("location.IsPoint() = false; want true")
	}
}

func TestLocationEqual(t *testing.T) {
	from := Point{Coordinates: geo.Coord{13.0, 52.0}}
	to := Point{Coordinates: geo.Coord{13.1, 52.1}}

	a, _ := NewLocation(ONE_DIRECTION, Dict[PointRole, Point]{ROLE_FROM: from, ROLE_TO: to})
	b, _ := NewLocation(ONE_DIRECTION, Dict[PointRole, Point]{ROLE_FROM: from, ROLE_TO: to})
	if !a.Equal(&b) {
		t.Errorf("a.Equal(b) = false; want true")
	}

	// junction attributes do not matter for equality
	named := from
	named.JunctionName = Some("Kreuz West")
	c, _ := NewLocation(ONE_DIRECTION, Dict[PointRole, Point]{ROLE_FROM: named, ROLE_TO: to})
	if !a.Equal(&c) {
		t.Errorf("a.Equal(c) = false; want true")
	}

	d, _ := NewLocation(ONE_DIRECTION, Dict[PointRole, Point]{ROLE_FROM: to, ROLE_TO: from})
	if a.Equal(&d) {
		t.Errorf("a.Equal(d) = true; want false")
	}
}

func TestEffectiveExpiration(t *testing.T) {
	expiration := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	end := expiration.Add(2 * time.Hour)

	message := Message{ExpirationTime: expiration}
	if !message.EffectiveExpiration().Equal(expiration) {
		t.Errorf("EffectiveExpiration = %v; want %v", message.EffectiveExpiration(), expiration)
	}
	if !message.IsExpired(expiration.Add(time.Second)) {
		t.Errorf("IsExpired = false; want true")
	}

	message.EndTime = Some(end)
	if !message.EffectiveExpiration().Equal(end) {
		t.Errorf("EffectiveExpiration = %v; want %v", message.EffectiveExpiration(), end)
	}
	if message.IsExpired(expiration.Add(time.Second)) {
		t.Errorf("IsExpired = true; want false until end time passed")
	}
}

func TestGetTrafficImpactWorstOf(t *testing.T) {
	message := Message{}
	message.Events.Add(Event{Class: CLASS_CONGESTION, Type: CONGESTION_QUEUE})
	message.Events.Add(Event{Class: CLASS_CONGESTION, Type: CONGESTION_HEAVY_TRAFFIC})
	message.Events.Add(Event{Class: CLASS_DELAY, Type: DELAY_SEVERAL_HOURS})

	impact := message.GetTrafficImpact()
	if !impact.HasValue() {
		t.Fatalf("GetTrafficImpact = None; want impact")
	}
	if impact.Value.SpeedGroup != traffic.G2 {
		t.Errorf("impact.SpeedGroup = %v; want G2", impact.Value.SpeedGroup)
	}
	if impact.Value.DelayMins != 150 {
		t.Errorf("impact.DelayMins = %v; want 150", impact.Value.DelayMins)
	}
	if impact.Value.Maxspeed != MAXSPEED_NONE {
		t.Errorf("impact.Maxspeed = %v; want none", impact.Value.Maxspeed)
	}
}

func TestGetTrafficImpactAssumedDurations(t *testing.T) {
	// explicit durations are honored for plain delay events
	message := Message{}
	message.Events.Add(Event{Class: CLASS_DELAY, Type: DELAY_DELAY, DurationMins: Some(uint16(25))})
	impact := message.GetTrafficImpact()
	if !impact.HasValue() || impact.Value.DelayMins != 25 {
		t.Errorf("DELAY_DELAY impact.DelayMins = %v; want 25", impact.Value.DelayMins)
	}

	// but the assumed durations always win over an explicit one
	message = Message{}
	message.Events.Add(Event{Class: CLASS_DELAY, Type: DELAY_SEVERAL_HOURS, DurationMins: Some(uint16(30))})
	impact = message.GetTrafficImpact()
	if !impact.HasValue() || impact.Value.DelayMins != 150 {
		t.Errorf("DELAY_SEVERAL_HOURS impact.DelayMins = %v; want 150", impact.Value.DelayMins)
	}

	message = Message{}
	message.Events.Add(Event{Class: CLASS_DELAY, Type: DELAY_UNCERTAIN_DURATION, DurationMins: Some(uint16(30))})
	impact = message.GetTrafficImpact()
	if !impact.HasValue() || impact.Value.DelayMins != 60 {
		t.Errorf("DELAY_UNCERTAIN_DURATION impact.DelayMins = %v; want 60", impact.Value.DelayMins)
	}

	// a clearance never yields a delay, even with a duration attached
	message = Message{}
	message.Events.Add(Event{Class: CLASS_DELAY, Type: DELAY_CLEARANCE, DurationMins: Some(uint16(45))})
	if message.GetTrafficImpact().HasValue() {
		t.Errorf("DELAY_CLEARANCE with duration; want no impact")
	}
}

func TestGetTrafficImpactBlockShortCircuits(t *testing.T) {
	message := Message{}
	message.Events.Add(Event{Class: CLASS_RESTRICTION, Type: RESTRICTION_CLOSED})
	message.Events.Add(Event{Class: CLASS_CONGESTION, Type: CONGESTION_NONE})

	impact := message.GetTrafficImpact()
	if !impact.HasValue() || impact.Value.SpeedGroup != traffic.TEMP_BLOCK {
		t.Errorf("impact.SpeedGroup = %v; want TEMP_BLOCK", impact.Value.SpeedGroup)
	}
}

func TestGetTrafficImpactNoImpact(t *testing.T) {
	message := Message{}
	if message.GetTrafficImpact().HasValue() {
		t.Errorf("GetTrafficImpact on empty message; want None")
	}
	// a cleared congestion has no mapped impact
	message.Events.Add(Event{Class: CLASS_CONGESTION, Type: CONGESTION_CLEARED})
	if message.GetTrafficImpact().HasValue() {
		t.Errorf("GetTrafficImpact = impact; want None")
	}
}

func TestTrafficImpactEqual(t *testing.T) {
	a := TrafficImpact{SpeedGroup: traffic.TEMP_BLOCK, Maxspeed: 30, DelayMins: 10}
	b := TrafficImpact{SpeedGroup: traffic.TEMP_BLOCK, Maxspeed: MAXSPEED_NONE, DelayMins: 0}
	if !a.Equal(b) {
		t.Errorf("blocked impacts not equal; want equal regardless of other members")
	}

	c := TrafficImpact{SpeedGroup: traffic.G2, Maxspeed: 30, DelayMins: 10}
	d := TrafficImpact{SpeedGroup: traffic.G2, Maxspeed: 30, DelayMins: 20}
	if c.Equal(d) {
		t.Errorf("c.Equal(d) = true; want false")
	}
}

func TestEventConsistency(t *testing.T) {
	event := Event{Class: CLASS_CONGESTION, Type: CONGESTION_QUEUE}
	if !event.IsConsistent() {
		t.Errorf("event.IsConsistent() = false; want true")
	}
	event = Event{Class: CLASS_DELAY, Type: CONGESTION_QUEUE}
	if event.IsConsistent() {
		t.Errorf("event.IsConsistent() = true; want false")
	}
}
