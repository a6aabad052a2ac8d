package traff

import (
	"errors"
	"strings"
	"time"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/traffic"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// data model
//*******************************************

type Point struct {
	Coordinates geo.Coord
	// kilometric marker along the road
	Distance     Optional[float32]
	JunctionName Optional[string]
	JunctionRef  Optional[string]
}

// Points are equal if their coordinates are, other attributes are
// not compared.
func (self Point) Equal(other Point) bool {
	return self.Coordinates == other.Coordinates
}

type PointRole byte

const (
	ROLE_FROM PointRole = iota
	ROLE_TO
	ROLE_AT
	ROLE_VIA
	ROLE_NOT_VIA
)

// Abstract road reference described by named endpoints and road
// attributes rather than raw geometry.
type Location struct {
	Country        Optional[string]
	Destination    Optional[string]
	Direction      Optional[string]
	Directionality Directionality
	Fuzziness      Optional[Fuzziness]
	Origin         Optional[string]
	Ramps          Ramps
	RoadClass      Optional[RoadClass]
	RoadRef        Optional[string]
	RoadName       Optional[string]
	Territory      Optional[string]
	Town           Optional[string]

	From   Optional[Point]
	To     Optional[Point]
	At     Optional[Point]
	Via    Optional[Point]
	NotVia Optional[Point]
}

// Builds a location from reference points. At least two of the from,
// at and to roles must be present, single-point locations are not
// representable.
func NewLocation(directionality Directionality, points Dict[PointRole, Point]) (Location, error) {
	location := Location{
		Directionality: directionality,
	}
	for role, point := range points {
		location.SetPoint(role, point)
	}
	num_points := 0
	for _, point := range []Optional[Point]{location.From, location.At, location.To} {
		if point.HasValue() {
			num_points++
		}
	}
	if num_points < 2 {
		return Location{}, errors.New("at least two of from/at/to must be present")
	}
	return location, nil
}

func (self *Location) SetPoint(role PointRole, point Point) {
	switch role {
	case ROLE_FROM:
		self.From = Some(point)
	case ROLE_TO:
		self.To = Some(point)
	case ROLE_AT:
		self.At = Some(point)
	case ROLE_VIA:
		self.Via = Some(point)
	case ROLE_NOT_VIA:
		self.NotVia = Some(point)
	}
}

// True if the location references a single point on the road, given
// by at plus exactly one neighbouring endpoint.
func (self *Location) IsPoint() bool {
	if !self.At.HasValue() {
		return false
	}
	return self.From.HasValue() != self.To.HasValue()
}

// Locations are equal if they contain the same points in the same
// roles. Descriptive attributes are not compared.
func (self *Location) Equal(other *Location) bool {
	if other == nil {
		return false
	}
	roles := [](func(l *Location) Optional[Point]){
		func(l *Location) Optional[Point] { return l.From },
		func(l *Location) Optional[Point] { return l.To },
		func(l *Location) Optional[Point] { return l.At },
		func(l *Location) Optional[Point] { return l.Via },
		func(l *Location) Optional[Point] { return l.NotVia },
	}
	for _, role := range roles {
		a := role(self)
		b := role(other)
		if a.HasValue() != b.HasValue() {
			return false
		}
		if a.HasValue() && !a.Value.Equal(b.Value) {
			return false
		}
	}
	return self.Directionality == other.Directionality
}

type Event struct {
	Class        EventClass
	Type         EventType
	Length       Optional[uint16]
	Probability  Optional[uint8]
	DurationMins Optional[uint16]
	Speed        Optional[uint8]
}

// True if the event type belongs to the event class.
func (self *Event) IsConsistent() bool {
	return strings.HasPrefix(self.Type.String(), self.Class.String()+"_")
}

type Message struct {
	Id             string
	Replaces       List[string]
	ReceiveTime    time.Time
	UpdateTime     time.Time
	ExpirationTime time.Time
	StartTime      Optional[time.Time]
	EndTime        Optional[time.Time]
	Cancellation   bool
	Forecast       bool
	Location       Optional[Location]
	Events         List[Event]

	// decoded congestion map, filled by the decoder and carried with
	// the message through the cache
	Coloring Optional[traffic.MultiTileColoring]
}

// The latest of expiration, start and end time. Messages whose start
// or end lies beyond their nominal expiration stay valid until then.
func (self *Message) EffectiveExpiration() time.Time {
	expiration := self.ExpirationTime
	if self.StartTime.HasValue() && self.StartTime.Value.After(expiration) {
		expiration = self.StartTime.Value
	}
	if self.EndTime.HasValue() && self.EndTime.Value.After(expiration) {
		expiration = self.EndTime.Value
	}
	return expiration
}

func (self *Message) IsExpired(now time.Time) bool {
	return now.After(self.EffectiveExpiration())
}

type Feed struct {
	Messages List[*Message]
}

type Response struct {
	Status         ResponseStatus
	SubscriptionId Optional[string]
	Feed           Optional[Feed]
}
