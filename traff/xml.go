package traff

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ttpr0/go-traffic/geo"
	. "github.com/ttpr0/go-traffic/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// wire format
//*******************************************

type xmlPoint struct {
	Distance     string `xml:"distance,attr"`
	JunctionName string `xml:"junction_name,attr"`
	JunctionRef  string `xml:"junction_ref,attr"`
	Coordinates  string `xml:",chardata"`
}

type xmlLocation struct {
	Country        string    `xml:"country,attr"`
	Destination    string    `xml:"destination,attr"`
	Direction      string    `xml:"direction,attr"`
	Directionality string    `xml:"directionality,attr"`
	Fuzziness      string    `xml:"fuzziness,attr"`
	Origin         string    `xml:"origin,attr"`
	Ramps          string    `xml:"ramps,attr"`
	RoadClass      string    `xml:"road_class,attr"`
	RoadRef        string    `xml:"road_ref,attr"`
	RoadName       string    `xml:"road_name,attr"`
	Territory      string    `xml:"territory,attr"`
	Town           string    `xml:"town,attr"`
	From           *xmlPoint `xml:"from"`
	To             *xmlPoint `xml:"to"`
	At             *xmlPoint `xml:"at"`
	Via            *xmlPoint `xml:"via"`
	NotVia         *xmlPoint `xml:"not_via"`
}

type xmlEvent struct {
	Class       string `xml:"class,attr"`
	Type        string `xml:"type,attr"`
	Length      string `xml:"length,attr"`
	Probability string `xml:"probability,attr"`
	QDuration   string `xml:"q_duration,attr"`
	Speed       string `xml:"speed,attr"`
}

type xmlReplaces struct {
	Id string `xml:"id,attr"`
}

type xmlMessage struct {
	Id             string        `xml:"id,attr"`
	ReceiveTime    string        `xml:"receive_time,attr"`
	UpdateTime     string        `xml:"update_time,attr"`
	ExpirationTime string        `xml:"expiration_time,attr"`
	StartTime      string        `xml:"start_time,attr"`
	EndTime        string        `xml:"end_time,attr"`
	Cancellation   string        `xml:"cancellation,attr"`
	Forecast       string        `xml:"forecast,attr"`
	Replaces       []xmlReplaces `xml:"merge>replaces"`
	Location       *xmlLocation  `xml:"location"`
	Events         []xmlEvent    `xml:"events>event"`
}

type xmlFeed struct {
	XMLName  xml.Name     `xml:"feed"`
	Messages []xmlMessage `xml:"message"`
}

type xmlResponse struct {
	XMLName        xml.Name `xml:"response"`
	Status         string   `xml:"status,attr"`
	SubscriptionId string   `xml:"subscription_id,attr"`
	Feed           *xmlFeed `xml:"feed"`
}

//*******************************************
// parsing
//*******************************************

// Parses a TraFF feed. Invalid messages are logged and skipped, the
// feed itself only fails on malformed XML. now is used as fallback
// receive time.
func ParseFeed(data []byte, now time.Time) (Feed, error) {
	var raw xmlFeed
	if err := xml.Unmarshal(data, &raw); err != nil {
		return Feed{}, err
	}
	return _ConvertFeed(&raw, now), nil
}

// Parses the response to a TraFF request. Responses that cannot be
// parsed yield STATUS_INVALID rather than an error.
func ParseResponse(data []byte, now time.Time) Response {
	var raw xmlResponse
	if err := xml.Unmarshal(data, &raw); err != nil {
		return Response{Status: STATUS_INVALID}
	}
	result := Response{
		Status: ResponseStatusFromString(raw.Status),
	}
	if raw.SubscriptionId != "" {
		result.SubscriptionId = Some(raw.SubscriptionId)
	}
	if raw.Feed != nil {
		result.Feed = Some(_ConvertFeed(raw.Feed, now))
	}
	return result
}

func _ConvertFeed(raw *xmlFeed, now time.Time) Feed {
	feed := Feed{Messages: NewList[*Message](len(raw.Messages))}
	for i := range raw.Messages {
		message, ok := _ConvertMessage(&raw.Messages[i], now)
		if !ok {
			continue
		}
		feed.Messages.Add(message)
	}
	return feed
}

func _ConvertMessage(raw *xmlMessage, now time.Time) (*Message, bool) {
	if raw.Id == "" {
		slog.Warn("message has no id, ignoring")
		return nil, false
	}
	message := &Message{Id: raw.Id}

	receive_time, err := _ParseTime(raw.ReceiveTime)
	if err != nil {
		receive_time = now
	}
	message.ReceiveTime = receive_time
	update_time, err := _ParseTime(raw.UpdateTime)
	if err != nil {
		update_time = receive_time
	}
	message.UpdateTime = update_time
	expiration_time, err := _ParseTime(raw.ExpirationTime)
	if err != nil {
		slog.Warn("message " + raw.Id + " has no expiration_time, ignoring")
		return nil, false
	}
	message.ExpirationTime = expiration_time
	if t, err := _ParseTime(raw.StartTime); err == nil {
		message.StartTime = Some(t)
	}
	if t, err := _ParseTime(raw.EndTime); err == nil {
		message.EndTime = Some(t)
	}
	message.Cancellation = raw.Cancellation == "true"
	message.Forecast = raw.Forecast == "true"
	message.Replaces = NewList[string](len(raw.Replaces))
	for _, replaces := range raw.Replaces {
		if replaces.Id != "" {
			message.Replaces.Add(replaces.Id)
		}
	}

	if message.Cancellation {
		return message, true
	}

	// non-cancellation messages need a location and at least one event
	location, ok := _ConvertLocation(raw.Location)
	if !ok {
		slog.Warn("message " + raw.Id + " has no usable location, ignoring")
		return nil, false
	}
	message.Location = Some(location)

	message.Events = NewList[Event](len(raw.Events))
	for i := range raw.Events {
		event, ok := _ConvertEvent(&raw.Events[i])
		if !ok {
			continue
		}
		message.Events.Add(event)
	}
	if message.Events.Length() == 0 {
		slog.Warn("message " + raw.Id + " has no valid events, ignoring")
		return nil, false
	}
	return message, true
}

func _ConvertLocation(raw *xmlLocation) (Location, bool) {
	if raw == nil {
		return Location{}, false
	}
	points := NewDict[PointRole, Point](4)
	for role, node := range map[PointRole]*xmlPoint{
		ROLE_FROM: raw.From, ROLE_TO: raw.To, ROLE_AT: raw.At,
		ROLE_VIA: raw.Via, ROLE_NOT_VIA: raw.NotVia,
	} {
		if node == nil {
			continue
		}
		point, ok := _ConvertPoint(node)
		if !ok {
			continue
		}
		points[role] = point
	}
	location, err := NewLocation(DirectionalityFromString(raw.Directionality), points)
	if err != nil {
		return Location{}, false
	}
	location.Fuzziness = FuzzinessFromString(raw.Fuzziness)
	location.Ramps = RampsFromString(raw.Ramps)
	location.RoadClass = RoadClassFromString(raw.RoadClass)
	location.Country = _OptionalString(raw.Country)
	location.Destination = _OptionalString(raw.Destination)
	location.Direction = _OptionalString(raw.Direction)
	location.Origin = _OptionalString(raw.Origin)
	location.RoadRef = _OptionalString(raw.RoadRef)
	location.RoadName = _OptionalString(raw.RoadName)
	location.Territory = _OptionalString(raw.Territory)
	location.Town = _OptionalString(raw.Town)
	return location, true
}

func _ConvertPoint(raw *xmlPoint) (Point, bool) {
	fields := strings.Fields(raw.Coordinates)
	if len(fields) != 2 {
		slog.Warn("point has no usable coordinates, ignoring")
		return Point{}, false
	}
	lat, err1 := strconv.ParseFloat(fields[0], 32)
	lon, err2 := strconv.ParseFloat(fields[1], 32)
	if err1 != nil || err2 != nil {
		slog.Warn("point has no usable coordinates, ignoring")
		return Point{}, false
	}
	point := Point{Coordinates: geo.Coord{float32(lon), float32(lat)}}
	if raw.Distance != "" {
		if dist, err := strconv.ParseFloat(raw.Distance, 32); err == nil {
			point.Distance = Some(float32(dist))
		}
	}
	point.JunctionName = _OptionalString(raw.JunctionName)
	point.JunctionRef = _OptionalString(raw.JunctionRef)
	return point, true
}

func _ConvertEvent(raw *xmlEvent) (Event, bool) {
	event := Event{
		Class: EventClassFromString(raw.Class),
		Type:  EventTypeFromString(raw.Type),
	}
	if event.Class == CLASS_INVALID {
		slog.Warn("no valid event class specified, ignoring")
		return Event{}, false
	}
	if !strings.HasPrefix(raw.Type, raw.Class+"_") {
		slog.Warn("event type " + raw.Type + " does not match event class " + raw.Class + ", ignoring")
		return Event{}, false
	}
	if event.Type == EVENT_INVALID {
		slog.Warn("no valid event type specified, ignoring")
		return Event{}, false
	}
	if raw.Length != "" {
		if value, err := strconv.ParseUint(raw.Length, 10, 16); err == nil {
			event.Length = Some(uint16(value))
		}
	}
	if raw.Probability != "" {
		if value, err := strconv.ParseUint(raw.Probability, 10, 8); err == nil {
			event.Probability = Some(uint8(value))
		}
	}
	if raw.QDuration != "" {
		var hours, mins int
		if _, err := fmt.Sscanf(raw.QDuration, "%d:%d", &hours, &mins); err == nil {
			event.DurationMins = Some(uint16(hours*60 + mins))
		}
	}
	if raw.Speed != "" {
		if value, err := strconv.ParseUint(raw.Speed, 10, 8); err == nil {
			event.Speed = Some(uint8(value))
		}
	}
	return event, true
}

func _ParseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

func _OptionalString(value string) Optional[string] {
	if value == "" {
		return None[string]()
	}
	return Some(value)
}

//*******************************************
// serialization
//*******************************************

func FeedToXml(feed *Feed) []byte {
	raw := xmlFeed{Messages: make([]xmlMessage, 0, feed.Messages.Length())}
	for _, message := range feed.Messages {
		raw.Messages = append(raw.Messages, _MessageToXml(message))
	}
	data, _ := xml.MarshalIndent(raw, "", "  ")
	return data
}

func _MessageToXml(message *Message) xmlMessage {
	raw := xmlMessage{
		Id:             message.Id,
		ReceiveTime:    message.ReceiveTime.Format(time.RFC3339),
		UpdateTime:     message.UpdateTime.Format(time.RFC3339),
		ExpirationTime: message.ExpirationTime.Format(time.RFC3339),
	}
	if message.StartTime.HasValue() {
		raw.StartTime = message.StartTime.Value.Format(time.RFC3339)
	}
	if message.EndTime.HasValue() {
		raw.EndTime = message.EndTime.Value.Format(time.RFC3339)
	}
	if message.Cancellation {
		raw.Cancellation = "true"
	}
	if message.Forecast {
		raw.Forecast = "true"
	}
	for _, id := range message.Replaces {
		raw.Replaces = append(raw.Replaces, xmlReplaces{Id: id})
	}
	if message.Location.HasValue() {
		raw.Location = _LocationToXml(&message.Location.Value)
	}
	for _, event := range message.Events {
		raw.Events = append(raw.Events, _EventToXml(&event))
	}
	return raw
}

func _LocationToXml(location *Location) *xmlLocation {
	raw := &xmlLocation{
		Country:        location.Country.Value,
		Destination:    location.Destination.Value,
		Direction:      location.Direction.Value,
		Directionality: location.Directionality.String(),
		Origin:         location.Origin.Value,
		Ramps:          location.Ramps.String(),
		RoadRef:        location.RoadRef.Value,
		RoadName:       location.RoadName.Value,
		Territory:      location.Territory.Value,
		Town:           location.Town.Value,
	}
	if location.Fuzziness.HasValue() {
		raw.Fuzziness = location.Fuzziness.Value.String()
	}
	if location.RoadClass.HasValue() {
		raw.RoadClass = location.RoadClass.Value.String()
	}
	raw.From = _PointToXml(location.From)
	raw.To = _PointToXml(location.To)
	raw.At = _PointToXml(location.At)
	raw.Via = _PointToXml(location.Via)
	raw.NotVia = _PointToXml(location.NotVia)
	return raw
}

func _PointToXml(point Optional[Point]) *xmlPoint {
	if !point.HasValue() {
		return nil
	}
	raw := &xmlPoint{
		Coordinates:  fmt.Sprintf("%+.5f %+.5f", point.Value.Coordinates[1], point.Value.Coordinates[0]),
		JunctionName: point.Value.JunctionName.Value,
		JunctionRef:  point.Value.JunctionRef.Value,
	}
	if point.Value.Distance.HasValue() {
		raw.Distance = strconv.FormatFloat(float64(point.Value.Distance.Value), 'f', -1, 32)
	}
	return raw
}

func _EventToXml(event *Event) xmlEvent {
	raw := xmlEvent{
		Class: event.Class.String(),
		Type:  event.Type.String(),
	}
	if event.Length.HasValue() {
		raw.Length = strconv.FormatUint(uint64(event.Length.Value), 10)
	}
	if event.Probability.HasValue() {
		raw.Probability = strconv.FormatUint(uint64(event.Probability.Value), 10)
	}
	if event.DurationMins.HasValue() {
		raw.QDuration = fmt.Sprintf("%02d:%02d", event.DurationMins.Value/60, event.DurationMins.Value%60)
	}
	if event.Speed.HasValue() {
		raw.Speed = strconv.FormatUint(uint64(event.Speed.Value), 10)
	}
	return raw
}

//*******************************************
// requests
//*******************************************

// Renders bounding boxes as declarative filter records, one per box,
// with bounds ordered south west north east.
func FiltersToXml(boxes []geo.BBox) string {
	builder := strings.Builder{}
	for _, box := range boxes {
		builder.WriteString(fmt.Sprintf("<filter bbox=\"%g %g %g %g\"/>\n",
			box.MinLat, box.MinLon, box.MaxLat, box.MaxLon))
	}
	return builder.String()
}

func SubscribeRequest(boxes []geo.BBox) string {
	return "<request operation=\"SUBSCRIBE\">\n<filter_list>\n" +
		FiltersToXml(boxes) +
		"</filter_list>\n</request>"
}

func ChangeSubscriptionRequest(subscription_id string, boxes []geo.BBox) string {
	return "<request operation=\"SUBSCRIPTION_CHANGE\" subscription_id=\"" + subscription_id + "\">\n" +
		"<filter_list>\n" +
		FiltersToXml(boxes) +
		"</filter_list>\n</request>"
}

func PollRequest(subscription_id string) string {
	return "<request operation=\"POLL\" subscription_id=\"" + subscription_id + "\"/>"
}

func UnsubscribeRequest(subscription_id string) string {
	return "<request operation=\"UNSUBSCRIBE\" subscription_id=\"" + subscription_id + "\"/>"
}
