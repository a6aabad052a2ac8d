package traff

import (
	"strings"
	"testing"
	"time"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/traffic"
)

const test_feed = `<feed>
  <message id="m1" receive_time="2024-05-01T10:00:00Z" update_time="2024-05-01T10:00:00Z" expiration_time="2024-05-01T11:00:00Z">
    <location directionality="ONE_DIRECTION" road_class="MOTORWAY" road_ref="A 9" fuzziness="LOW_RES">
      <from junction_ref="71">+52.00000 +13.00000</from>
      <to junction_ref="73">+52.10000 +13.10000</to>
    </location>
    <events>
      <event class="CONGESTION" type="CONGESTION_QUEUE" length="2000" speed="30"/>
    </events>
  </message>
  <message id="m2" update_time="2024-05-01T10:00:00Z" expiration_time="2024-05-01T11:00:00Z" cancellation="true">
    <merge>
      <replaces id="m1"/>
    </merge>
  </message>
  <message id="m3" update_time="2024-05-01T10:00:00Z" expiration_time="2024-05-01T11:00:00Z">
    <events>
      <event class="CONGESTION" type="CONGESTION_QUEUE"/>
    </events>
  </message>
</feed>`

func TestParseFeed(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	feed, err := ParseFeed([]byte(test_feed), now)
	if err != nil {
		t.Fatalf("ParseFeed err = %v; want nil", err)
	}
	// m3 has no location and is not a cancellation, must be dropped
	if feed.Messages.Length() != 2 {
		t.Fatalf("feed.Messages.Length() = %v; want 2", feed.Messages.Length())
	}

	m1 := feed.Messages.Get(0)
	if m1.Id != "m1" {
		t.Errorf("m1.Id = %v; want m1", m1.Id)
	}
	if !m1.Location.HasValue() {
		t.Fatalf("m1.Location = None; want location")
	}
	location := m1.Location.Value
	if location.Directionality != ONE_DIRECTION {
		t.Errorf("location.Directionality = %v; want ONE_DIRECTION", location.Directionality)
	}
	if !location.RoadClass.HasValue() || location.RoadClass.Value != CLASS_MOTORWAY {
		t.Errorf("location.RoadClass = %v; want MOTORWAY", location.RoadClass.Value)
	}
	if !location.RoadRef.HasValue() || location.RoadRef.Value != "A 9" {
		t.Errorf("location.RoadRef = %v; want A 9", location.RoadRef.Value)
	}
	if !location.Fuzziness.HasValue() || location.Fuzziness.Value != FUZZINESS_LOW_RES {
		t.Errorf("location.Fuzziness = %v; want LOW_RES", location.Fuzziness.Value)
	}
	from := location.From.Value
	if from.Coordinates != (geo.Coord{13.0, 52.0}) {
		t.Errorf("from.Coordinates = %v; want [13 52]", from.Coordinates)
	}
	if !from.JunctionRef.HasValue() || from.JunctionRef.Value != "71" {
		t.Errorf("from.JunctionRef = %v; want 71", from.JunctionRef.Value)
	}
	if m1.Events.Length() != 1 {
		t.Fatalf("m1.Events.Length() = %v; want 1", m1.Events.Length())
	}
	event := m1.Events.Get(0)
	if event.Type != CONGESTION_QUEUE {
		t.Errorf("event.Type = %v; want CONGESTION_QUEUE", event.Type)
	}
	if !event.Speed.HasValue() || event.Speed.Value != 30 {
		t.Errorf("event.Speed = %v; want 30", event.Speed.Value)
	}

	m2 := feed.Messages.Get(1)
	if !m2.Cancellation {
		t.Errorf("m2.Cancellation = false; want true")
	}
	if m2.Replaces.Length() != 1 || m2.Replaces.Get(0) != "m1" {
		t.Errorf("m2.Replaces = %v; want [m1]", m2.Replaces)
	}
	// missing receive_time falls back to now
	if !m2.ReceiveTime.Equal(now) {
		t.Errorf("m2.ReceiveTime = %v; want %v", m2.ReceiveTime, now)
	}
}

func TestFeedRoundtrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	feed, err := ParseFeed([]byte(test_feed), now)
	if err != nil {
		t.Fatalf("ParseFeed err = %v; want nil", err)
	}
	data := FeedToXml(&feed)
	feed2, err := ParseFeed(data, now)
	if err != nil {
		t.Fatalf("ParseFeed of serialized feed err = %v; want nil", err)
	}
	if feed2.Messages.Length() != feed.Messages.Length() {
		t.Fatalf("reparsed feed has %v messages; want %v", feed2.Messages.Length(), feed.Messages.Length())
	}
	a := feed.Messages.Get(0)
	b := feed2.Messages.Get(0)
	if a.Id != b.Id || !a.UpdateTime.Equal(b.UpdateTime) {
		t.Errorf("reparsed message differs: %v vs %v", a.Id, b.Id)
	}
	la := a.Location.Value
	lb := b.Location.Value
	if !la.Equal(&lb) {
		t.Errorf("reparsed location differs")
	}
}

func TestParseResponse(t *testing.T) {
	now := time.Now()
	response := ParseResponse([]byte(`<response status="OK" subscription_id="sub-1"><feed></feed></response>`), now)
	if response.Status != STATUS_OK {
		t.Errorf("response.Status = %v; want OK", response.Status)
	}
	if !response.SubscriptionId.HasValue() || response.SubscriptionId.Value != "sub-1" {
		t.Errorf("response.SubscriptionId = %v; want sub-1", response.SubscriptionId.Value)
	}
	if !response.Feed.HasValue() {
		t.Errorf("response.Feed = None; want empty feed")
	}

	response = ParseResponse([]byte(`<response status="SUBSCRIPTION_UNKNOWN"/>`), now)
	if response.Status != STATUS_SUBSCRIPTION_UNKNOWN {
		t.Errorf("response.Status = %v; want SUBSCRIPTION_UNKNOWN", response.Status)
	}

	response = ParseResponse([]byte(`not xml`), now)
	if response.Status != STATUS_INVALID {
		t.Errorf("response.Status = %v; want INVALID_RESPONSE", response.Status)
	}
}

func TestFiltersToXml(t *testing.T) {
	boxes := []geo.BBox{geo.NewBBox(13.0, 52.0, 14.0, 53.0)}
	filters := FiltersToXml(boxes)
	if filters != "<filter bbox=\"52 13 53 14\"/>\n" {
		t.Errorf("FiltersToXml = %q; want bounds ordered south west north east", filters)
	}

	request := SubscribeRequest(boxes)
	if !strings.Contains(request, "operation=\"SUBSCRIBE\"") || !strings.Contains(request, filters) {
		t.Errorf("SubscribeRequest = %q; missing operation or filters", request)
	}
	request = PollRequest("sub-1")
	if request != "<request operation=\"POLL\" subscription_id=\"sub-1\"/>" {
		t.Errorf("PollRequest = %q", request)
	}
}

func TestSpeedGroupNames(t *testing.T) {
	if traffic.SpeedGroupFromString("G2") != traffic.G2 {
		t.Errorf("SpeedGroupFromString(G2) != G2")
	}
	if traffic.TEMP_BLOCK.String() != "temp_block" {
		t.Errorf("TEMP_BLOCK.String() = %v", traffic.TEMP_BLOCK.String())
	}
}
