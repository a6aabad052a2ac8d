package source

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/traff"
	. "github.com/ttpr0/go-traffic/util"
)

const test_feed = `<feed>
  <message id="m1" update_time="2024-05-01T10:00:00Z" expiration_time="2099-01-01T00:00:00Z">
    <location directionality="ONE_DIRECTION" road_class="MOTORWAY">
      <from>+52.00000 +13.00000</from>
      <to>+52.10000 +13.10000</to>
    </location>
    <events>
      <event class="CONGESTION" type="CONGESTION_QUEUE"/>
    </events>
  </message>
</feed>`

type _TestManager struct {
	feeds   List[traff.Feed]
	sources List[ISource]
}

func (self *_TestManager) GetActiveTiles() List[geo.TileId] {
	tiles := NewList[geo.TileId](1)
	tiles.Add(geo.TileOf(geo.Coord{13.0, 52.0}))
	return tiles
}
func (self *_TestManager) ReceiveFeed(feed traff.Feed) {
	self.feeds.Add(feed)
}
func (self *_TestManager) RegisterSource(source ISource) {
	self.sources.Add(source)
}

func TestMockSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.xml")
	if err := os.WriteFile(path, []byte(test_feed), 0644); err != nil {
		t.Fatal(err)
	}

	manager := &_TestManager{}
	mock := NewMockSource(manager, path)

	if manager.sources.Length() != 1 {
		t.Fatalf("manager.sources.Length() = %v; want 1", manager.sources.Length())
	}
	if mock.IsSubscribed() {
		t.Error("IsSubscribed() = true before subscribing")
	}
	if mock.IsPollNeeded() {
		t.Error("IsPollNeeded() = true before subscribing")
	}

	mock.SubscribeOrChangeSubscription(manager.GetActiveTiles())
	if !mock.IsSubscribed() {
		t.Fatal("IsSubscribed() = false after subscribing")
	}
	if !mock.IsPollNeeded() {
		t.Fatal("IsPollNeeded() = false after subscribing")
	}

	mock.Poll()
	if manager.feeds.Length() != 1 {
		t.Fatalf("manager.feeds.Length() = %v; want 1", manager.feeds.Length())
	}
	if manager.feeds[0].Messages.Length() != 1 {
		t.Errorf("feed message count = %v; want 1", manager.feeds[0].Messages.Length())
	}
	if mock.Availability() != IS_AVAILABLE {
		t.Errorf("Availability() = %v; want %v", mock.Availability(), IS_AVAILABLE)
	}
	// the next poll is due only after the update interval
	if mock.IsPollNeeded() {
		t.Error("IsPollNeeded() = true right after a poll")
	}

	mock.Unsubscribe()
	if mock.IsSubscribed() {
		t.Error("IsSubscribed() = true after unsubscribing")
	}
}

func TestMockSourceMissingFile(t *testing.T) {
	manager := &_TestManager{}
	mock := NewMockSource(manager, filepath.Join(t.TempDir(), "missing.xml"))

	mock.SubscribeOrChangeSubscription(manager.GetActiveTiles())
	mock.Poll()

	if manager.feeds.Length() != 0 {
		t.Errorf("manager.feeds.Length() = %v; want 0", manager.feeds.Length())
	}
	if mock.Availability() != AVAILABILITY_ERROR {
		t.Errorf("Availability() = %v; want %v", mock.Availability(), AVAILABILITY_ERROR)
	}
}

func TestHttpSourceSubscribe(t *testing.T) {
	lock := sync.Mutex{}
	requests := NewList[string](4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lock.Lock()
		requests.Add(string(body))
		lock.Unlock()
		w.Write([]byte(`<response status="OK" subscription_id="sub-1"><feed>` +
			`<message id="m1" update_time="2024-05-01T10:00:00Z" expiration_time="2099-01-01T00:00:00Z">` +
			`<location directionality="ONE_DIRECTION"><from>+52.00000 +13.00000</from><to>+52.10000 +13.10000</to></location>` +
			`<events><event class="CONGESTION" type="CONGESTION_QUEUE"/></events>` +
			`</message></feed></response>`))
	}))
	defer server.Close()

	manager := &_TestManager{}
	src := NewHttpSource(manager, server.URL)

	src.SubscribeOrChangeSubscription(manager.GetActiveTiles())
	src.pending.Wait()

	if !src.IsSubscribed() {
		t.Fatal("IsSubscribed() = false after subscribe response")
	}
	if src.Availability() != IS_AVAILABLE {
		t.Errorf("Availability() = %v; want %v", src.Availability(), IS_AVAILABLE)
	}
	if manager.feeds.Length() != 1 {
		t.Fatalf("manager.feeds.Length() = %v; want 1", manager.feeds.Length())
	}
	lock.Lock()
	defer lock.Unlock()
	if requests.Length() != 1 {
		t.Fatalf("requests.Length() = %v; want 1", requests.Length())
	}
	if len(requests[0]) < 8 || requests[0][:8] != "<request" {
		t.Errorf("request body = %q; want a request element", requests[0])
	}
	// a fresh feed means no poll is due yet
	if src.IsPollNeeded() {
		t.Error("IsPollNeeded() = true right after a feed")
	}
}

func TestHttpSourceSubscriptionUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<response status="SUBSCRIPTION_UNKNOWN"/>`))
	}))
	defer server.Close()

	manager := &_TestManager{}
	src := NewHttpSource(manager, server.URL)
	src.subscription_id = "stale"

	src.Poll()
	src.pending.Wait()

	// an unknown subscription is dropped, forcing a resubscribe
	if src.IsSubscribed() {
		t.Error("IsSubscribed() = true after SUBSCRIPTION_UNKNOWN")
	}
}

func TestHttpSourceRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<response status="SUBSCRIPTION_REJECTED"/>`))
	}))
	defer server.Close()

	manager := &_TestManager{}
	src := NewHttpSource(manager, server.URL)

	src.SubscribeOrChangeSubscription(manager.GetActiveTiles())
	src.pending.Wait()

	if src.Availability() != SUBSCRIPTION_REJECTED {
		t.Errorf("Availability() = %v; want %v", src.Availability(), SUBSCRIPTION_REJECTED)
	}
	if src.IsSubscribed() {
		t.Error("IsSubscribed() = true after rejection")
	}
}

func TestHttpSourceClose(t *testing.T) {
	lock := sync.Mutex{}
	requests := NewList[string](4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lock.Lock()
		requests.Add(string(body))
		lock.Unlock()
		w.Write([]byte(`<response status="OK"/>`))
	}))
	defer server.Close()

	manager := &_TestManager{}
	src := NewHttpSource(manager, server.URL)
	src.subscription_id = "sub-1"

	src.Close()

	if src.IsSubscribed() {
		t.Error("IsSubscribed() = true after Close")
	}
	// Close awaits the unsubscribe request
	lock.Lock()
	defer lock.Unlock()
	if requests.Length() != 1 {
		t.Fatalf("requests.Length() = %v; want 1", requests.Length())
	}
	if !src.closed.Load() {
		t.Error("closed = false after Close")
	}
}
