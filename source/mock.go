package source

import (
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/traff"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// mock source
//*******************************************

// MockSource replays a feed file on the update interval. Used by
// tests and for offline operation.
type MockSource struct {
	SourceBase
	manager ISourceManager
	path    string
}

func NewMockSource(manager ISourceManager, path string) *MockSource {
	source := &MockSource{
		manager: manager,
		path:    path,
	}
	manager.RegisterSource(source)
	return source
}

func (self *MockSource) SubscribeOrChangeSubscription(tiles List[geo.TileId]) {
	self.lock.Lock()
	defer self.lock.Unlock()
	filters := traff.FiltersToXml(TileFilters(tiles))
	if self.subscription_id == "" {
		self.subscription_id = uuid.NewString()
		slog.Info("would subscribe to:\n" + filters)
	} else {
		slog.Info("would change subscription " + self.subscription_id + " to:\n" + filters)
	}
	self.next_request_time = time.Now()
}

func (self *MockSource) Unsubscribe() {
	self.lock.Lock()
	defer self.lock.Unlock()
	if self.subscription_id == "" {
		return
	}
	slog.Info("would unsubscribe from " + self.subscription_id)
	self.subscription_id = ""
}

func (self *MockSource) IsPollNeeded() bool {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.subscription_id != "" && !self.next_request_time.After(time.Now())
}

func (self *MockSource) Poll() {
	now := time.Now()
	data, err := os.ReadFile(self.path)
	if err != nil {
		slog.Warn("failed to read feed file " + self.path + ": " + err.Error())
		self.lock.Lock()
		self.availability = AVAILABILITY_ERROR
		self.next_request_time = now.Add(UPDATE_INTERVAL)
		self.lock.Unlock()
		return
	}

	self.lock.Lock()
	self.last_request_time = now
	self.lock.Unlock()

	feed, err := traff.ParseFeed(data, now)
	if err != nil {
		slog.Warn("failed to parse feed file " + self.path + ": " + err.Error())
		self.lock.Lock()
		self.availability = AVAILABILITY_ERROR
		self.next_request_time = now.Add(UPDATE_INTERVAL)
		self.lock.Unlock()
		return
	}

	self.lock.Lock()
	self.last_response_time = now
	self.next_request_time = now.Add(UPDATE_INTERVAL)
	self.availability = IS_AVAILABLE
	self.lock.Unlock()

	// delivered outside the lock, the manager takes its own
	self.manager.ReceiveFeed(feed)
}

func (self *MockSource) Close() {
	self.Unsubscribe()
}
