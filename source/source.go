package source

import (
	"sync"
	"time"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/traff"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// source contract
//*******************************************

// interval between polls of the same source
const UPDATE_INTERVAL = 5 * time.Minute

// Outcome of the last exchange with a traffic backend.
type Availability byte

const (
	AVAILABILITY_UNKNOWN Availability = iota
	IS_AVAILABLE
	SUBSCRIPTION_REJECTED
	NOT_COVERED
	AVAILABILITY_ERROR
	EXPIRED_APP
)

func (self Availability) String() string {
	switch self {
	case AVAILABILITY_UNKNOWN:
		return "unknown"
	case IS_AVAILABLE:
		return "available"
	case SUBSCRIPTION_REJECTED:
		return "subscription_rejected"
	case NOT_COVERED:
		return "not_covered"
	case AVAILABILITY_ERROR:
		return "error"
	}
	return "expired_app"
}

// ISourceManager is implemented by the ingestion manager and consumed
// by every source. ReceiveFeed is safe to call from any goroutine.
type ISourceManager interface {
	GetActiveTiles() List[geo.TileId]
	ReceiveFeed(feed traff.Feed)
	RegisterSource(source ISource)
}

// ISource is one protocol client for an external traffic backend.
// Subscription calls must not block the caller, network-bound
// transports dispatch to a background task and handle the response
// asynchronously.
type ISource interface {
	// issues a subscription scoped to the bounding boxes of the given
	// tiles, or updates the existing one
	SubscribeOrChangeSubscription(tiles List[geo.TileId])
	// best effort, the local subscription id is cleared immediately
	Unsubscribe()
	IsSubscribed() bool
	// true if the update interval has elapsed and no request is
	// outstanding; push transports always report false
	IsPollNeeded() bool
	Poll()
	Availability() Availability
	// awaits in-flight requests and drops the subscription
	Close()
}

//*******************************************
// shared bookkeeping
//*******************************************

// SourceBase carries the subscription state shared by all transports.
// Every member is guarded by the mutex, which concrete sources also
// take for their own state transitions.
type SourceBase struct {
	lock               sync.Mutex
	subscription_id    string
	availability       Availability
	last_request_time  time.Time
	last_response_time time.Time
	next_request_time  time.Time
	// terminal, the backend no longer serves this client
	expired bool
}

func (self *SourceBase) Availability() Availability {
	self.lock.Lock()
	defer self.lock.Unlock()
	if self.expired {
		return EXPIRED_APP
	}
	return self.availability
}

func (self *SourceBase) IsSubscribed() bool {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.subscription_id != ""
}

func (self *SourceBase) _SetAvailability(availability Availability) {
	self.lock.Lock()
	defer self.lock.Unlock()
	self.availability = availability
}

// Bounding boxes of the active tiles, the scope of a subscription.
func TileFilters(tiles List[geo.TileId]) []geo.BBox {
	boxes := make([]geo.BBox, 0, tiles.Length())
	for _, tile := range tiles {
		boxes = append(boxes, tile.BBox())
	}
	return boxes
}
