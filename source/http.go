package source

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/traff"
	. "github.com/ttpr0/go-traffic/util"
)

//*******************************************
// http source
//*******************************************

const _REQUEST_TIMEOUT = 30 * time.Second

// HttpSource talks to a traffic backend by POSTing XML request
// bodies. Requests run on supervised goroutines whose completion
// reaches the response handler exactly once; Close awaits all of
// them.
type HttpSource struct {
	SourceBase
	manager     ISourceManager
	url         string
	client      *http.Client
	pending     sync.WaitGroup
	outstanding atomic.Int32
	closed      atomic.Bool
}

func NewHttpSource(manager ISourceManager, url string) *HttpSource {
	source := &HttpSource{
		manager: manager,
		url:     url,
		client:  &http.Client{Timeout: _REQUEST_TIMEOUT},
	}
	manager.RegisterSource(source)
	return source
}

func (self *HttpSource) SubscribeOrChangeSubscription(tiles List[geo.TileId]) {
	filters := TileFilters(tiles)

	self.lock.Lock()
	if self.expired {
		self.lock.Unlock()
		return
	}
	subscription_id := self.subscription_id
	self.last_request_time = time.Now()
	self.lock.Unlock()

	if subscription_id == "" {
		self._Post(traff.SubscribeRequest(filters), self._OnSubscribeResponse)
	} else {
		self._Post(traff.ChangeSubscriptionRequest(subscription_id, filters), self._OnChangeSubscriptionResponse)
	}
}

func (self *HttpSource) Unsubscribe() {
	self.lock.Lock()
	if self.subscription_id == "" {
		self.lock.Unlock()
		return
	}
	data := traff.UnsubscribeRequest(self.subscription_id)
	// cleared immediately, the remote acknowledgement is best effort
	self.subscription_id = ""
	self.lock.Unlock()

	self._Post(data, self._OnUnsubscribeResponse)
}

func (self *HttpSource) IsPollNeeded() bool {
	if self.outstanding.Load() > 0 {
		return false
	}
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.subscription_id != "" && !self.expired && !self.next_request_time.After(time.Now())
}

func (self *HttpSource) Poll() {
	self.lock.Lock()
	if self.subscription_id == "" {
		self.lock.Unlock()
		return
	}
	data := traff.PollRequest(self.subscription_id)
	self.last_request_time = time.Now()
	self.lock.Unlock()

	self._Post(data, self._OnPollResponse)
}

func (self *HttpSource) Close() {
	self.Unsubscribe()
	self.closed.Store(true)
	self.pending.Wait()
}

//*******************************************
// response handling
//*******************************************

func (self *HttpSource) _OnSubscribeResponse(response traff.Response) {
	switch response.Status {
	case traff.STATUS_OK, traff.STATUS_PARTIALLY_COVERED:
		if !response.SubscriptionId.HasValue() || response.SubscriptionId.Value == "" {
			slog.Warn("server accepted subscription without an id, ignoring")
			return
		}
		self.lock.Lock()
		self.subscription_id = response.SubscriptionId.Value
		self.lock.Unlock()
		if response.Feed.HasValue() && response.Feed.Value.Messages.Length() > 0 {
			self._OnFeedReceived(response.Feed.Value)
		} else {
			self.Poll()
		}
	case traff.STATUS_SUBSCRIPTION_REJECTED:
		self._SetAvailability(SUBSCRIPTION_REJECTED)
	case traff.STATUS_NOT_COVERED:
		self._SetAvailability(NOT_COVERED)
	case traff.STATUS_INVALID_OPERATION:
		// the backend no longer understands this client
		slog.Warn("subscribe rejected as invalid, disabling source")
		self.lock.Lock()
		self.expired = true
		self.lock.Unlock()
	default:
		slog.Warn("subscribe request failed: " + response.Status.String())
		self._SetAvailability(AVAILABILITY_ERROR)
	}
}

func (self *HttpSource) _OnChangeSubscriptionResponse(response traff.Response) {
	switch response.Status {
	case traff.STATUS_OK, traff.STATUS_PARTIALLY_COVERED:
		if response.Feed.HasValue() && response.Feed.Value.Messages.Length() > 0 {
			self._OnFeedReceived(response.Feed.Value)
		} else {
			self.Poll()
		}
	case traff.STATUS_SUBSCRIPTION_UNKNOWN:
		// forces a fresh subscribe on the next cycle
		slog.Warn("change subscription returned " + response.Status.String() + ", dropping subscription")
		self.lock.Lock()
		self.subscription_id = ""
		self.lock.Unlock()
	case traff.STATUS_SUBSCRIPTION_REJECTED:
		self._SetAvailability(SUBSCRIPTION_REJECTED)
	case traff.STATUS_NOT_COVERED:
		self._SetAvailability(NOT_COVERED)
	default:
		slog.Warn("change subscription request failed: " + response.Status.String())
		self._SetAvailability(AVAILABILITY_ERROR)
	}
}

func (self *HttpSource) _OnPollResponse(response traff.Response) {
	switch response.Status {
	case traff.STATUS_OK:
		if response.Feed.HasValue() && response.Feed.Value.Messages.Length() > 0 {
			self._OnFeedReceived(response.Feed.Value)
		}
	case traff.STATUS_SUBSCRIPTION_UNKNOWN:
		slog.Warn("poll returned " + response.Status.String() + ", dropping subscription")
		self.lock.Lock()
		self.subscription_id = ""
		self.lock.Unlock()
	default:
		slog.Warn("poll returned " + response.Status.String())
		self._SetAvailability(AVAILABILITY_ERROR)
	}
}

func (self *HttpSource) _OnUnsubscribeResponse(response traff.Response) {
	if response.Status != traff.STATUS_OK && response.Status != traff.STATUS_SUBSCRIPTION_UNKNOWN {
		slog.Warn("unsubscribe returned " + response.Status.String())
	}
}

func (self *HttpSource) _OnFeedReceived(feed traff.Feed) {
	now := time.Now()
	self.lock.Lock()
	self.last_response_time = now
	self.next_request_time = now.Add(UPDATE_INTERVAL)
	self.availability = IS_AVAILABLE
	self.lock.Unlock()

	self.manager.ReceiveFeed(feed)
}

//*******************************************
// transport
//*******************************************

// _Post runs the request on a supervised goroutine. The handler is
// invoked exactly once with the parsed response, transport failures
// surface as an internal error status.
func (self *HttpSource) _Post(data string, handle func(traff.Response)) {
	if self.closed.Load() {
		return
	}
	self.pending.Add(1)
	self.outstanding.Add(1)
	go func() {
		defer self.pending.Done()
		defer self.outstanding.Add(-1)
		handle(self._DoPost(data))
	}()
}

func (self *HttpSource) _DoPost(data string) traff.Response {
	resp, err := self.client.Post(self.url, "application/xml", strings.NewReader(data))
	if err != nil {
		slog.Warn("request to " + self.url + " failed: " + err.Error())
		return traff.Response{Status: traff.STATUS_INTERNAL_ERROR}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		slog.Warn("request to " + self.url + " returned status " + resp.Status)
		return traff.Response{Status: traff.STATUS_INTERNAL_ERROR}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return traff.Response{Status: traff.STATUS_INTERNAL_ERROR}
	}
	return traff.ParseResponse(body, time.Now())
}
