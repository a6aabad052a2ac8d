package main

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-traffic/decoder"
	"github.com/ttpr0/go-traffic/geo"
	"github.com/ttpr0/go-traffic/graph"
	"github.com/ttpr0/go-traffic/source"
	"github.com/ttpr0/go-traffic/traff"
	"github.com/ttpr0/go-traffic/traffic"
	. "github.com/ttpr0/go-traffic/util"
)

//**********************************************************
// ingestion state
//**********************************************************

type TrafficState byte

const (
	TRAFFIC_DISABLED      TrafficState = 0
	TRAFFIC_ENABLED       TrafficState = 1
	TRAFFIC_WAITING_DATA  TrafficState = 2
	TRAFFIC_OUTDATED      TrafficState = 3
	TRAFFIC_NO_DATA       TrafficState = 4
	TRAFFIC_NETWORK_ERROR TrafficState = 5
	TRAFFIC_EXPIRED_DATA  TrafficState = 6
	TRAFFIC_EXPIRED_APP   TrafficState = 7
)

func (self TrafficState) String() string {
	switch self {
	case TRAFFIC_DISABLED:
		return "disabled"
	case TRAFFIC_ENABLED:
		return "enabled"
	case TRAFFIC_WAITING_DATA:
		return "waiting-data"
	case TRAFFIC_OUTDATED:
		return "outdated"
	case TRAFFIC_NO_DATA:
		return "no-data"
	case TRAFFIC_NETWORK_ERROR:
		return "network-error"
	case TRAFFIC_EXPIRED_DATA:
		return "expired-data"
	case TRAFFIC_EXPIRED_APP:
		return "expired-app"
	default:
		panic("unknown traffic state")
	}
}

func (self TrafficState) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}

//**********************************************************
// consumer interfaces
//**********************************************************

// IRenderer receives per-tile colorings for display. Calls are
// dispatched fire-and-forget, never made synchronously from a public
// method.
type IRenderer interface {
	UpdateTraffic(tile geo.TileId, coloring traffic.Coloring)
	ClearTrafficCache(tile geo.TileId)
}

// ITrafficObserver receives per-tile colorings for routing.
type ITrafficObserver interface {
	OnTrafficAdded(tile geo.TileId, coloring traffic.Coloring)
	OnTrafficRemoved(tile geo.TileId)
	OnTrafficCleared()
}

//**********************************************************
// options
//**********************************************************

type ManagerOptions struct {
	// base cycle of the worker, also the re-request interval per tile
	UpdateInterval time.Duration
	// minimum delay between renderer notifications while the feed
	// queue is non-empty
	RendererInterval time.Duration
	// same for the routing observer
	ObserverInterval time.Duration
	// age of the last response after which the state degrades
	OutdatedTimeout time.Duration
	// age of the last response after which the state becomes a
	// network error
	NetworkTimeout time.Duration
	// failed attempts per tile before giving up
	MaxRetries      int
	LeftHandTraffic bool
	// suppresses subscribing and polling, pushed feeds are still
	// processed
	TestMode bool
}

func DefaultManagerOptions() ManagerOptions {
	return ManagerOptions{
		UpdateInterval:   1 * time.Minute,
		RendererInterval: 10 * time.Second,
		ObserverInterval: 1 * time.Minute,
		OutdatedTimeout:  6 * time.Minute,
		NetworkTimeout:   20 * time.Minute,
		MaxRetries:       5,
	}
}

//**********************************************************
// per-tile bookkeeping
//**********************************************************

type CacheEntry struct {
	is_loaded          bool
	is_waiting         bool
	last_active_time   time.Time
	last_request_time  time.Time
	last_response_time time.Time
	retries            int
	last_availability  source.Availability
}

func NewCacheEntry(now time.Time) *CacheEntry {
	return &CacheEntry{
		is_waiting:        true,
		last_active_time:  now,
		last_request_time: now,
	}
}

//**********************************************************
// traffic manager
//**********************************************************

// TrafficManager runs the ingestion pipeline on a single worker
// goroutine: refresh tile interest and subscriptions, poll sources,
// consolidate queued feeds, decode one message per cycle and re-merge
// the global coloring. All mutable state is guarded by one lock,
// which is released around the decode call.
type TrafficManager struct {
	graph   graph.IGraph
	options ManagerOptions

	lock  sync.Mutex
	wake  chan struct{}
	done  chan struct{}
	tasks sync.WaitGroup

	is_running bool
	is_started bool
	is_paused  bool
	state      TrafficState

	sources List[source.ISource]

	feed_queue    List[traff.Feed]
	message_cache Dict[string, *traff.Message]
	coloring      traffic.MultiTileColoring
	tile_cache    Dict[geo.TileId, *CacheEntry]

	// interest tracking, recomputed only when the rectangle changes
	viewport_box        Optional[geo.BBox]
	position_point      Optional[geo.Coord]
	last_viewport_tiles []geo.TileId
	last_position_tiles []geo.TileId
	viewport_tiles      Dict[geo.TileId, bool]
	position_tiles      Dict[geo.TileId, bool]
	tiles_changed       bool

	// built on the first SetEnabled(true) once graph tiles are known
	decoder *decoder.Decoder

	last_renderer_update time.Time
	last_observer_update time.Time

	renderer         IRenderer
	observer         ITrafficObserver
	on_state_changed func(TrafficState)
}

func NewTrafficManager(g graph.IGraph, renderer IRenderer, observer ITrafficObserver, options ManagerOptions) *TrafficManager {
	return &TrafficManager{
		graph:          g,
		options:        options,
		wake:           make(chan struct{}, 1),
		done:           make(chan struct{}),
		state:          TRAFFIC_DISABLED,
		sources:        NewList[source.ISource](2),
		feed_queue:     NewList[traff.Feed](4),
		message_cache:  NewDict[string, *traff.Message](100),
		coloring:       traffic.NewMultiTileColoring(),
		tile_cache:     NewDict[geo.TileId, *CacheEntry](10),
		viewport_tiles: NewDict[geo.TileId, bool](4),
		position_tiles: NewDict[geo.TileId, bool](4),
		renderer:       renderer,
		observer:       observer,
	}
}

// Starts the worker goroutine. Calling Start twice is a no-op.
func (self *TrafficManager) Start() {
	self.lock.Lock()
	if self.is_running {
		self.lock.Unlock()
		return
	}
	self.is_running = true
	self.lock.Unlock()
	go self._ThreadRoutine()
}

// Stops the worker, unsubscribes all sources and awaits in-flight
// requests and notifications.
func (self *TrafficManager) Teardown() {
	self.lock.Lock()
	running := self.is_running
	self.is_running = false
	sources := slices.Clone(self.sources)
	self.lock.Unlock()
	if running {
		self._Wake()
		<-self.done
	}
	for _, src := range sources {
		src.Close()
	}
	self.tasks.Wait()
}

//**********************************************************
// public surface
//**********************************************************

func (self *TrafficManager) SetEnabled(enabled bool) {
	self.lock.Lock()
	if enabled == (self.state != TRAFFIC_DISABLED) {
		self.lock.Unlock()
		slog.Warn("traffic manager already in requested state")
		return
	}
	self._ClearLocked()
	if enabled {
		self.state = TRAFFIC_ENABLED
		self._EnsureDecoderLocked()
	} else {
		self.state = TRAFFIC_DISABLED
	}
	state := self.state
	listener := self.on_state_changed
	self.lock.Unlock()

	if listener != nil {
		self._Dispatch(func() { listener(state) })
	}
	if enabled {
		self.Invalidate()
	} else if self.observer != nil {
		observer := self.observer
		self._Dispatch(func() { observer.OnTrafficCleared() })
	}
}

func (self *TrafficManager) IsEnabled() bool {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.state != TRAFFIC_DISABLED
}

func (self *TrafficManager) State() TrafficState {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.state
}

func (self *TrafficManager) SetStateListener(listener func(TrafficState)) {
	self.lock.Lock()
	defer self.lock.Unlock()
	self.on_state_changed = listener
}

// Queues a feed handed in from outside the source layer, e.g. the
// push endpoint. Safe to call from any goroutine.
func (self *TrafficManager) Push(feed traff.Feed) {
	self.ReceiveFeed(feed)
}

// Snapshot of the merged coloring.
func (self *TrafficManager) GetColoring() traffic.MultiTileColoring {
	self.lock.Lock()
	defer self.lock.Unlock()
	coloring := NewDict[geo.TileId, traffic.Coloring](self.coloring.Length())
	for tile, groups := range self.coloring {
		copied := NewDict[traffic.RoadSegmentId, traffic.SpeedGroup](groups.Length())
		for segment, group := range groups {
			copied[segment] = group
		}
		coloring[tile] = copied
	}
	return coloring
}

// Drops cached messages whose effective expiration has passed. Also
// runs once per worker cycle.
func (self *TrafficManager) PurgeExpiredMessages() {
	self.lock.Lock()
	defer self.lock.Unlock()
	now := time.Now()
	expired := NewList[string](0)
	for id, message := range self.message_cache {
		if message.IsExpired(now) {
			expired.Add(id)
		}
	}
	for _, id := range expired {
		self.message_cache.Delete(id)
	}
	if expired.Length() > 0 {
		slog.Info("purged " + strconv.Itoa(expired.Length()) + " expired traffic messages")
	}
}

// Drops all queued feeds, cached messages and colorings.
func (self *TrafficManager) Clear() {
	self.lock.Lock()
	defer self.lock.Unlock()
	self._ClearLocked()
}

// Drops the cached state of one tile and notifies the consumers.
func (self *TrafficManager) ClearCache(tile geo.TileId) {
	self.lock.Lock()
	entry, ok := self.tile_cache[tile]
	if !ok {
		self.lock.Unlock()
		return
	}
	loaded := entry.is_loaded
	self.tile_cache.Delete(tile)
	self.coloring.Delete(tile)
	self.viewport_tiles.Delete(tile)
	self.position_tiles.Delete(tile)
	self.last_viewport_tiles = nil
	self.last_position_tiles = nil
	self.lock.Unlock()

	if !loaded {
		return
	}
	if self.renderer != nil {
		renderer := self.renderer
		self._Dispatch(func() { renderer.ClearTrafficCache(tile) })
	}
	if self.observer != nil {
		observer := self.observer
		self._Dispatch(func() { observer.OnTrafficRemoved(tile) })
	}
}

// Re-requests traffic for the current viewport and position.
func (self *TrafficManager) Invalidate() {
	self.lock.Lock()
	if self.state == TRAFFIC_DISABLED {
		self.lock.Unlock()
		return
	}
	self.last_viewport_tiles = nil
	self.last_position_tiles = nil
	viewport := self.viewport_box
	position := self.position_point
	self.lock.Unlock()

	if viewport.HasValue() {
		self.UpdateViewport(viewport.Value)
	}
	if position.HasValue() {
		self.UpdatePosition(position.Value)
	}
}

func (self *TrafficManager) Pause() {
	self.lock.Lock()
	defer self.lock.Unlock()
	self.is_paused = true
}

func (self *TrafficManager) Resume() {
	self.lock.Lock()
	if !self.is_paused {
		self.lock.Unlock()
		return
	}
	self.is_paused = false
	self.lock.Unlock()
	self.Invalidate()
}

func (self *TrafficManager) UpdateViewport(box geo.BBox) {
	self.lock.Lock()
	self.viewport_box = Some(box)
	if self.state == TRAFFIC_DISABLED || self.state == TRAFFIC_NETWORK_ERROR || self.is_paused {
		self.lock.Unlock()
		return
	}
	tiles := geo.TilesCovering(box)
	if slices.Equal(tiles, self.last_viewport_tiles) {
		self.lock.Unlock()
		return
	}
	self.last_viewport_tiles = tiles
	self.viewport_tiles = NewDict[geo.TileId, bool](len(tiles))
	for _, tile := range tiles {
		self.viewport_tiles[tile] = true
	}
	self._RequestTilesLocked(tiles)
	self.lock.Unlock()
	self._Wake()
}

// Side length in degrees of the interest square around the current
// position.
const _POSITION_WINDOW = 0.05

func (self *TrafficManager) UpdatePosition(point geo.Coord) {
	self.lock.Lock()
	self.position_point = Some(point)
	if self.state == TRAFFIC_DISABLED || self.state == TRAFFIC_NETWORK_ERROR || self.is_paused {
		self.lock.Unlock()
		return
	}
	half := float32(_POSITION_WINDOW / 2)
	box := geo.NewBBox(point.Lon()-half, point.Lat()-half, point.Lon()+half, point.Lat()+half)
	tiles := geo.TilesCovering(box)
	if slices.Equal(tiles, self.last_position_tiles) {
		self.lock.Unlock()
		return
	}
	self.last_position_tiles = tiles
	self.position_tiles = NewDict[geo.TileId, bool](len(tiles))
	for _, tile := range tiles {
		self.position_tiles[tile] = true
	}
	self._RequestTilesLocked(tiles)
	self.lock.Unlock()
	self._Wake()
}

//**********************************************************
// source manager contract
//**********************************************************

func (self *TrafficManager) GetActiveTiles() List[geo.TileId] {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self._UnitedTilesLocked()
}

func (self *TrafficManager) ReceiveFeed(feed traff.Feed) {
	if feed.Messages.Length() == 0 {
		return
	}
	self.lock.Lock()
	self.is_started = true
	self.feed_queue.Add(feed)
	now := time.Now()
	for tile := range self.viewport_tiles {
		self._OnTileResponseLocked(tile, now)
	}
	for tile := range self.position_tiles {
		self._OnTileResponseLocked(tile, now)
	}
	self.lock.Unlock()
	self._Wake()
}

func (self *TrafficManager) RegisterSource(src source.ISource) {
	self.lock.Lock()
	defer self.lock.Unlock()
	self.sources.Add(src)
}

//**********************************************************
// worker loop
//**********************************************************

func (self *TrafficManager) _ThreadRoutine() {
	self.last_renderer_update = time.Now()
	self.last_observer_update = time.Now()
	for self._WaitForRequest() {
		self.lock.Lock()
		enabled := self.state != TRAFFIC_DISABLED
		started := self.is_started
		paused := self.is_paused
		self.lock.Unlock()
		if !enabled {
			continue
		}

		self.PurgeExpiredMessages()
		if started && !paused && !self.options.TestMode {
			self._SetSubscriptionArea()
			self._PollSources()
		}
		self._ConsolidateFeedQueue()
		self._DecodeFirstMessage()
		self._NotifyConsumers()
		self._UpdateState()
	}
	// unsubscribing from the worker keeps teardown free of response
	// callbacks racing a dying manager
	self.lock.Lock()
	sources := slices.Clone(self.sources)
	self.lock.Unlock()
	for _, src := range sources {
		src.Unsubscribe()
	}
	close(self.done)
}

func (self *TrafficManager) _WaitForRequest() bool {
	self.lock.Lock()
	if !self.is_running {
		self.lock.Unlock()
		return false
	}
	if self.is_started && self.feed_queue.Length() > 0 && self.decoder != nil {
		self.lock.Unlock()
		return true
	}
	self.lock.Unlock()

	timer := time.NewTimer(self.options.UpdateInterval)
	select {
	case <-self.wake:
		timer.Stop()
	case <-timer.C:
	}

	self.lock.Lock()
	defer self.lock.Unlock()
	return self.is_running
}

func (self *TrafficManager) _SetSubscriptionArea() {
	self.lock.Lock()
	changed := self.tiles_changed
	self.tiles_changed = false
	tiles := self._UnitedTilesLocked()
	sources := slices.Clone(self.sources)
	self.lock.Unlock()
	if tiles.Length() == 0 {
		return
	}
	for _, src := range sources {
		if src.Availability() == source.EXPIRED_APP {
			continue
		}
		if changed || !src.IsSubscribed() {
			src.SubscribeOrChangeSubscription(tiles)
		}
	}
}

func (self *TrafficManager) _PollSources() {
	self.lock.Lock()
	sources := slices.Clone(self.sources)
	self.lock.Unlock()
	for _, src := range sources {
		if src.IsPollNeeded() {
			src.Poll()
		}
		self._ApplySourceAvailability(src.Availability())
	}
}

// Folds a source availability into the per-tile bookkeeping.
func (self *TrafficManager) _ApplySourceAvailability(availability source.Availability) {
	self.lock.Lock()
	defer self.lock.Unlock()
	for tile := range self.viewport_tiles {
		entry := self._TileEntryLocked(tile)
		switch availability {
		case source.AVAILABILITY_ERROR:
			if entry.is_waiting && !entry.is_loaded {
				entry.retries += 1
			}
		case source.EXPIRED_APP:
			entry.last_availability = source.EXPIRED_APP
		case source.NOT_COVERED:
			entry.last_availability = source.NOT_COVERED
		}
	}
}

// Removes duplicate message ids across queued feeds, keeping the one
// with the newest update time. Ties go to the later-enqueued feed.
func (self *TrafficManager) _ConsolidateFeedQueue() {
	self.lock.Lock()
	defer self.lock.Unlock()
	for i := self.feed_queue.Length() - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			mi := 0
			for mi < self.feed_queue[i].Messages.Length() {
				removed := false
				for mj := self.feed_queue[j].Messages.Length() - 1; mj >= 0; mj-- {
					if self.feed_queue[i].Messages[mi].Id != self.feed_queue[j].Messages[mj].Id {
						continue
					}
					if self.feed_queue[i].Messages[mi].UpdateTime.Before(self.feed_queue[j].Messages[mj].UpdateTime) {
						self.feed_queue[i].Messages.Remove(mi)
						removed = true
						break
					}
					self.feed_queue[j].Messages.Remove(mj)
				}
				if !removed {
					mi += 1
				}
			}
		}
	}
	for i := self.feed_queue.Length() - 1; i >= 0; i-- {
		if self.feed_queue[i].Messages.Length() == 0 {
			self.feed_queue.Remove(i)
		}
	}
}

// Dequeues the oldest message, decodes it outside the lock and caches
// it if it is strictly newer than the cached entry with the same id.
func (self *TrafficManager) _DecodeFirstMessage() {
	self.lock.Lock()
	self._EnsureDecoderLocked()
	if self.decoder == nil {
		// no graph tiles yet, retried next cycle
		self.lock.Unlock()
		return
	}
	for self.feed_queue.Length() > 0 && self.feed_queue[0].Messages.Length() == 0 {
		self.feed_queue.Remove(0)
	}
	if self.feed_queue.Length() == 0 {
		self.lock.Unlock()
		return
	}
	message := self.feed_queue[0].Messages[0]
	self.feed_queue[0].Messages.Remove(0)
	if self.feed_queue[0].Messages.Length() == 0 {
		self.feed_queue.Remove(0)
	}
	if cached, ok := self.message_cache[message.Id]; ok {
		if !message.UpdateTime.After(cached.UpdateTime) {
			self.lock.Unlock()
			slog.Info("message " + message.Id + " is already in cache, skipping")
			return
		}
	}
	// cached entries the decoder may reuse the coloring of
	reusable := NewDict[string, *traff.Message](1)
	if cached, ok := self.message_cache[message.Id]; ok {
		reusable[message.Id] = cached
	}
	for _, id := range message.Replaces {
		if cached, ok := self.message_cache[id]; ok {
			reusable[id] = cached
		}
	}
	dec := self.decoder
	self.lock.Unlock()

	if !message.Cancellation {
		dec.DecodeMessage(message, reusable)
	}

	self.lock.Lock()
	defer self.lock.Unlock()
	for _, id := range message.Replaces {
		self.message_cache.Delete(id)
	}
	self.message_cache.Set(message.Id, message)
}

// Rebuilds the merged coloring from the cache and hands the per-tile
// slices to the consumers, rate-limited while feeds are pending.
func (self *TrafficManager) _NotifyConsumers() {
	self.lock.Lock()
	drained := self.feed_queue.Length() == 0
	notify_renderer := drained
	notify_observer := drained
	now := time.Now()
	if !drained {
		notify_renderer = now.Sub(self.last_renderer_update) >= self.options.RendererInterval
		notify_observer = now.Sub(self.last_observer_update) >= self.options.ObserverInterval
	}
	if !notify_renderer && !notify_observer {
		self.lock.Unlock()
		return
	}

	// full rebuild, removed and eased messages drop out here
	coloring := traffic.NewMultiTileColoring()
	for _, message := range self.message_cache {
		if message.Coloring.HasValue() {
			traffic.MergeColoring(coloring, message.Coloring.Value)
		}
	}
	self.coloring = coloring

	updates := NewList[Tuple[geo.TileId, traffic.Coloring]](coloring.Length())
	for _, tile := range self._UnitedTilesLocked() {
		groups, ok := coloring[tile]
		if !ok {
			continue
		}
		entry := self._TileEntryLocked(tile)
		entry.is_loaded = true
		entry.is_waiting = false
		entry.last_response_time = now
		entry.retries = 0
		entry.last_availability = source.IS_AVAILABLE
		updates.Add(MakeTuple(tile, groups))
	}
	if notify_renderer {
		self.last_renderer_update = now
	}
	if notify_observer {
		self.last_observer_update = now
	}
	renderer := self.renderer
	observer := self.observer
	self.lock.Unlock()

	for _, update := range updates {
		tile := update.A
		groups := update.B
		if notify_renderer && renderer != nil {
			self._Dispatch(func() { renderer.UpdateTraffic(tile, groups) })
		}
		if notify_observer && observer != nil {
			self._Dispatch(func() { observer.OnTrafficAdded(tile, groups) })
		}
	}
}

// Derives the global state from the viewport tiles, first matching
// condition wins.
func (self *TrafficManager) _UpdateState() {
	self.lock.Lock()
	if self.state == TRAFFIC_DISABLED || self.state == TRAFFIC_NETWORK_ERROR {
		self.lock.Unlock()
		return
	}
	now := time.Now()
	max_age := time.Duration(0)
	waiting := false
	network_error := false
	expired_app := false
	no_data := false
	for tile := range self.viewport_tiles {
		entry := self._TileEntryLocked(tile)
		if entry.is_waiting {
			waiting = true
			continue
		}
		expired_app = expired_app || entry.last_availability == source.EXPIRED_APP
		no_data = no_data || entry.last_availability == source.NOT_COVERED
		if entry.is_loaded {
			age := now.Sub(entry.last_response_time)
			if age > max_age {
				max_age = age
			}
		} else if entry.retries >= self.options.MaxRetries {
			network_error = true
		}
	}

	var state TrafficState
	switch {
	case network_error || max_age >= self.options.NetworkTimeout:
		state = TRAFFIC_NETWORK_ERROR
	case waiting:
		state = TRAFFIC_WAITING_DATA
	case expired_app:
		state = TRAFFIC_EXPIRED_APP
	case no_data:
		state = TRAFFIC_NO_DATA
	case max_age >= self.options.OutdatedTimeout:
		state = TRAFFIC_OUTDATED
	default:
		state = TRAFFIC_ENABLED
	}
	self._ChangeStateLocked(state)
	self.lock.Unlock()
}

//**********************************************************
// internals
//**********************************************************

func (self *TrafficManager) _Wake() {
	select {
	case self.wake <- struct{}{}:
	default:
	}
}

func (self *TrafficManager) _Dispatch(task func()) {
	self.tasks.Add(1)
	go func() {
		defer self.tasks.Done()
		task()
	}()
}

func (self *TrafficManager) _ClearLocked() {
	self.feed_queue.Clear()
	self.message_cache = NewDict[string, *traff.Message](100)
	self.coloring = traffic.NewMultiTileColoring()
	self.tile_cache = NewDict[geo.TileId, *CacheEntry](10)
	self.last_viewport_tiles = nil
	self.last_position_tiles = nil
	self.viewport_tiles = NewDict[geo.TileId, bool](4)
	self.position_tiles = NewDict[geo.TileId, bool](4)
}

func (self *TrafficManager) _EnsureDecoderLocked() {
	if self.decoder != nil {
		return
	}
	if self.graph == nil || len(self.graph.Tiles()) == 0 {
		return
	}
	self.decoder = decoder.NewDecoder(self.graph, self.options.LeftHandTraffic)
}

func (self *TrafficManager) _UnitedTilesLocked() List[geo.TileId] {
	tiles := NewList[geo.TileId](self.viewport_tiles.Length())
	for tile := range self.viewport_tiles {
		tiles.Add(tile)
	}
	for tile := range self.position_tiles {
		if !self.viewport_tiles.ContainsKey(tile) {
			tiles.Add(tile)
		}
	}
	return tiles
}

func (self *TrafficManager) _TileEntryLocked(tile geo.TileId) *CacheEntry {
	entry, ok := self.tile_cache[tile]
	if !ok {
		entry = NewCacheEntry(time.Now())
		self.tile_cache[tile] = entry
	}
	return entry
}

func (self *TrafficManager) _RequestTilesLocked(tiles []geo.TileId) {
	now := time.Now()
	for _, tile := range tiles {
		entry, ok := self.tile_cache[tile]
		if !ok {
			self.tile_cache[tile] = NewCacheEntry(now)
			continue
		}
		if now.Sub(entry.last_request_time) >= self.options.UpdateInterval {
			entry.is_waiting = true
			entry.last_request_time = now
		}
		entry.last_active_time = now
	}
	self.is_started = true
	self.tiles_changed = true
}

func (self *TrafficManager) _OnTileResponseLocked(tile geo.TileId, now time.Time) {
	entry := self._TileEntryLocked(tile)
	entry.is_waiting = false
	entry.last_response_time = now
	entry.retries = 0
}

func (self *TrafficManager) _ChangeStateLocked(state TrafficState) {
	if self.state == state {
		return
	}
	self.state = state
	slog.Info("traffic state changed to " + state.String())
	if self.on_state_changed != nil {
		listener := self.on_state_changed
		self._Dispatch(func() { listener(state) })
	}
}
