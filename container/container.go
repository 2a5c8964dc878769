// Package container manages the lifecycle of presented overlay views:
// admission under a queue policy, gesture wiring, auto-dismiss timers,
// dismissal with typed reasons, and change notification.
package container

import (
	"container/list"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jmylchreest/scrim/compose"
	"github.com/jmylchreest/scrim/config"
	"github.com/jmylchreest/scrim/drag"
	"github.com/jmylchreest/scrim/gesture"
	"github.com/jmylchreest/scrim/style"
	"github.com/jmylchreest/scrim/view"
)

// DismissReason identifies why a view was removed.
type DismissReason string

const (
	// ReasonGesture means the resolved dismiss gesture completed.
	ReasonGesture DismissReason = "gesture"
	// ReasonTimeout means the auto-dismiss lifetime elapsed.
	ReasonTimeout DismissReason = "timeout"
	// ReasonHidden means the visibility flag was forced to false.
	ReasonHidden DismissReason = "hidden"
	// ReasonReplaced means a newer view displaced it under one-by-one.
	ReasonReplaced DismissReason = "replaced"
	// ReasonManual means the host dismissed it explicitly.
	ReasonManual DismissReason = "manual"
	// ReasonClosed means the container shut down.
	ReasonClosed DismissReason = "closed"
)

// ValidDismissReasons returns all valid dismiss reason values.
func ValidDismissReasons() []DismissReason {
	return []DismissReason{
		ReasonGesture,
		ReasonTimeout,
		ReasonHidden,
		ReasonReplaced,
		ReasonManual,
		ReasonClosed,
	}
}

// ChangeType categorizes container change events.
type ChangeType int

const (
	ChangePresent ChangeType = iota
	ChangeQueue
	ChangeDismiss
	ChangeUpdate
)

// ChangeEvent signals container content changes.
type ChangeEvent struct {
	Type   ChangeType
	ViewID string
	Reason DismissReason // set for ChangeDismiss
}

// DismissCallback is called after a view has been removed.
type DismissCallback func(viewID string, reason DismissReason)

// PartialCloseCallback is called on every interactive drag tick.
type PartialCloseCallback func(viewID string, pc drag.PartialClose)

// managedView is the live state of one presented view.
type managedView struct {
	view        *view.View
	seq         uint64
	effective   config.Effective
	recognizer  gesture.Recognizer
	machine     *drag.Machine
	presentedAt time.Time
	expiresAt   time.Time // Zero means never expires
	dismissed   bool      // Latch: callbacks fire at most once
}

// Errors
var (
	ErrContainerClosed = containerError("container is closed")
	ErrNotFound        = containerError("view not found")
	ErrDuplicateID     = containerError("view id already presented")
)

type containerError string

func (e containerError) Error() string {
	return string(e)
}

// Container owns a set of overlay views. Present admits views under the
// configured queue policy; Units exposes the composed render state.
// Gesture handlers (recognizers and drag machines) must be fed from a
// single goroutine, conventionally the render loop.
type Container struct {
	profile gesture.InputProfile
	logger  *slog.Logger

	mu           sync.RWMutex
	cfg          config.ContainerConfig
	views        map[string]*managedView
	seq          uint64
	pending      *list.List // *view.View waiting for a slot
	pendingIndex map[string]*list.Element

	subscribers []chan ChangeEvent
	closed      bool

	onDismiss      DismissCallback
	onPartialClose PartialCloseCallback

	timeoutCh chan string
	stopCh    chan struct{}
}

// NewContainer creates a container with the given configuration and input
// profile.
func NewContainer(cfg config.ContainerConfig, profile gesture.InputProfile, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.Default()
	}

	return &Container{
		profile:      profile,
		logger:       logger,
		cfg:          cfg,
		views:        make(map[string]*managedView),
		pending:      list.New(),
		pendingIndex: make(map[string]*list.Element),
		subscribers:  make([]chan ChangeEvent, 0),
		timeoutCh:    make(chan string, 100),
		stopCh:       make(chan struct{}),
	}
}

// Start begins processing auto-dismiss timeouts.
func (c *Container) Start() {
	go c.handleTimeouts()
	c.logger.Info("container started", "display_mode", c.cfg.DisplayMode, "queue", c.cfg.Queue)
}

// Stop dismisses every view with the closed reason and shuts the
// container down. Subscriber channels are closed. Stopping twice is a
// no-op.
func (c *Container) Stop() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stopCh)
	c.DismissAll(ReasonClosed)

	c.mu.Lock()
	for _, ch := range c.subscribers {
		close(ch)
	}
	c.subscribers = nil
	c.mu.Unlock()

	c.logger.Info("container stopped")
}

// SetDismissCallback sets the callback for view dismiss events.
func (c *Container) SetDismissCallback(cb DismissCallback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDismiss = cb
}

// SetPartialCloseCallback sets the callback for interactive drag ticks.
func (c *Container) SetPartialCloseCallback(cb PartialCloseCallback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPartialClose = cb
}

// Present admits a view. Depending on the queue policy it becomes visible
// immediately, replaces the current view, or waits for a slot.
func (c *Container) Present(v *view.View) error {
	if err := v.Validate(); err != nil {
		return err
	}

	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return ErrContainerClosed
	}
	if _, exists := c.views[v.ID]; exists {
		c.mu.Unlock()
		return ErrDuplicateID
	}
	if _, exists := c.pendingIndex[v.ID]; exists {
		c.mu.Unlock()
		return ErrDuplicateID
	}

	var replaced *managedView
	switch c.cfg.Queue {
	case config.QueueOneByOne:
		// Displace whatever is visible
		for id := range c.views {
			replaced = c.removeLocked(id)
			break
		}
		if replaced != nil {
			c.notifyLocked(ChangeEvent{Type: ChangeDismiss, ViewID: replaced.view.ID, Reason: ReasonReplaced})
		}
		c.presentLocked(v)

	case config.QueueOneByOneWaitFinish:
		if len(c.views) > 0 {
			c.enqueueLocked(v)
		} else {
			c.presentLocked(v)
		}

	default: // QueueMultiple
		if c.cfg.MaxVisible > 0 && len(c.views) >= c.cfg.MaxVisible {
			c.enqueueLocked(v)
		} else {
			c.presentLocked(v)
		}
	}

	onDismiss := c.onDismiss
	c.mu.Unlock()

	if replaced != nil && onDismiss != nil {
		onDismiss(replaced.view.ID, ReasonReplaced)
	}
	return nil
}

// presentLocked makes the view visible. Caller must hold the lock.
func (c *Container) presentLocked(v *view.View) {
	c.seq++
	eff := config.Resolve(c.cfg, v.Override)

	m := &managedView{
		view:        v,
		seq:         c.seq,
		effective:   eff,
		presentedAt: time.Now(),
	}
	m.recognizer, m.machine = compose.Wire(c.profile, eff.Gesture, c.gestureDismiss(v.ID))
	if m.machine != nil {
		m.machine.OnPartialClose(c.partialClose(v.ID))
	}

	if eff.AutoDismiss > 0 {
		m.expiresAt = m.presentedAt.Add(eff.AutoDismiss)
		c.scheduleTimeout(v.ID, m.expiresAt)
	}

	c.views[v.ID] = m
	c.notifyLocked(ChangeEvent{Type: ChangePresent, ViewID: v.ID})

	c.logger.Debug("presented view",
		"view_id", v.ID,
		"seq", m.seq,
		"gesture", eff.Gesture.Kind,
		"auto_dismiss", eff.AutoDismiss,
		"active", len(c.views),
	)
}

// enqueueLocked parks the view until a slot opens. Caller must hold the lock.
func (c *Container) enqueueLocked(v *view.View) {
	elem := c.pending.PushBack(v)
	c.pendingIndex[v.ID] = elem
	c.notifyLocked(ChangeEvent{Type: ChangeQueue, ViewID: v.ID})

	c.logger.Debug("queued view", "view_id", v.ID, "pending", c.pending.Len())
}

// gestureDismiss returns the dismiss hook wired into the view's gesture
// handler.
func (c *Container) gestureDismiss(id string) func() {
	return func() {
		if err := c.Dismiss(id, ReasonGesture); err != nil {
			c.logger.Debug("gesture dismiss on missing view", "view_id", id)
		}
	}
}

// partialClose returns the drag-tick hook for one view. It fans out to the
// optional host callback and the change subscribers.
func (c *Container) partialClose(id string) func(drag.PartialClose) {
	return func(pc drag.PartialClose) {
		c.mu.RLock()
		cb := c.onPartialClose
		c.mu.RUnlock()
		if cb != nil {
			cb(id, pc)
		}

		c.mu.Lock()
		c.notifyLocked(ChangeEvent{Type: ChangeUpdate, ViewID: id})
		c.mu.Unlock()
	}
}

// Dismiss removes a view with the given reason. Queued views are removed
// without ever becoming visible. Returns ErrNotFound for unknown ids.
func (c *Container) Dismiss(id string, reason DismissReason) error {
	c.mu.Lock()

	if elem, queued := c.pendingIndex[id]; queued {
		c.pending.Remove(elem)
		delete(c.pendingIndex, id)
		onDismiss := c.onDismiss
		c.mu.Unlock()

		c.fireDismiss(onDismiss, id, reason)
		return nil
	}

	m := c.removeLocked(id)
	onDismiss := c.onDismiss
	c.mu.Unlock()

	if m == nil {
		return ErrNotFound
	}

	c.fireDismiss(onDismiss, id, reason)
	c.showNext()

	c.logger.Debug("dismissed view", "view_id", id, "reason", reason)
	return nil
}

// removeLocked takes a view out of the visible set and arms its latch.
// Returns nil when the id is unknown or already dismissed. Caller must
// hold the lock.
func (c *Container) removeLocked(id string) *managedView {
	m, exists := c.views[id]
	if !exists || m.dismissed {
		return nil
	}
	m.dismissed = true
	delete(c.views, id)
	return m
}

// fireDismiss runs the dismiss callback and change notification for one
// removed view. Never called with the lock held.
func (c *Container) fireDismiss(cb DismissCallback, id string, reason DismissReason) {
	if cb != nil {
		cb(id, reason)
	}

	c.mu.Lock()
	c.notifyLocked(ChangeEvent{Type: ChangeDismiss, ViewID: id, Reason: reason})
	c.mu.Unlock()
}

// DismissAll removes every visible and queued view with the given reason.
func (c *Container) DismissAll(reason DismissReason) {
	c.mu.Lock()
	removed := make([]*managedView, 0, len(c.views))
	for id := range c.views {
		if m := c.removeLocked(id); m != nil {
			removed = append(removed, m)
		}
	}

	queued := make([]string, 0, c.pending.Len())
	for e := c.pending.Front(); e != nil; e = e.Next() {
		queued = append(queued, e.Value.(*view.View).ID)
	}
	c.pending.Init()
	c.pendingIndex = make(map[string]*list.Element)

	onDismiss := c.onDismiss
	c.mu.Unlock()

	for _, m := range removed {
		c.fireDismiss(onDismiss, m.view.ID, reason)
	}
	for _, id := range queued {
		c.fireDismiss(onDismiss, id, reason)
	}
}

// SetPresented forces the visibility flag of a view. Setting it false
// dismisses the view with the hidden reason; setting it true on a known
// view is a no-op.
func (c *Container) SetPresented(id string, presented bool) error {
	if presented {
		c.mu.RLock()
		_, visible := c.views[id]
		_, queued := c.pendingIndex[id]
		c.mu.RUnlock()
		if !visible && !queued {
			return ErrNotFound
		}
		return nil
	}
	return c.Dismiss(id, ReasonHidden)
}

// showNext admits queued views while slots are available.
func (c *Container) showNext() {
	for {
		c.mu.Lock()
		if c.closed || !c.hasRoomLocked() || c.pending.Len() == 0 {
			c.mu.Unlock()
			return
		}

		elem := c.pending.Front()
		v := elem.Value.(*view.View)
		c.pending.Remove(elem)
		delete(c.pendingIndex, v.ID)
		c.presentLocked(v)
		c.mu.Unlock()
	}
}

// hasRoomLocked reports whether another view may become visible. Caller
// must hold the lock.
func (c *Container) hasRoomLocked() bool {
	switch c.cfg.Queue {
	case config.QueueOneByOne, config.QueueOneByOneWaitFinish:
		return len(c.views) == 0
	default:
		return c.cfg.MaxVisible == 0 || len(c.views) < c.cfg.MaxVisible
	}
}

// scheduleTimeout arms a wakeup for the view's expiry. Stale wakeups are
// filtered against the current expiry in handleTimeouts.
func (c *Container) scheduleTimeout(id string, expiresAt time.Time) {
	go func() {
		timer := time.NewTimer(time.Until(expiresAt))
		defer timer.Stop()
		select {
		case <-timer.C:
			select {
			case c.timeoutCh <- id:
			case <-c.stopCh:
			}
		case <-c.stopCh:
		}
	}()
}

// handleTimeouts processes auto-dismiss wakeups.
func (c *Container) handleTimeouts() {
	for {
		select {
		case id := <-c.timeoutCh:
			c.mu.RLock()
			m, exists := c.views[id]
			shouldClose := exists && !m.expiresAt.IsZero() && !time.Now().Before(m.expiresAt)
			c.mu.RUnlock()

			if shouldClose {
				if err := c.Dismiss(id, ReasonTimeout); err != nil {
					c.logger.Debug("timeout for missing view", "view_id", id)
				}
			}
		case <-c.stopCh:
			return
		}
	}
}

// UpdateConfig swaps the container configuration. Every view's effective
// configuration is recomputed; gesture handlers are re-wired only when
// the resolved selector changed, so live drag state survives unrelated
// edits. Called on config hot reload.
func (c *Container) UpdateConfig(cfg config.ContainerConfig) {
	c.mu.Lock()
	c.cfg = cfg

	for id, m := range c.views {
		eff := config.Resolve(cfg, m.view.Override)
		if selectorChanged(m.effective.Gesture, eff.Gesture) {
			m.recognizer, m.machine = compose.Wire(c.profile, eff.Gesture, c.gestureDismiss(id))
			if m.machine != nil {
				m.machine.OnPartialClose(c.partialClose(id))
			}
		}

		if eff.AutoDismiss != m.effective.AutoDismiss {
			if eff.AutoDismiss > 0 {
				m.expiresAt = m.presentedAt.Add(eff.AutoDismiss)
				c.scheduleTimeout(id, m.expiresAt)
			} else {
				m.expiresAt = time.Time{}
			}
		}

		m.effective = eff
		c.notifyLocked(ChangeEvent{Type: ChangeUpdate, ViewID: id})
	}
	c.mu.Unlock()

	c.logger.Debug("container config updated", "display_mode", cfg.DisplayMode, "queue", cfg.Queue)

	c.showNext()
}

// selectorChanged compares the fields that affect gesture wiring. The
// custom recognizer is deliberately excluded; it is not comparable.
func selectorChanged(a, b gesture.Selector) bool {
	return a.Kind != b.Kind || a.LongPressFor != b.LongPressFor || a.Axes != b.Axes
}

// Units returns the composed render state of every visible view, ordered
// by the configured display order.
func (c *Container) Units() []compose.Unit {
	c.mu.RLock()
	defer c.mu.RUnlock()

	managed := make([]*managedView, 0, len(c.views))
	for _, m := range c.views {
		managed = append(managed, m)
	}
	sortManaged(managed, c.cfg.Order)

	units := make([]compose.Unit, 0, len(managed))
	for _, m := range managed {
		units = append(units, compose.Build(compose.Params{
			View:       m.view,
			Seq:        m.seq,
			Effective:  m.effective,
			Recognizer: m.recognizer,
			Machine:    m.machine,
		}))
	}
	return units
}

// Layers returns every layer of every visible view sorted back-to-front.
func (c *Container) Layers() []compose.Layer {
	return compose.Flatten(c.Units(), c.Order())
}

// Order returns the configured display order.
func (c *Container) Order() config.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Order
}

// DisplayMode returns the configured display mode.
func (c *Container) DisplayMode() style.DisplayMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.DisplayMode
}

// Count returns the number of visible views.
func (c *Container) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.views)
}

// PendingCount returns the number of views waiting for a slot.
func (c *Container) PendingCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending.Len()
}

// Subscribe returns a channel that receives change events. Slow consumers
// miss events rather than blocking the container.
func (c *Container) Subscribe() <-chan ChangeEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	c.subscribers = append(c.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (c *Container) Unsubscribe(ch <-chan ChangeEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, sub := range c.subscribers {
		if sub == ch {
			c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// notifyLocked sends a change event to all subscribers (non-blocking).
// Caller must hold the lock.
func (c *Container) notifyLocked(event ChangeEvent) {
	for _, ch := range c.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

// sortManaged orders views by insertion sequence under the display order.
func sortManaged(ms []*managedView, order config.Order) {
	sort.SliceStable(ms, func(i, j int) bool {
		less := ms[i].seq < ms[j].seq
		if order == config.OrderDescending {
			return !less
		}
		return less
	})
}
