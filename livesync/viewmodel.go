// Package livesync keeps an in-memory RSVP list and its statistics
// consistent with the persistent store for one event at a time, across
// initial load, manual refresh and asynchronous change notifications.
package livesync

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"eventify-api/domain"
)

// State of the view model for the currently mounted event.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Change is one feed notification: an RSVP row for the event was
// inserted or updated.
type Change struct {
	Kind    string
	EventID string
	RSVPID  string
}

// Gateway is the slice of the store the view model reads from.
type Gateway interface {
	FetchRSVPsForEvent(ctx context.Context, eventID string) ([]domain.RSVP, error)
	FetchRSVPStatistics(ctx context.Context, eventID string) (domain.RSVPStatistics, error)
}

// Feed delivers change notifications scoped to one event. The returned
// release function must stop delivery and be safe to call repeatedly.
type Feed interface {
	Subscribe(ctx context.Context, eventID string, onChange func(Change)) (func(), error)
}

// Snapshot is the locally held row set and its authoritative statistics.
// The two are fetched separately and reconciled, never derived from one
// another, so a server-side change to the statistics procedure cannot
// drift silently.
type Snapshot struct {
	Rows       []domain.RSVP
	Statistics domain.RSVPStatistics
}

// ViewModel owns the subscribe/refetch lifecycle for one event's RSVP
// list. At most one feed subscription is held at a time; mounting a
// different event releases the previous one first.
type ViewModel struct {
	gateway Gateway
	feed    Feed
	logger  *log.Logger

	// onNewRSVP fires after a push-triggered refresh completes. Manual
	// refreshes never fire it.
	onNewRSVP func()

	mu       sync.Mutex
	eventID  string
	state    State
	snapshot Snapshot
	lastErr  error
	release  func()
	ctx      context.Context
	closed   bool
}

// New creates an idle view model. onNewRSVP may be nil.
func New(gateway Gateway, feed Feed, onNewRSVP func(), logger *log.Logger) *ViewModel {
	if gateway == nil {
		panic("livesync.New: gateway is nil")
	}
	if feed == nil {
		panic("livesync.New: feed is nil")
	}
	if logger == nil {
		logger = log.New()
	}
	return &ViewModel{
		gateway:   gateway,
		feed:      feed,
		onNewRSVP: onNewRSVP,
		logger:    logger,
		state:     StateIdle,
	}
}

// Mount points the view model at an event: it opens the feed
// subscription and performs the initial load. Mounting while already
// mounted releases the previous subscription before opening the new one.
func (vm *ViewModel) Mount(ctx context.Context, eventID string) error {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return context.Canceled
	}
	if vm.release != nil {
		vm.release()
		vm.release = nil
	}
	vm.eventID = eventID
	vm.ctx = ctx
	vm.state = StateLoading
	vm.snapshot = Snapshot{}
	vm.lastErr = nil
	vm.mu.Unlock()

	release, err := vm.feed.Subscribe(ctx, eventID, vm.handleChange)
	if err != nil {
		vm.fail(eventID, err)
		return err
	}

	vm.mu.Lock()
	if vm.closed || vm.eventID != eventID {
		vm.mu.Unlock()
		release()
		return context.Canceled
	}
	vm.release = release
	vm.mu.Unlock()

	return vm.load(ctx, eventID, false)
}

// Refresh re-fetches the row set and statistics, fully replacing the
// local snapshot. It never emits the new-RSVP signal.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	vm.mu.Lock()
	eventID := vm.eventID
	closed := vm.closed
	vm.mu.Unlock()
	if closed || eventID == "" {
		return context.Canceled
	}
	return vm.load(ctx, eventID, false)
}

// Close releases the feed subscription. It is safe to call more than
// once; in-flight loads finishing after Close leave no trace.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	release := vm.release
	vm.release = nil
	vm.closed = true
	vm.mu.Unlock()
	if release != nil {
		release()
	}
}

// Snapshot returns a copy of the current rows and statistics along with
// the state and the last load error, if any.
func (vm *ViewModel) Snapshot() (Snapshot, State, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	rows := make([]domain.RSVP, len(vm.snapshot.Rows))
	copy(rows, vm.snapshot.Rows)
	return Snapshot{Rows: rows, Statistics: vm.snapshot.Statistics}, vm.state, vm.lastErr
}

// State reports the current lifecycle state.
func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// handleChange reacts to a feed notification with a full refetch rather
// than patching the single changed row: after any notification the
// local snapshot is consistent with the store within one round trip.
func (vm *ViewModel) handleChange(c Change) {
	vm.mu.Lock()
	ctx := vm.ctx
	eventID := vm.eventID
	closed := vm.closed
	vm.mu.Unlock()
	if closed || eventID == "" || c.EventID != eventID {
		return
	}
	if err := vm.load(ctx, eventID, true); err != nil {
		vm.logger.WithFields(log.Fields{"event_id": eventID, "rsvp_id": c.RSVPID}).Errorf("push refresh failed: %v", err)
	}
}

func (vm *ViewModel) load(ctx context.Context, eventID string, fromFeed bool) error {
	vm.mu.Lock()
	if vm.closed || vm.eventID != eventID {
		vm.mu.Unlock()
		return context.Canceled
	}
	vm.state = StateLoading
	vm.mu.Unlock()

	var (
		rows     []domain.RSVP
		rowsErr  error
		stats    domain.RSVPStatistics
		statsErr error
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rows, rowsErr = vm.gateway.FetchRSVPsForEvent(ctx, eventID)
	}()
	go func() {
		defer wg.Done()
		stats, statsErr = vm.gateway.FetchRSVPStatistics(ctx, eventID)
	}()
	wg.Wait()

	if rowsErr != nil {
		return vm.fail(eventID, rowsErr)
	}
	if statsErr != nil {
		return vm.fail(eventID, statsErr)
	}
	if err := stats.Validate(); err != nil {
		vm.logger.Warnf("statistics procedure returned inconsistent counts: %v", err)
	}

	vm.mu.Lock()
	if vm.closed || vm.eventID != eventID {
		// The view unmounted or switched events while we were fetching.
		vm.mu.Unlock()
		return context.Canceled
	}
	vm.snapshot = Snapshot{Rows: rows, Statistics: stats}
	vm.state = StateReady
	vm.lastErr = nil
	notify := fromFeed && vm.onNewRSVP != nil
	vm.mu.Unlock()

	if notify {
		vm.onNewRSVP()
	}
	return nil
}

// fail records the error without clearing any previously loaded
// snapshot; a Ready screen keeps its list on a failed refresh.
func (vm *ViewModel) fail(eventID string, err error) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.closed || vm.eventID != eventID {
		return context.Canceled
	}
	vm.state = StateError
	vm.lastErr = err
	return err
}
