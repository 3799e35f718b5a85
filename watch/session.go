// Package watch owns the lifecycle view of a single submitted contract:
// it fetches the full resource, falls back to status-only polling when
// the resource is not yet queryable, reconciles poll payloads into the
// held view, and tears the poll down once a terminal state is observed.
package watch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/client"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/model"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/pkg/logger"
)

// DefaultInterval is the poll cadence while a contract is in flight.
const DefaultInterval = 2 * time.Second

// API is the slice of the transport client a session needs. Get fetches
// the full resource; GetStatus the lightweight poll payload.
type API interface {
	Get(ctx context.Context, id string) (*model.Contract, error)
	GetStatus(ctx context.Context, id string) (*client.StatusResponse, error)
}

var _ API = (*client.Client)(nil)

// State is the session's view state.
type State int

const (
	// StateLoading means the initial (or a refreshed) full fetch is
	// outstanding and nothing is held yet.
	StateLoading State = iota
	// StateReady means a contract view is held; it may be non-terminal,
	// in which case polling is active.
	StateReady
	// StateNotFound is terminal: the contract could not be loaded and no
	// further action is taken until a manual refresh.
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateNotFound:
		return "not_found"
	}
	return "unknown"
}

// Snapshot is an immutable view of the session at one instant. Contract
// is a copy and is nil unless State is StateReady.
type Snapshot struct {
	State    State
	Contract *model.Contract
}

// Session synchronizes one contract's lifecycle. All state is owned by
// a single goroutine, so status and full fetches within a session are
// strictly sequential: a poll tick is never issued while a previous
// fetch is outstanding, and at most one request of each kind is in
// flight at any instant.
type Session struct {
	api      API
	id       string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    State
	contract *model.Contract

	updates  chan Snapshot
	refresh  chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// Option configures a session.
type Option func(*Session)

// WithInterval overrides the poll interval. Values <= 0 keep the default.
func WithInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.interval = d
		}
	}
}

// Start begins a synchronization session for the given contract ID. The
// session runs until a terminal state is reached and no refresh arrives,
// or until Stop is called. Callers must call Stop when the session's
// owning context goes away; a stopped session discards any response that
// was still in flight rather than applying it.
func Start(api API, id string, opts ...Option) *Session {
	ctx := context.WithValue(context.Background(), logger.ContractIDKey, id)
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		api:      api,
		id:       id,
		interval: DefaultInterval,
		ctx:      ctx,
		cancel:   cancel,
		state:    StateLoading,
		updates:  make(chan Snapshot, 16),
		refresh:  make(chan struct{}, 1),
		finished: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.run()
	return s
}

// Stop cancels the session: the poll ticker is torn down and any
// response still in flight is discarded. Stop is idempotent.
func (s *Session) Stop() {
	s.stopOnce.Do(s.cancel)
}

// Refresh re-runs the initial load, regardless of the current state.
// Signals are coalesced: a refresh requested while one is already
// pending is a no-op.
func (s *Session) Refresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Updates delivers snapshots as the view changes. The channel is
// best-effort: when the consumer lags, intermediate snapshots are
// dropped in favor of Snapshot(). It is closed when the session ends.
func (s *Session) Updates() <-chan Snapshot {
	return s.updates
}

// Finished is closed once the session goroutine has exited.
func (s *Session) Finished() <-chan struct{} {
	return s.finished
}

// Snapshot returns the current view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, Contract: s.contract.Clone()}
}

func (s *Session) run() {
	defer close(s.finished)
	defer close(s.updates)

	s.load()

	var ticker *time.Ticker
	var tick <-chan time.Time

	start := func() {
		if ticker == nil && s.shouldPoll() {
			ticker = time.NewTicker(s.interval)
			tick = ticker.C
		}
	}
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tick = nil
		}
	}
	defer stop()

	start()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.refresh:
			stop()
			s.load()
			start()
		case <-tick:
			s.poll()
			if !s.shouldPoll() {
				// Terminal or lost: tear the interval down for good.
				stop()
			}
		}
	}
}

// load performs the initial full fetch (step one of the lifecycle).
// When the resource is not yet queryable it falls back to the status
// endpoint and synthesizes a placeholder view so polling can begin
// without a full resource.
func (s *Session) load() {
	s.set(StateLoading, nil)

	c, err := s.api.Get(s.ctx, s.id)
	switch {
	case err == nil:
		s.set(StateReady, c)
	case errors.Is(err, client.ErrResourceNotReady):
		st, serr := s.api.GetStatus(s.ctx, s.id)
		if serr != nil {
			logger.Warn(s.ctx, "status fallback failed", "error", serr)
			s.set(StateNotFound, nil)
			return
		}
		now := time.Now()
		s.set(StateReady, &model.Contract{
			ID:           s.id,
			Status:       st.Status,
			Progress:     st.Progress,
			ErrorMessage: st.ErrorMessage,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	default:
		logger.Warn(s.ctx, "contract load failed", "error", err)
		s.set(StateNotFound, nil)
	}
}

// poll performs one status fetch and reconciles the result. Transport
// failures are absorbed: the same ticker fires again on the next tick
// with no backoff and no retry cap, trading liveness guarantees for
// simplicity.
func (s *Session) poll() {
	st, err := s.api.GetStatus(s.ctx, s.id)
	if err != nil {
		logger.Debug(s.ctx, "status poll failed, will retry", "error", err)
		return
	}

	if st.Status != model.StatusCompleted {
		s.mergeStatus(st)
		return
	}
	if s.ctx.Err() != nil {
		// Stopped while the poll was in flight; the late completion is
		// discarded, not acted on.
		return
	}

	// Exactly one full fetch follows a completed status, and the
	// completed view is published only once it resolves: with the
	// report on success, without it when the fetch fails. Publishing
	// before the fetch would hand consumers a terminal snapshot that
	// is still missing its report. The degraded report-less state is
	// accepted and never re-polled.
	full, err := s.api.Get(s.ctx, s.id)
	if err != nil {
		logger.Warn(s.ctx, "report fetch after completion failed", "error", err)
		s.mergeStatus(st)
		return
	}
	if !full.Status.Terminal() {
		// The status endpoint already reported completed; a stale full
		// payload must not revive polling.
		full = full.Clone()
		full.Status = st.Status
		full.Progress = st.Progress
		full.ErrorMessage = st.ErrorMessage
	}
	s.setContract(full)
}

// shouldPoll reports whether the held contract still needs the ticker.
func (s *Session) shouldPoll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateReady && s.contract != nil && !s.contract.Status.Terminal()
}

// mergeStatus reconciles a status payload into the held contract:
// status, progress and error message are overwritten, identifier and
// report are untouched (status payloads never carry a report). Progress
// is applied as received, without clamping. The result is discarded
// when the session has stopped or no contract is held.
func (s *Session) mergeStatus(st *client.StatusResponse) {
	if s.ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	if s.state != StateReady || s.contract == nil {
		s.mu.Unlock()
		return
	}
	c := s.contract.Clone()
	c.Status = st.Status
	c.Progress = st.Progress
	c.ErrorMessage = st.ErrorMessage
	s.contract = c
	snap := Snapshot{State: s.state, Contract: c.Clone()}
	s.mu.Unlock()

	s.publish(snap)
}

// setContract replaces the held contract with a freshly fetched full
// resource, unless the session has stopped in the meantime.
func (s *Session) setContract(c *model.Contract) {
	if s.ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return
	}
	s.contract = c
	snap := Snapshot{State: s.state, Contract: c.Clone()}
	s.mu.Unlock()

	s.publish(snap)
}

func (s *Session) set(state State, c *model.Contract) {
	if s.ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	s.state = state
	s.contract = c
	snap := Snapshot{State: state, Contract: c.Clone()}
	s.mu.Unlock()

	s.publish(snap)
}

// publish delivers a snapshot, evicting the oldest buffered one when
// the consumer lags. The latest view is never lost, which matters for
// the terminal snapshot a consumer blocks on.
func (s *Session) publish(snap Snapshot) {
	for {
		select {
		case s.updates <- snap:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}
