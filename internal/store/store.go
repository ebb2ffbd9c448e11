package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/groundstation/internal/monitoring"
	"github.com/banshee-data/groundstation/internal/timeutil"
)

// DefaultActivityLimit bounds the activity log when no option overrides it.
const DefaultActivityLimit = 200

var logf = monitoring.Component("store")

// Listener is called with the new state after every dispatch.
type Listener func(State)

// Store is the session state container. Use New to construct one.
type Store struct {
	// dispatchMu serialises dispatches, including listener notification.
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners map[uint64]Listener
	nextID    uint64

	clock         timeutil.Clock
	activityLimit int
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for StartedAt and activity timestamps.
func WithClock(c timeutil.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithActivityLimit bounds the number of retained activity entries.
func WithActivityLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.activityLimit = n
		}
	}
}

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id string) Option {
	return func(s *Store) { s.state.SessionID = id }
}

// New creates a store holding the initial application state.
func New(opts ...Option) *Store {
	s := &Store{
		listeners:     make(map[uint64]Listener),
		clock:         timeutil.RealClock{},
		activityLimit: DefaultActivityLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.state.SessionID == "" {
		s.state.SessionID = uuid.NewString()
	}
	s.state.StartedAt = s.clock.Now()
	s.state.Selections = make(map[string]Selection)
	logf("session %s started", s.state.SessionID)
	return s
}

// GetState returns a deep copy of the current state.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Dispatch applies a to the state, notifies every listener and returns the
// resulting state. Dispatches are processed one at a time; a listener must
// not call Dispatch.
func (s *Store) Dispatch(a Action) State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next := Reduce(s.state, a)
	next.Revision = s.state.Revision + 1
	next.Activity = append(next.Activity, ActivityEntry{
		ID:        uuid.NewString(),
		Type:      a.Type(),
		Satellite: a.Target(),
		At:        s.clock.Now(),
	})
	if over := len(next.Activity) - s.activityLimit; over > 0 {
		next.Activity = append([]ActivityEntry(nil), next.Activity[over:]...)
	}
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	logf("rev %d: %s satellite=%q", next.Revision, a.Type(), a.Target())

	for _, l := range listeners {
		l(next.Clone())
	}
	return next.Clone()
}

// Subscribe registers l to be called after every dispatch. The returned
// function removes the listener; calling it more than once is harmless.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Uptime returns how long the session has existed.
func (s *Store) Uptime() time.Duration {
	s.mu.RLock()
	started := s.state.StartedAt
	s.mu.RUnlock()
	return s.clock.Since(started)
}
