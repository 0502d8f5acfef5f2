// Package session composes the event loop, the resolution engine, and the
// completion handshake into the lifecycle object a command source drives:
// configure, resolve, wait, repeat, eventually close.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lc/hostq/internal/eventloop"
	"github.com/lc/hostq/internal/handshake"
	"github.com/lc/hostq/internal/log"
	"github.com/lc/hostq/internal/resolve"
)

var (
	// ErrClosed is returned when the session has been closed.
	ErrClosed = errors.New("session closed")
	// ErrResolveInFlight is returned by Resolve while a previous
	// resolution has not been waited for yet.
	ErrResolveInFlight = errors.New("resolution already in flight")
	// ErrNotResolving is returned by Wait when no resolution is in flight.
	ErrNotResolving = errors.New("no resolution in flight")
	// ErrBusy is returned by Close while a resolution is in flight.
	ErrBusy = errors.New("resolution in flight, wait before closing")
)

// State is the session lifecycle state.
type State int

const (
	// StateIdle accepts a new resolution or a close.
	StateIdle State = iota
	// StateResolving has a lookup in flight; only Wait makes progress.
	StateResolving
	// StateClosed is terminal.
	StateClosed
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session coordinates one hostname/port's resolution lifecycle. The worker
// goroutine starts at construction and stays alive across resolutions until
// Close joins it. A Session supports one outstanding resolution at a time;
// it is designed to be driven by a single goroutine.
type Session struct {
	loop   *eventloop.Loop
	engine *resolve.Engine
	slot   *handshake.Slot[resolve.Result]

	mu    sync.Mutex // guards state and req
	state State
	req   resolve.Request
}

// New builds a Session around backend and starts the worker goroutine.
func New(backend resolve.Backend) (*Session, error) {
	loop := eventloop.New()
	if err := loop.Start(); err != nil {
		return nil, fmt.Errorf("starting event loop: %w", err)
	}

	s := &Session{
		loop:  loop,
		slot:  handshake.New[resolve.Result](),
		state: StateIdle,
	}
	s.engine = resolve.NewEngine(loop, backend)

	log.Debug("session: created")
	return s, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Configure stores the hostname and port for the next resolution. No
// validation happens here; Resolve validates. Configure must not be called
// while a resolution is in flight.
func (s *Session) Configure(hostname, port string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.req = resolve.Request{Hostname: hostname, Port: port}
}

// Resolve submits the configured request to the worker and returns
// immediately. On nil return the session is Resolving and the caller must
// call Wait exactly once. On non-nil return nothing was submitted, no
// completion will arrive, and the state is unchanged.
func (s *Session) Resolve() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateClosed:
		return ErrClosed
	case StateResolving:
		return ErrResolveInFlight
	}

	// The request is copied into the engine here; reconfiguring the
	// session while the lookup runs cannot affect it.
	if err := s.engine.Resolve(s.req, s.slot.Signal); err != nil {
		return err
	}

	s.state = StateResolving
	return nil
}

// Wait blocks until the in-flight resolution completes, returns the session
// to Idle, and reports the outcome: the ordered endpoints (possibly empty)
// or the resolution failure.
func (s *Session) Wait() ([]resolve.Endpoint, error) {
	s.mu.Lock()
	if s.state != StateResolving {
		s.mu.Unlock()
		return nil, ErrNotResolving
	}
	s.mu.Unlock()

	// Not holding the lock here: the block can last as long as the
	// backend's own timeout allows.
	res := s.slot.Await()

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()

	return res.Endpoints, res.Err
}

// Close releases the worker and blocks until it has exited. It refuses to
// close over an in-flight resolution: the caller must Wait first. Close is
// terminal; every later Resolve, Wait, or Close fails with ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	switch s.state {
	case StateClosed:
		s.mu.Unlock()
		return ErrClosed
	case StateResolving:
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = StateClosed
	s.mu.Unlock()

	s.loop.Stop()
	log.Debug("session: closed")
	return nil
}
