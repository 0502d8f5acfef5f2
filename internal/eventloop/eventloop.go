// Package eventloop provides the single-worker task loop that executes all
// resolution work for hostq. Tasks submitted to the loop run serially, in
// submission order, on one dedicated goroutine; callers never execute loop
// work on their own goroutine. The loop stays alive with no pending work
// until Stop releases it.
package eventloop

import (
	"errors"
	"sync"

	"go.uber.org/atomic"

	"github.com/lc/hostq/internal/log"
)

const (
	// Small buffer so a submit never blocks the caller momentarily.
	// The session layer allows one outstanding resolution at a time,
	// so the buffer is never close to full in normal operation.
	_taskBufferSize = 16
)

var (
	// ErrNotStarted is returned by Submit before Start has been called.
	ErrNotStarted = errors.New("event loop not started")
	// ErrAlreadyStarted is returned by Start when the loop is already running.
	ErrAlreadyStarted = errors.New("event loop already started")
	// ErrClosed is returned by Submit once Stop has begun.
	ErrClosed = errors.New("event loop closed")
	// ErrBacklogFull is returned by Submit when the task buffer is full.
	ErrBacklogFull = errors.New("event loop backlog full")
)

// Task is a unit of work executed on the loop's worker goroutine.
type Task func()

// Loop runs submitted tasks one at a time on a single worker goroutine.
// The zero value is not usable; construct with New.
type Loop struct {
	tasks chan Task
	quit  chan struct{} // held open to keep the worker alive; closed by Stop
	done  chan struct{} // closed when the worker goroutine has exited

	started atomic.Bool

	mu     sync.Mutex // guards closed, ordered against Submit
	closed bool
}

// New creates a stopped Loop. Call Start to spawn the worker.
func New() *Loop {
	return &Loop{
		tasks: make(chan Task, _taskBufferSize),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start spawns the worker goroutine. It must be called exactly once;
// subsequent calls return ErrAlreadyStarted, and calls after Stop
// return ErrClosed.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	go l.run()
	log.Debug("eventloop: worker started")
	return nil
}

// Submit enqueues fn for execution on the worker goroutine and returns
// immediately. An accepted task is guaranteed to run, even if Stop is
// called right after Submit returns.
func (l *Loop) Submit(fn Task) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if !l.started.Load() {
		return ErrNotStarted
	}

	select {
	case l.tasks <- fn:
		return nil
	default:
		return ErrBacklogFull
	}
}

// Stop stops accepting new submissions, lets the worker drain every
// already-accepted task, and blocks until the worker goroutine has
// exited. It is idempotent; every call joins the worker.
func (l *Loop) Stop() {
	l.mu.Lock()
	already := l.closed
	l.closed = true
	l.mu.Unlock()

	if !already {
		close(l.quit)
	}
	if l.started.Load() {
		<-l.done
	}
	log.Debug("eventloop: worker stopped")
}

// Pending returns the number of accepted tasks not yet executed.
func (l *Loop) Pending() int {
	return len(l.tasks)
}

// run is the worker goroutine body. It executes tasks run-to-completion
// in FIFO order until the quit channel is released, then drains the
// backlog and exits.
func (l *Loop) run() {
	defer close(l.done)

	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.quit:
			// Submit is already rejecting; whatever is buffered now
			// is the complete remaining workload.
			for {
				select {
				case fn := <-l.tasks:
					fn()
				default:
					return
				}
			}
		}
	}
}
