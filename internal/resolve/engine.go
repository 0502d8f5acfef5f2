package resolve

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lc/hostq/internal/eventloop"
	"github.com/lc/hostq/internal/log"
)

// Request is a hostname/port pair to resolve. It is passed by value into
// the engine so the worker operates on a submit-time snapshot; later
// mutation by the caller cannot race the in-flight lookup.
type Request struct {
	Hostname string
	Port     string
}

// Result is the single value delivered per accepted resolution: an ordered
// list of endpoints (possibly empty) or a failure. Zero endpoints with a
// nil Err is a valid, successful completion.
type Result struct {
	Endpoints []Endpoint
	Err       error
}

// Backend performs the actual lookup of a hostname. Implementations run on
// the event-loop worker and own their own timeout behavior.
type Backend interface {
	Lookup(ctx context.Context, hostname string) ([]Endpoint, error)
}

// Submitter is the slice of the event loop the engine needs.
type Submitter interface {
	Submit(eventloop.Task) error
}

var _ Submitter = (*eventloop.Loop)(nil)

// Engine validates resolution requests and runs accepted ones on the event
// loop. For every request it accepts, the completion callback fires exactly
// once on the worker goroutine, whether the lookup succeeded, came back
// empty, or failed.
type Engine struct {
	loop    Submitter
	backend Backend
}

// NewEngine creates an Engine that submits lookups to loop and executes
// them against backend.
func NewEngine(loop Submitter, backend Backend) *Engine {
	return &Engine{
		loop:    loop,
		backend: backend,
	}
}

// Resolve validates req and, if it is acceptable, schedules the lookup and
// returns nil immediately. Validation failures are reported synchronously
// and leave the loop and the completion path untouched: the caller must not
// wait for a completion after a non-nil return.
func (e *Engine) Resolve(req Request, done func(Result)) error {
	if err := validate(req); err != nil {
		return err
	}

	id := uuid.NewString()
	if err := e.loop.Submit(func() {
		e.complete(id, req, done)
	}); err != nil {
		return fmt.Errorf("submitting lookup: %w", err)
	}

	log.Debugf("resolve: submitted %s for %s:%s", id, req.Hostname, req.Port)
	return nil
}

// complete runs on the worker goroutine and always invokes done exactly once.
func (e *Engine) complete(id string, req Request, done func(Result)) {
	res := e.lookup(req)
	if res.Err != nil {
		log.Warnf("resolve: %s failed: %v", id, res.Err)
	} else {
		log.Debugf("resolve: %s completed with %d endpoints", id, len(res.Endpoints))
	}
	done(res)
}

// lookup executes the backend and normalizes every failure mode, including
// a panicking backend, into a Result. A panic must not escape: it would
// kill the worker and leave the waiter blocked forever.
func (e *Engine) lookup(req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: &LookupError{
				Code:    CodeInternal,
				Message: fmt.Sprintf("lookup panicked: %v", r),
			}}
		}
	}()

	eps, err := e.backend.Lookup(context.Background(), req.Hostname)
	if err != nil {
		return Result{Err: asLookupError(err)}
	}
	return Result{Endpoints: eps}
}

// asLookupError passes LookupErrors through and wraps anything else as a
// transport-level failure.
func asLookupError(err error) *LookupError {
	var lerr *LookupError
	if errors.As(err, &lerr) {
		return lerr
	}
	return &LookupError{
		Code:    CodeTransport,
		Message: err.Error(),
		Err:     err,
	}
}

// validate applies the engine-side input constraints: non-empty hostname
// and port, port numeric. Anything stricter belongs to the caller.
func validate(req Request) error {
	if strings.TrimSpace(req.Hostname) == "" {
		return ErrEmptyHostname
	}
	port := strings.TrimSpace(req.Port)
	if port == "" {
		return ErrEmptyPort
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPort, req.Port)
	}
	return nil
}
