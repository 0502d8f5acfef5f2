package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lc/hostq/internal/eventloop"
)

// stubLoop collects submitted tasks so the test controls when they run.
type stubLoop struct {
	tasks []eventloop.Task
	err   error
}

func (l *stubLoop) Submit(fn eventloop.Task) error {
	if l.err != nil {
		return l.err
	}
	l.tasks = append(l.tasks, fn)
	return nil
}

func (l *stubLoop) runAll() {
	for _, fn := range l.tasks {
		fn()
	}
	l.tasks = nil
}

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Lookup(ctx context.Context, hostname string) ([]Endpoint, error) {
	args := m.Called(ctx, hostname)
	if eps := args.Get(0); eps != nil {
		return eps.([]Endpoint), args.Error(1)
	}
	return nil, args.Error(1)
}

type EngineTestSuite struct {
	suite.Suite
	loop    *stubLoop
	backend *mockBackend
	engine  *Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.loop = &stubLoop{}
	s.backend = new(mockBackend)
	s.engine = NewEngine(s.loop, s.backend)
}

func (s *EngineTestSuite) TestValidation() {
	testCases := []struct {
		name        string
		req         Request
		expectedErr error
	}{
		{
			name:        "empty hostname",
			req:         Request{Hostname: "", Port: "443"},
			expectedErr: ErrEmptyHostname,
		},
		{
			name:        "whitespace hostname",
			req:         Request{Hostname: "   ", Port: "443"},
			expectedErr: ErrEmptyHostname,
		},
		{
			name:        "empty port",
			req:         Request{Hostname: "example.test", Port: ""},
			expectedErr: ErrEmptyPort,
		},
		{
			name:        "non-numeric port",
			req:         Request{Hostname: "example.test", Port: "https"},
			expectedErr: ErrInvalidPort,
		},
		{
			name:        "port out of range",
			req:         Request{Hostname: "example.test", Port: "70000"},
			expectedErr: ErrInvalidPort,
		},
		{
			name:        "negative port",
			req:         Request{Hostname: "example.test", Port: "-1"},
			expectedErr: ErrInvalidPort,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			called := false
			err := s.engine.Resolve(tc.req, func(Result) { called = true })

			s.ErrorIs(err, tc.expectedErr)
			// Rejected synchronously: nothing submitted, no completion.
			s.Empty(s.loop.tasks)
			s.False(called)
		})
	}
}

func (s *EngineTestSuite) TestAcceptedRequestCompletesOnce() {
	eps := []Endpoint{
		{Address: "93.184.216.34", Family: FamilyIPv4},
		{Address: "2606:2800:220:1:248:1893:25c8:1946", Family: FamilyIPv6},
	}
	s.backend.On("Lookup", mock.Anything, "example.test").Return(eps, nil).Once()

	var results []Result
	err := s.engine.Resolve(
		Request{Hostname: "example.test", Port: "443"},
		func(r Result) { results = append(results, r) },
	)
	s.Require().NoError(err)

	// Nothing fires before the worker runs the task.
	s.Empty(results)
	s.loop.runAll()

	s.Require().Len(results, 1)
	s.NoError(results[0].Err)
	s.Equal(eps, results[0].Endpoints)
	s.backend.AssertExpectations(s.T())
}

func (s *EngineTestSuite) TestEmptyResultIsSuccess() {
	s.backend.On("Lookup", mock.Anything, "empty.test").Return([]Endpoint{}, nil).Once()

	var got Result
	err := s.engine.Resolve(
		Request{Hostname: "empty.test", Port: "80"},
		func(r Result) { got = r },
	)
	s.Require().NoError(err)
	s.loop.runAll()

	s.NoError(got.Err)
	s.Empty(got.Endpoints)
}

func (s *EngineTestSuite) TestBackendLookupErrorPassesThrough() {
	lerr := &LookupError{Code: 11001, Message: "host not found"}
	s.backend.On("Lookup", mock.Anything, "missing.test").Return(nil, lerr).Once()

	var got Result
	err := s.engine.Resolve(
		Request{Hostname: "missing.test", Port: "443"},
		func(r Result) { got = r },
	)
	s.Require().NoError(err)
	s.loop.runAll()

	var gotLerr *LookupError
	s.Require().ErrorAs(got.Err, &gotLerr)
	s.Equal(11001, gotLerr.Code)
	s.Equal("host not found", gotLerr.Message)
}

func (s *EngineTestSuite) TestBackendPlainErrorBecomesTransport() {
	s.backend.On("Lookup", mock.Anything, "down.test").
		Return(nil, errors.New("network unreachable")).Once()

	var got Result
	err := s.engine.Resolve(
		Request{Hostname: "down.test", Port: "443"},
		func(r Result) { got = r },
	)
	s.Require().NoError(err)
	s.loop.runAll()

	var lerr *LookupError
	s.Require().ErrorAs(got.Err, &lerr)
	s.Equal(CodeTransport, lerr.Code)
	s.Contains(lerr.Message, "network unreachable")
}

func (s *EngineTestSuite) TestBackendPanicIsRecovered() {
	s.backend.On("Lookup", mock.Anything, "boom.test").
		Run(func(mock.Arguments) { panic("kaboom") }).
		Return(nil, nil).Once()

	var got Result
	err := s.engine.Resolve(
		Request{Hostname: "boom.test", Port: "443"},
		func(r Result) { got = r },
	)
	s.Require().NoError(err)

	// The completion still fires; the panic becomes a LookupError.
	s.NotPanics(s.loop.runAll)

	var lerr *LookupError
	s.Require().ErrorAs(got.Err, &lerr)
	s.Equal(CodeInternal, lerr.Code)
	s.Contains(lerr.Message, "kaboom")
}

func (s *EngineTestSuite) TestSubmitFailurePropagates() {
	s.loop.err = eventloop.ErrClosed

	err := s.engine.Resolve(
		Request{Hostname: "example.test", Port: "443"},
		func(Result) { s.FailNow("completion must not fire") },
	)
	s.ErrorIs(err, eventloop.ErrClosed)
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
