package eventloop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type LoopTestSuite struct {
	suite.Suite
	loop *Loop
}

func (s *LoopTestSuite) SetupTest() {
	s.loop = New()
}

func (s *LoopTestSuite) TestSubmitBeforeStart() {
	err := s.loop.Submit(func() {})
	s.ErrorIs(err, ErrNotStarted)
}

func (s *LoopTestSuite) TestStartTwice() {
	s.Require().NoError(s.loop.Start())
	defer s.loop.Stop()

	s.ErrorIs(s.loop.Start(), ErrAlreadyStarted)
}

func (s *LoopTestSuite) TestStartAfterStop() {
	s.Require().NoError(s.loop.Start())
	s.loop.Stop()

	s.ErrorIs(s.loop.Start(), ErrClosed)
}

func (s *LoopTestSuite) TestTasksRunInSubmissionOrder() {
	s.Require().NoError(s.loop.Start())

	const n = 50
	var (
		mu  sync.Mutex
		got []int
	)
	done := make(chan struct{})

	for i := 0; i < n; i++ {
		i := i
		s.Require().NoError(s.loop.Submit(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == n-1 {
				close(done)
			}
		}))
		// The buffer is smaller than n; give the worker room to drain.
		for s.loop.Pending() >= _taskBufferSize {
			time.Sleep(time.Millisecond)
		}
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.FailNow("tasks did not complete")
	}
	s.loop.Stop()

	s.Len(got, n)
	for i, v := range got {
		s.Equal(i, v)
	}
}

func (s *LoopTestSuite) TestSubmitAfterStop() {
	s.Require().NoError(s.loop.Start())
	s.loop.Stop()

	s.ErrorIs(s.loop.Submit(func() {}), ErrClosed)
}

func (s *LoopTestSuite) TestStopDrainsAcceptedTasks() {
	s.Require().NoError(s.loop.Start())

	release := make(chan struct{})
	var (
		mu  sync.Mutex
		ran int
	)

	// First task blocks the worker so the rest stay buffered.
	s.Require().NoError(s.loop.Submit(func() {
		<-release
		mu.Lock()
		ran++
		mu.Unlock()
	}))
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.loop.Submit(func() {
			mu.Lock()
			ran++
			mu.Unlock()
		}))
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()

	// Stop joins the worker; every accepted task must have run by then.
	s.loop.Stop()

	mu.Lock()
	defer mu.Unlock()
	s.Equal(6, ran)
}

func (s *LoopTestSuite) TestStopIsIdempotent() {
	s.Require().NoError(s.loop.Start())
	s.loop.Stop()
	s.NotPanics(func() { s.loop.Stop() })
}

func (s *LoopTestSuite) TestStopWithoutStart() {
	s.NotPanics(func() { s.loop.Stop() })
}

func (s *LoopTestSuite) TestPending() {
	// Not started: submissions are rejected, nothing pending.
	s.Equal(0, s.loop.Pending())

	s.Require().NoError(s.loop.Start())

	release := make(chan struct{})
	s.Require().NoError(s.loop.Submit(func() { <-release }))

	// Wait until the worker picked up the blocker.
	deadline := time.Now().Add(time.Second)
	for s.loop.Pending() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	s.Equal(0, s.loop.Pending())

	s.Require().NoError(s.loop.Submit(func() {}))
	s.Equal(1, s.loop.Pending())

	close(release)
	s.loop.Stop()
	s.Equal(0, s.loop.Pending())
}

func (s *LoopTestSuite) TestBacklogFull() {
	s.Require().NoError(s.loop.Start())

	release := make(chan struct{})
	s.Require().NoError(s.loop.Submit(func() { <-release }))

	// Wait for the worker to take the blocker off the buffer.
	deadline := time.Now().Add(time.Second)
	for s.loop.Pending() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	for i := 0; i < _taskBufferSize; i++ {
		s.Require().NoError(s.loop.Submit(func() {}))
	}
	s.ErrorIs(s.loop.Submit(func() {}), ErrBacklogFull)

	close(release)
	s.loop.Stop()
}

func TestLoopSuite(t *testing.T) {
	suite.Run(t, new(LoopTestSuite))
}
