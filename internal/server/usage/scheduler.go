package usage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/bynderpress/internal/logging"
)

// DefaultInterval replaces a non-positive interval given to NewScheduler.
const DefaultInterval = time.Hour

// ErrNotScheduled is returned by Trigger while the scheduler is idle.
var ErrNotScheduled = errors.New("usage sync is not scheduled")

type State string

const (
	StateIdle      State = "idle"
	StateScheduled State = "scheduled"
	StateRunning   State = "running"
)

// Runner performs one sync run.
type Runner interface {
	Run(ctx context.Context) (Result, error)
}

// Status is a snapshot of the scheduler.
type Status struct {
	State   State     `json:"state"`
	NextRun time.Time `json:"next_run,omitzero"`
	LastRun *Result   `json:"last_run,omitempty"`
}

type outcome struct {
	res Result
	err error
}

// Scheduler runs the usage sync in a single loop: once right after
// Schedule, then every interval. Manual triggers are served by the same
// loop, so two runs never overlap.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	log      logging.Logger
	now      func() time.Time

	triggers chan chan outcome

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	done    chan struct{}
	nextRun time.Time
	lastRun *Result
}

func NewScheduler(runner Runner, interval time.Duration, log logging.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		runner:   runner,
		interval: interval,
		log:      log.With("module", "scheduler"),
		now:      time.Now,
		triggers: make(chan chan outcome),
		state:    StateIdle,
	}
}

// Schedule starts the loop. It reports false and does nothing when the
// scheduler is already active.
func (s *Scheduler) Schedule(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return false
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.state = StateScheduled
	s.nextRun = s.now()

	go s.loop(ctx, s.done)

	s.log.Info(ctx, "usage sync scheduled", "interval", s.interval)
	return true
}

// Clear stops the loop and waits for a run in progress to return.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	if s.state == StateIdle {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done

	s.mu.Lock()
	s.state = StateIdle
	s.cancel, s.done = nil, nil
	s.nextRun = time.Time{}
	s.mu.Unlock()
}

// Trigger asks the loop for an immediate run and waits for its result.
func (s *Scheduler) Trigger(ctx context.Context) (Result, error) {
	s.mu.Lock()
	idle, done := s.state == StateIdle, s.done
	s.mu.Unlock()
	if idle {
		return Result{}, ErrNotScheduled
	}

	reply := make(chan outcome, 1)
	select {
	case s.triggers <- reply:
	case <-done:
		return Result{}, ErrNotScheduled
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	select {
	case o := <-reply:
		return o.res, o.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{State: s.state, NextRun: s.nextRun}
	if s.lastRun != nil {
		last := *s.lastRun
		st.LastRun = &last
	}
	return st
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.run(ctx)
			timer.Reset(s.interval)
			s.setNextRun(s.now().Add(s.interval))
		case reply := <-s.triggers:
			res, err := s.run(ctx)
			reply <- outcome{res: res, err: err}
		}
	}
}

func (s *Scheduler) run(ctx context.Context) (Result, error) {
	s.setRunning()
	res, err := s.runner.Run(ctx)
	s.finish(res)
	return res, err
}

func (s *Scheduler) setRunning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateRunning
}

func (s *Scheduler) finish(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = &res
	if s.state == StateRunning {
		s.state = StateScheduled
	}
}

func (s *Scheduler) setNextRun(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRun = t
}
