// Package sequencer runs a Task List snapshot item by item: wait the item's
// delay, launch it, report the outcome, move on. No item failure aborts a
// run.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/VoxDroid/lnchr/internal/launcher"
	"github.com/VoxDroid/lnchr/internal/tasklist"
)

// DefaultGracePeriod is how long a close-after-run waits after completion
// before asking the application to terminate.
const DefaultGracePeriod = time.Second

// ErrRunInProgress is returned by Start while another run is active.
var ErrRunInProgress = errors.New("a run is already in progress")

// State is the lifecycle state of a Run.
type State int32

// Run states.
const (
	StatePending State = iota
	StateRunning
	StateComplete
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Outcome is what happened to one item.
type Outcome struct {
	Item      tasklist.Item
	Attempted bool
	Err       error
}

// Result summarises a finished run.
type Result struct {
	Outcomes  []Outcome
	Cancelled bool
}

// Launched counts items that started successfully.
func (r Result) Launched() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Attempted && o.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts items that were attempted and failed.
func (r Result) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Attempted && o.Err != nil {
			n++
		}
	}
	return n
}

// Run is a handle to one in-flight or finished execution. It is safe to
// observe from any goroutine.
type Run struct {
	ID uuid.UUID

	events chan Event
	done   chan struct{}
	state  atomic.Int32

	mu     sync.Mutex
	result Result
}

// Events returns progress events. The channel is buffered for the whole run
// and closed when the run finishes, so an absent reader never stalls it.
func (r *Run) Events() <-chan Event { return r.events }

// Done is closed once the run, including any close-after-run grace period,
// has finished.
func (r *Run) Done() <-chan struct{} { return r.done }

// State returns the current lifecycle state.
func (r *Run) State() State { return State(r.state.Load()) }

// Result returns a copy of the outcomes recorded so far.
func (r *Run) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := Result{Cancelled: r.result.Cancelled, Outcomes: make([]Outcome, len(r.result.Outcomes))}
	copy(out.Outcomes, r.result.Outcomes)
	return out
}

// Wait blocks until the run is done or ctx ends.
func (r *Run) Wait(ctx context.Context) (Result, error) {
	select {
	case <-r.done:
		return r.Result(), nil
	case <-ctx.Done():
		return r.Result(), ctx.Err()
	}
}

// Sequencer executes snapshots one run at a time.
type Sequencer struct {
	launcher  launcher.Launcher
	clock     clockwork.Clock
	grace     time.Duration
	terminate func()
	log       *slog.Logger

	mu     sync.Mutex
	active *Run
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithClock sets the clock used for delays and the grace period.
func WithClock(c clockwork.Clock) Option { return func(s *Sequencer) { s.clock = c } }

// WithGracePeriod sets the wait between completion and termination.
func WithGracePeriod(d time.Duration) Option { return func(s *Sequencer) { s.grace = d } }

// WithTerminate sets the function called when a close-after-run run ends.
func WithTerminate(fn func()) Option { return func(s *Sequencer) { s.terminate = fn } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Sequencer) { s.log = l } }

// New returns a Sequencer that dispatches items through l.
func New(l launcher.Launcher, opts ...Option) *Sequencer {
	s := &Sequencer{
		launcher: l,
		clock:    clockwork.NewRealClock(),
		grace:    DefaultGracePeriod,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Active returns the current run, or nil when none is in flight.
func (s *Sequencer) Active() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	select {
	case <-s.active.done:
		return nil
	default:
		return s.active
	}
}

// Start begins executing snap on a new goroutine and returns immediately.
// The snapshot is copied again, so the caller may reuse it.
func (s *Sequencer) Start(ctx context.Context, snap tasklist.Snapshot, closeAfterRun bool) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		select {
		case <-s.active.done:
		default:
			return nil, ErrRunInProgress
		}
	}
	items := snap.Items()
	run := &Run{
		ID: uuid.New(),
		// started + up to three events per item + complete + terminating
		events: make(chan Event, 3*len(items)+3),
		done:   make(chan struct{}),
	}
	run.result.Outcomes = make([]Outcome, len(items))
	for i, it := range items {
		run.result.Outcomes[i].Item = it
	}
	s.active = run
	go s.execute(ctx, run, items, closeAfterRun)
	return run, nil
}

func (s *Sequencer) execute(ctx context.Context, run *Run, items []tasklist.Item, closeAfterRun bool) {
	defer close(run.done)
	defer close(run.events)

	total := len(items)
	log := s.log.With("run", run.ID.String())
	run.state.Store(int32(StateRunning))
	s.emit(log, run, Event{Kind: EventStarted, Index: -1, Total: total})

	cancelled := false
	for i, it := range items {
		if it.Delay > 0 {
			d := Seconds(it.Delay)
			s.emit(log, run, Event{Kind: EventWaiting, Index: i, Total: total, Item: it, Delay: d})
			if !s.sleep(ctx, d) {
				cancelled = true
				break
			}
		}
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		s.emit(log, run, Event{Kind: EventDispatching, Index: i, Total: total, Item: it})
		err := s.launch(ctx, it.Path)

		run.mu.Lock()
		run.result.Outcomes[i].Attempted = true
		run.result.Outcomes[i].Err = err
		run.mu.Unlock()

		if err != nil {
			s.emit(log, run, Event{Kind: EventFailed, Index: i, Total: total, Item: it, Err: err})
			continue
		}
		s.emit(log, run, Event{Kind: EventLaunched, Index: i, Total: total, Item: it})
	}

	run.mu.Lock()
	run.result.Cancelled = cancelled
	res := Result{Outcomes: run.result.Outcomes, Cancelled: cancelled}
	run.mu.Unlock()
	run.state.Store(int32(StateComplete))
	s.emit(log, run, Event{
		Kind: EventComplete, Index: -1, Total: total,
		Launched: res.Launched(), Failed: res.Failed(), Cancelled: cancelled,
	})

	if !closeAfterRun || cancelled {
		return
	}
	if !s.sleep(ctx, s.grace) {
		return
	}
	s.emit(log, run, Event{Kind: EventTerminating, Index: -1, Total: total})
	if s.terminate != nil {
		s.terminate()
	}
}

// launch dispatches one item; a panicking launcher counts as a failed item.
func (s *Sequencer) launch(ctx context.Context, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("launch %s: panic: %v", path, r)
		}
	}()
	return s.launcher.Launch(ctx, path)
}

// sleep waits d on the sequencer clock; false means ctx ended first.
func (s *Sequencer) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-s.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Sequencer) emit(log *slog.Logger, run *Run, ev Event) {
	ev.RunID = run.ID
	ev.At = s.clock.Now()
	switch ev.Kind {
	case EventFailed:
		log.Warn(ev.String(), "event", ev.Kind.String(), "path", ev.Item.Path, "err", ev.Err)
	case EventStarted, EventComplete, EventTerminating:
		log.Info(ev.String(), "event", ev.Kind.String())
	default:
		log.Debug(ev.String(), "event", ev.Kind.String(), "path", ev.Item.Path)
	}
	run.events <- ev
}

// Seconds converts a delay in (fractional) seconds to a Duration.
func Seconds(sec float64) time.Duration {
	if sec <= 0 || math.IsNaN(sec) {
		return 0
	}
	if sec >= math.MaxInt64/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(math.Round(sec * float64(time.Second)))
}
