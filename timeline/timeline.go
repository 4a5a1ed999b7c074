package timeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrStarted is returned when Run is called on a runner that already ran.
var ErrStarted = errors.New("timeline: already started")

// A Stage realises one beat of the presentation. It returns once its
// awaited effects are complete.
type Stage func(ctx context.Context) error

// Entry is one step of the sequence: a stage and the settle delay that
// follows it.
type Entry struct {
	Name  string
	Run   Stage
	Delay time.Duration
}

// Phase of the runner state machine.
type Phase int

const (
	Idle Phase = iota
	Running
	Settling
	Done
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Settling:
		return "settling"
	case Done:
		return "done"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// State is the runner's position. Index is the cursor into the entries.
type State struct {
	Phase Phase
	Index int
	Name  string
}

// Clock is what the runner needs from a clock.
type Clock interface {
	Now() time.Duration
	Sleep(ctx context.Context, d time.Duration) error
}

// Runner plays an ordered sequence of entries exactly once.
type Runner struct {
	clock   Clock
	entries []Entry

	mu        sync.Mutex
	state     State
	started   bool
	observers []func(State, time.Duration)
}

// NewRunner creates a Runner over entries. The sequence is copied and
// never changes afterwards.
func NewRunner(clock Clock, entries ...Entry) *Runner {
	r := new(Runner)
	r.clock = clock
	r.entries = append([]Entry(nil), entries...)
	r.state = State{Phase: Idle}
	return r
}

// Len returns the number of entries.
func (r *Runner) Len() int {
	return len(r.entries)
}

// OnTransition registers fn to be called, with the clock reading, on every
// state change. Register observers before Run.
func (r *Runner) OnTransition(fn func(State, time.Duration)) {
	r.mu.Lock()
	r.observers = append(r.observers, fn)
	r.mu.Unlock()
}

// State returns the current state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) enter(s State) {
	r.mu.Lock()
	r.state = s
	observers := r.observers
	r.mu.Unlock()

	now := r.clock.Now()
	for _, fn := range observers {
		fn(s, now)
	}
}

// Run plays every entry in order. Entry i+1 starts only after entry i's
// stage returned and its delay fully elapsed. A stage that never returns
// stalls the runner for good. Run can only be called once.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrStarted
	}
	r.started = true
	r.mu.Unlock()

	for i, e := range r.entries {
		r.enter(State{Phase: Running, Index: i, Name: e.Name})
		if e.Run != nil {
			if err := e.Run(ctx); err != nil {
				return fmt.Errorf("stage %s: %w", e.Name, err)
			}
		}

		r.enter(State{Phase: Settling, Index: i, Name: e.Name})
		if err := r.clock.Sleep(ctx, e.Delay); err != nil {
			return fmt.Errorf("stage %s: settle: %w", e.Name, err)
		}
	}

	r.enter(State{Phase: Done, Index: len(r.entries)})
	return nil
}
