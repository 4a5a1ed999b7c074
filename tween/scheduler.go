package tween

import (
	"sync"
	"time"
)

// A Target exposes named numeric fields that can be animated in place.
type Target interface {
	// Get returns the current value of field, or false if the target has no
	// such field.
	Get(field string) (float64, bool)
	Set(field string, value float64)
}

// Values maps field names to numeric values.
type Values map[string]float64

// Clock supplies submission timestamps.
type Clock interface {
	Now() time.Duration
}

// Task is one in-flight interpolation. It is also the handle returned to
// the submitter.
type Task struct {
	target   Target
	to       Values
	from     Values
	start    time.Duration
	duration time.Duration
	easing   Easing
	done     chan struct{}
}

// Done is closed once the task has landed on its target values.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Finished reports whether the final values have been applied.
func (t *Task) Finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// progress is a function of absolute time only, never of call count.
func (t *Task) progress(now time.Duration) float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(now-t.start) / float64(t.duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// apply writes the interpolated values for now and reports completion.
func (t *Task) apply(now time.Duration) bool {
	p := t.progress(now)
	if p >= 1 {
		for k, v := range t.to {
			if _, ok := t.from[k]; ok {
				t.target.Set(k, v)
			}
		}
		return true
	}

	eased := 0.0
	if p > 0 {
		eased = t.easing(p)
	}
	for k, from := range t.from {
		t.target.Set(k, from+(t.to[k]-from)*eased)
	}
	return false
}

// Scheduler holds the set of active interpolations and advances them once
// per frame.
type Scheduler struct {
	mu    sync.Mutex
	clock Clock
	tasks []*Task
}

// NewScheduler creates an instance of a Scheduler.
func NewScheduler(clock Clock) *Scheduler {
	s := new(Scheduler)
	s.clock = clock
	s.tasks = make([]*Task, 0, 8)
	return s
}

// Submit registers an interpolation of target towards to over duration and
// returns immediately. Start values are read here, once. Fields of to that
// target does not know are ignored. A nil easing is linear.
func (s *Scheduler) Submit(target Target, to Values, duration time.Duration, easing Easing) *Task {
	if easing == nil {
		easing = Linear
	}

	t := &Task{
		target:   target,
		to:       make(Values, len(to)),
		from:     make(Values, len(to)),
		start:    s.clock.Now(),
		duration: duration,
		easing:   easing,
		done:     make(chan struct{}),
	}
	for k, v := range to {
		t.to[k] = v
		if cur, ok := target.Get(k); ok {
			t.from[k] = cur
		}
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	return t
}

// Tick advances every active task to now and drops the ones that
// completed. Completed tasks always land exactly on their target values.
func (s *Scheduler) Tick(now time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.apply(now) {
			close(t.done)
			continue
		}
		live = append(live, t)
	}

	// Release references held past the new length.
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Len returns the number of in-flight tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
