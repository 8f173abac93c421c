package touch

import (
	"container/heap"
	"time"
)

// Timer is a cancellable task posted to a Scheduler.
type Timer struct {
	at    time.Time
	fn    func(now time.Time)
	seq   uint64
	index int // heap index; -1 once fired or stopped
	sched *Scheduler
}

// Stop cancels the timer. It reports whether the call prevented the timer
// from firing. Stopping a nil, fired, or already stopped timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.index < 0 {
		return false
	}
	heap.Remove(&t.sched.tasks, t.index)
	t.index = -1
	return true
}

// Pending reports whether the timer is still scheduled.
func (t *Timer) Pending() bool {
	return t != nil && t.index >= 0
}

// Deadline returns the time the timer fires at.
func (t *Timer) Deadline() time.Time {
	return t.at
}

// Scheduler runs timer tasks on the caller's goroutine, in deadline order,
// when Advance is called. Scene advances it before processing every raw
// event so timers and touches never interleave.
type Scheduler struct {
	tasks timerHeap
	seq   uint64
	now   time.Time

	// onPanic, if set, receives values recovered from a panicking task.
	onPanic func(r any)
}

// Schedule posts fn to run once the scheduler is advanced to at or later.
func (s *Scheduler) Schedule(at time.Time, fn func(now time.Time)) *Timer {
	s.seq++
	t := &Timer{at: at, fn: fn, seq: s.seq, sched: s}
	heap.Push(&s.tasks, t)
	return t
}

// Advance runs every task due at or before now and returns how many ran.
// Tasks scheduled by running tasks are eligible in the same call.
func (s *Scheduler) Advance(now time.Time) int {
	if now.After(s.now) {
		s.now = now
	}
	ran := 0
	for len(s.tasks) > 0 && !s.tasks[0].at.After(now) {
		t := heap.Pop(&s.tasks).(*Timer)
		t.index = -1
		s.run(t, now)
		ran++
	}
	return ran
}

// Now returns the latest time the scheduler was advanced to.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

func (s *Scheduler) run(t *Timer, now time.Time) {
	defer func() {
		if r := recover(); r != nil && s.onPanic != nil {
			s.onPanic(r)
		}
	}()
	t.fn(now)
}

// timerHeap orders timers by deadline, then by scheduling order.
type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
