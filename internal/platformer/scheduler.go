package platformer

import "container/heap"

// Scheduler is a tick-indexed queue of delayed callbacks. Callbacks are never
// removed once queued: each one must re-check its own precondition when it
// runs and do nothing if the state it was scheduled for has passed.
type Scheduler struct {
	now   int
	seq   uint64
	tasks taskQueue
}

type task struct {
	at  int
	seq uint64
	fn  func()
}

// After queues fn to run once the scheduler reaches now+ticks.
func (s *Scheduler) After(ticks int, fn func()) {
	if ticks < 0 {
		ticks = 0
	}
	s.At(s.now+ticks, fn)
}

// At queues fn to run on the given tick.
func (s *Scheduler) At(tick int, fn func()) {
	s.seq++
	heap.Push(&s.tasks, task{at: tick, seq: s.seq, fn: fn})
}

// Poll advances the clock to now and runs every due callback, earliest
// deadline first and in insertion order for equal deadlines. Callbacks that
// schedule work due at or before now run in the same poll.
func (s *Scheduler) Poll(now int) int {
	s.now = now
	ran := 0
	for s.tasks.Len() > 0 && s.tasks[0].at <= now {
		t := heap.Pop(&s.tasks).(task)
		t.fn()
		ran++
	}
	return ran
}

// Now returns the tick of the last poll.
func (s *Scheduler) Now() int { return s.now }

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int { return s.tasks.Len() }

type taskQueue []task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *taskQueue) Push(x any)   { *q = append(*q, x.(task)) }
func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = task{}
	*q = old[:n-1]
	return t
}
