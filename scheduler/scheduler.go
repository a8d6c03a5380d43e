// Package scheduler implements the single-threaded, cooperative
// virtual-time event loop every job in the simulator runs on.
// Grounded on the original Scheduler.hpp, which kept tasks in an
// ordered std::set; Go has no ordered-set in its standard library, so
// this uses container/heap (stdlib: no third-party priority-queue
// library appears anywhere in the retrieval pack, and a hand-rolled
// binary heap is exactly what the original's std::set gave it for
// free).
package scheduler

import "container/heap"

// Event is anything the scheduler can fire. Fire is called with now
// equal to the event's own fire time.
type Event interface {
	Fire()
}

type task struct {
	fireTime uint64
	seq      uint64
	event    Event
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].fireTime != h[j].fireTime {
		return h[i].fireTime < h[j].fireTime
	}
	// Same fire time: insertion order breaks the tie, deterministically.
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)        { *h = append(*h, x.(*task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}

// Scheduler is a priority queue of future events keyed on virtual
// time, with insertion sequence as a deterministic tie-break.
type Scheduler struct {
	now   uint64
	seq   uint64
	tasks taskHeap
}

// New returns an empty Scheduler starting at virtual time 0.
func New() *Scheduler {
	return &Scheduler{}
}

// Add enqueues event to fire at now()+delay. delay must be
// non-negative; delay 0 fires after everything already queued for the
// current time, because of the insertion-sequence tie-break.
func (s *Scheduler) Add(delay uint64, event Event) {
	t := &task{fireTime: s.now + delay, seq: s.seq, event: event}
	s.seq++
	heap.Push(&s.tasks, t)
}

// Next dequeues the earliest event, advances now to its fire time,
// and invokes it. Calling Next on an empty scheduler is a programmer
// error (spec.md §4.1: operations are total on non-empty queues).
func (s *Scheduler) Next() {
	t := heap.Pop(&s.tasks).(*task)
	s.now = t.fireTime
	t.event.Fire()
}

// More reports whether any event remains queued.
func (s *Scheduler) More() bool {
	return len(s.tasks) > 0
}

// Now returns the current virtual time.
func (s *Scheduler) Now() uint64 {
	return s.now
}
