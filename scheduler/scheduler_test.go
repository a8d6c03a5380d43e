package scheduler

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordEvent struct {
	log  *[]string
	name string
}

func (e recordEvent) Fire() { *e.log = append(*e.log, e.name) }

func TestFiresInTimeOrder(t *testing.T) {
	s := New()
	var log []string
	s.Add(20, recordEvent{&log, "late"})
	s.Add(5, recordEvent{&log, "early"})
	s.Add(10, recordEvent{&log, "mid"})

	for s.More() {
		s.Next()
	}
	assert.Equal(t, []string{"early", "mid", "late"}, log)
}

func TestTiesBreakByInsertionOrder(t *testing.T) {
	s := New()
	var log []string
	s.Add(5, recordEvent{&log, "first"})
	s.Add(5, recordEvent{&log, "second"})
	s.Add(5, recordEvent{&log, "third"})

	for s.More() {
		s.Next()
	}
	assert.Equal(t, []string{"first", "second", "third"}, log)
}

func TestNowAdvancesOnlyWhenEventsFire(t *testing.T) {
	s := New()
	assert.Equal(t, uint64(0), s.Now())
	var log []string
	s.Add(100, recordEvent{&log, "x"})
	assert.Equal(t, uint64(0), s.Now(), "adding doesn't advance time")
	s.Next()
	assert.Equal(t, uint64(100), s.Now())
}

func TestZeroDelayFiresAfterAlreadyQueuedSameTimeEvents(t *testing.T) {
	s := New()
	var log []string
	s.Add(5, recordEvent{&log, "a"})
	s.Add(5, recordEvent{&log, "b"})
	// Fire "a" so now is 5, then add "c" with zero delay: it shares
	// "b"'s fire time and must still fire after it.
	s.Next()
	s.Add(0, recordEvent{&log, "c"})

	for s.More() {
		s.Next()
	}
	assert.Equal(t, []string{"a", "b", "c"}, log)
}

func TestHandlerCanEnqueueFurtherEvents(t *testing.T) {
	s := New()
	var log []string
	s.Add(1, chainEvent{s, &log, 0})

	for s.More() {
		s.Next()
	}
	assert.Equal(t, []string{"chain-0", "chain-1", "chain-2"}, log)
}

type chainEvent struct {
	s     *Scheduler
	log   *[]string
	depth int
}

func (e chainEvent) Fire() {
	*e.log = append(*e.log, "chain-"+strconv.Itoa(e.depth))
	if e.depth < 2 {
		e.s.Add(1, chainEvent{e.s, e.log, e.depth + 1})
	}
}
