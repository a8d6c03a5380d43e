package simlog

import (
	"fmt"
	"sync"
)

// Entry is a single trace line, tagged with which node emitted it.
type Entry struct {
	NodeID  string
	Message string
}

// Buffer is a fixed-capacity ring of recent trace entries, filled by
// direct Add calls. It is not wired to the logger: Tracef does not
// write into it, and nothing in the simulator creates one.
type Buffer struct {
	mu      sync.RWMutex
	entries []Entry
	maxSize int
}

// NewBuffer returns an empty ring buffer holding at most maxSize
// entries.
func NewBuffer(maxSize int) *Buffer {
	return &Buffer{entries: make([]Entry, 0, maxSize), maxSize: maxSize}
}

// Add appends an entry, evicting the oldest if the buffer is full.
func (b *Buffer) Add(nodeID, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, Entry{NodeID: nodeID, Message: message})
	if len(b.entries) > b.maxSize {
		b.entries = b.entries[len(b.entries)-b.maxSize:]
	}
}

// Recent returns up to count of the most recently added entries.
func (b *Buffer) Recent(count int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if count > len(b.entries) {
		count = len(b.entries)
	}
	start := len(b.entries) - count
	result := make([]Entry, count)
	copy(result, b.entries[start:])
	return result
}

// FormatEntry renders an entry the way a trace line looks on stderr.
func FormatEntry(e Entry) string {
	return fmt.Sprintf("[%s] %s", e.NodeID, e.Message)
}
