package game

import (
	"sync"

	"git.lost.host/meutraa/ycore/internal/timing"
)

// Verdict is one state transition, kept for hit and miss flashes.
type Verdict struct {
	Lane   int
	Index  int
	State  ObjectState
	Missed bool
	At     timing.MapTimestamp
}

// Feedback is a bounded ring of the most recent verdicts. Old entries are
// overwritten once it is full. Lanes may push concurrently.
type Feedback struct {
	mu   sync.Mutex
	buf  []Verdict
	next  int
	full  bool
	total int
}

func NewFeedback(capacity int) *Feedback {
	if capacity <= 0 {
		panic("game: feedback capacity must be positive")
	}
	return &Feedback{buf: make([]Verdict, capacity)}
}

func (f *Feedback) Push(v Verdict) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.buf[f.next] = v
	f.total++
	f.next++
	if f.next == len(f.buf) {
		f.next = 0
		f.full = true
	}
}

func (f *Feedback) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.full {
		return len(f.buf)
	}
	return f.next
}

// Total counts every verdict ever pushed, including overwritten ones.
func (f *Feedback) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.total
}

// Recent returns a copy of the stored verdicts, oldest first.
func (f *Feedback) Recent() []Verdict {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.full {
		return append([]Verdict(nil), f.buf[:f.next]...)
	}
	out := make([]Verdict, 0, len(f.buf))
	out = append(out, f.buf[f.next:]...)
	return append(out, f.buf[:f.next]...)
}
