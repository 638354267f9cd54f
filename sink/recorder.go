package sink

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/mplp/solver"
)

var _ solver.ResultSink = (*Recorder)(nil)

// Entry is one recorded incumbent.
type Entry struct {
	Assignment []int
	Score      float64
	At         time.Time
}

// Recorder keeps every emitted incumbent in memory.
type Recorder struct {
	mu      sync.Mutex
	runID   uuid.UUID
	now     func() time.Time
	entries []Entry
}

// NewRecorder returns an empty recorder with a fresh run id.
func NewRecorder() *Recorder {
	return &Recorder{runID: uuid.New(), now: time.Now}
}

// Emit records a copy of assignment.
func (r *Recorder) Emit(assignment []int, score float64) error {
	if len(assignment) == 0 {
		return ErrEmptyAssignment
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Assignment: append([]int(nil), assignment...),
		Score:      score,
		At:         r.now(),
	})
	return nil
}

// Entries returns the recorded incumbents in emission order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Len returns the number of recorded incumbents.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Last returns the latest incumbent, which is also the best one.
func (r *Recorder) Last() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// RunID identifies the run this recorder belongs to.
func (r *Recorder) RunID() uuid.UUID { return r.runID }
