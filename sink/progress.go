package sink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/mplp/solver"
)

var (
	_ solver.ProgressSink = (*ProgressWriter)(nil)
	_ solver.ProgressSink = (*SlogProgress)(nil)
)

// ProgressWriter writes one "seconds objective best" line per round,
// formatted "%.2f %.4f %.4f".
type ProgressWriter struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

// NewProgressWriter wraps w.
func NewProgressWriter(w io.Writer) *ProgressWriter {
	return &ProgressWriter{w: w}
}

// Progress writes one line. The first write error is kept and later lines
// are dropped.
func (p *ProgressWriter) Progress(elapsed time.Duration, objective, best float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.w, "%.2f %.4f %.4f\n", elapsed.Seconds(), objective, best); err != nil {
		p.err = fmt.Errorf("sink: progress: %w", err)
	}
}

// Err returns the first write error.
func (p *ProgressWriter) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// SlogProgress logs every round through a *slog.Logger.
type SlogProgress struct {
	log   *slog.Logger
	level slog.Level
	runID uuid.UUID
}

// NewSlogProgress logs at level with a fresh run id attached.
func NewSlogProgress(l *slog.Logger, level slog.Level) *SlogProgress {
	return &SlogProgress{log: l, level: level, runID: uuid.New()}
}

// Progress logs one round.
func (p *SlogProgress) Progress(elapsed time.Duration, objective, best float64) {
	p.log.Log(context.Background(), p.level, "progress",
		"run", p.runID.String(),
		"elapsed", elapsed,
		"objective", objective,
		"best", best,
		"gap", objective-best)
}

// RunID identifies the run.
func (p *SlogProgress) RunID() uuid.UUID { return p.runID }
