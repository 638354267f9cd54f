package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/mplp/solver"
)

const (
	mpeHeader    = "MPE"
	mpeSeparator = "-BEGIN-"
	mpeExt       = ".MPE"
)

var _ solver.ResultSink = (*MPEWriter)(nil)

// MPEWriter appends incumbents in the UAI MPE text format:
//
//	MPE
//	1
//	3 0 1 1
//	-BEGIN-
//	1
//	3 1 1 1
//
// Each block is written and flushed in one piece.
type MPEWriter struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	begun  bool
	closed bool
	count  int
	runID  uuid.UUID
}

// NewMPEWriter writes the header to w and returns the writer.
func NewMPEWriter(w io.Writer) (*MPEWriter, error) {
	mw := &MPEWriter{w: bufio.NewWriter(w), runID: uuid.New()}
	if c, ok := w.(io.Closer); ok {
		mw.closer = c
	}
	if _, err := mw.w.WriteString(mpeHeader + "\n"); err != nil {
		return nil, fmt.Errorf("sink: header: %w", err)
	}
	if err := mw.w.Flush(); err != nil {
		return nil, fmt.Errorf("sink: header: %w", err)
	}
	return mw, nil
}

// CreateMPE truncates or creates path and returns a writer on it.
func CreateMPE(path string) (*MPEWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}
	mw, err := NewMPEWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return mw, nil
}

// ResultPath names the result file of modelPath inside dir: the model's
// base name with ".MPE" appended.
func ResultPath(dir, modelPath string) string {
	return filepath.Join(dir, filepath.Base(modelPath)+mpeExt)
}

// Emit appends one solution block. The score is not part of the format.
func (mw *MPEWriter) Emit(assignment []int, _ float64) error {
	if len(assignment) == 0 {
		return ErrEmptyAssignment
	}
	mw.mu.Lock()
	defer mw.mu.Unlock()
	if mw.closed {
		return ErrClosed
	}

	buf := make([]byte, 0, 16+4*len(assignment))
	if mw.begun {
		buf = append(buf, mpeSeparator...)
		buf = append(buf, '\n')
	}
	buf = append(buf, "1\n"...)
	buf = strconv.AppendInt(buf, int64(len(assignment)), 10)
	for _, s := range assignment {
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(s), 10)
	}
	buf = append(buf, '\n')

	if _, err := mw.w.Write(buf); err != nil {
		return fmt.Errorf("sink: write: %w", err)
	}
	if err := mw.w.Flush(); err != nil {
		return fmt.Errorf("sink: flush: %w", err)
	}
	mw.begun = true
	mw.count++
	return nil
}

// Count returns the number of blocks written.
func (mw *MPEWriter) Count() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.count
}

// RunID identifies the run this writer belongs to.
func (mw *MPEWriter) RunID() uuid.UUID { return mw.runID }

// Close flushes and closes the underlying writer when it is a Closer.
// Further emissions fail with ErrClosed.
func (mw *MPEWriter) Close() error {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	if mw.closed {
		return nil
	}
	mw.closed = true
	if err := mw.w.Flush(); err != nil {
		return fmt.Errorf("sink: flush: %w", err)
	}
	if mw.closer != nil {
		return mw.closer.Close()
	}
	return nil
}
