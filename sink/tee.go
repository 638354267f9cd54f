package sink

import (
	"errors"

	"github.com/katalvlaran/mplp/solver"
)

// Tee fans every emission out to all sinks in order. All sinks are tried;
// their errors are joined.
type Tee []solver.ResultSink

var _ solver.ResultSink = Tee(nil)

// Emit forwards to every sink.
func (t Tee) Emit(assignment []int, score float64) error {
	var errs []error
	for _, s := range t {
		if err := s.Emit(assignment, score); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
