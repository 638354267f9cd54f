package sink_test

import (
	"os"

	"github.com/katalvlaran/mplp/sink"
)

// ExampleMPEWriter shows the block layout of two incumbents.
func ExampleMPEWriter() {
	w, err := sink.NewMPEWriter(os.Stdout)
	if err != nil {
		return
	}
	_ = w.Emit([]int{0, 1}, 0.5)
	_ = w.Emit([]int{1, 1}, 1.5)
	// Output:
	// MPE
	// 1
	// 2 0 1
	// -BEGIN-
	// 1
	// 2 1 1
}
