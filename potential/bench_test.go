package potential_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/mplp/potential"
)

// BenchmarkMaxInto measures the joint sweep of a triplet onto its three singletons.
func BenchmarkMaxInto(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	tb, _ := potential.New([]int{8, 8, 8})
	tb.FillUniform(r, -1, 1)
	subsets := [][]int{{0}, {1}, {2}}
	outs := make([]*potential.Table, 3)
	for k := range outs {
		outs[k], _ = potential.New([]int{8})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := tb.MaxInto(subsets, outs); err != nil {
			b.Fatalf("MaxInto failed: %v", err)
		}
	}
}

// BenchmarkExpandAdd measures broadcasting a pair table into a triplet.
func BenchmarkExpandAdd(b *testing.B) {
	dst, _ := potential.New([]int{8, 8, 8})
	sub, _ := potential.New([]int{8, 8})
	sub.Fill(0.5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := sub.ExpandAdd(dst, []int{0, 2}); err != nil {
			b.Fatalf("ExpandAdd failed: %v", err)
		}
	}
}
