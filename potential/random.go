package potential

import "math/rand"

// FillUniform overwrites t with values drawn uniformly from [lo, hi) using
// r. It is meant for diagnostics and perturbation, never for correctness.
func (t *Table) FillUniform(r *rand.Rand, lo, hi float64) *Table {
	span := hi - lo
	for i := range t.data {
		t.data[i] = lo + span*r.Float64()
	}

	return t
}

// Perturb adds scale·U[0,1) noise to every entry.
func (t *Table) Perturb(r *rand.Rand, scale float64) *Table {
	for i := range t.data {
		t.data[i] += scale * r.Float64()
	}

	return t
}
