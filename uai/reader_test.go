package uai_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/mplp/model"
	"github.com/katalvlaran/mplp/uai"
	"github.com/stretchr/testify/require"
)

const chain = `MARKOV
3
2 2 3
3
1 0
2 0 1
2 1 2

2
 0.25 0.75
4
 0.9 0.1
 0.1 0.9
6
 0.5 0.5 0.0
 0.2 0.3 1.0
`

// TestReadModelMarkov converts every entry to log space.
func TestReadModelMarkov(t *testing.T) {
	m, err := uai.ReadModel(strings.NewReader(chain))
	require.NoError(t, err)

	require.Equal(t, []int{2, 2, 3}, m.Domains)
	require.Equal(t, [][]int{{0}, {0, 1}, {1, 2}}, m.Scopes)
	require.Len(t, m.Potentials, 3)
	require.InDelta(t, math.Log(0.75), m.Potentials[0][1], 1e-12)
	require.InDelta(t, math.Log(0.9), m.Potentials[1][3], 1e-12)
	require.Equal(t, uai.DefaultZeroLog, m.Potentials[2][2])
	require.Zero(t, m.Potentials[2][5])
	require.NoError(t, m.Validate())
}

// TestReadModelOptions covers BAYES headers, log values and a custom floor.
func TestReadModelOptions(t *testing.T) {
	in := strings.Replace(chain, "MARKOV", "bayes", 1)

	m, err := uai.ReadModel(strings.NewReader(in), uai.WithZeroLog(-50))
	require.NoError(t, err)
	require.Equal(t, -50.0, m.Potentials[2][2])

	m, err = uai.ReadModel(strings.NewReader(in), uai.WithLogValues())
	require.NoError(t, err)
	require.Equal(t, []float64{0.25, 0.75}, m.Potentials[0])

	require.Panics(t, func() { uai.WithZeroLog(1) })
}

// TestReadModelErrors maps malformed inputs to sentinels.
func TestReadModelErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", uai.ErrHeader},
		{"header", "FACTOR 1 2 0", uai.ErrHeader},
		{"truncated", "MARKOV 2 2", uai.ErrTruncated},
		{"syntax", "MARKOV 1 x", uai.ErrSyntax},
		{"scope", "MARKOV 1 2 1 1 4 2 0 1", model.ErrBadScope},
		{"domain", "MARKOV 1 0 0", model.ErrBadDomain},
		{"size", "MARKOV 1 2 1 1 0 3 0.1 0.2 0.7", uai.ErrTableSize},
		{"negative", "MARKOV 1 2 1 1 0 2 -0.1 0.2", uai.ErrNegative},
		{"short table", "MARKOV 1 2 1 1 0 2 0.5", uai.ErrTruncated},
		{"negative count", "MARKOV -1", uai.ErrSyntax},
		{"count overflow", "MARKOV 99999999999999999999", uai.ErrSyntax},
		{"oversized variable count", "MARKOV 99999999999 2", uai.ErrTruncated},
		{"oversized scope", "MARKOV 1 2 1 99999999999 0", uai.ErrTruncated},
		{"oversized table", "MARKOV 1 2 1 1 0 99999999999 0.5", uai.ErrTableSize},
		{"state space", "MARKOV 3 2000 2000 2000 1 3 0 1 2 8", uai.ErrTableSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uai.ReadModel(strings.NewReader(tc.in))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestReadModelConstantFactor folds a zero-variable function into a
// uniform table over variable 0.
func TestReadModelConstantFactor(t *testing.T) {
	in := "MARKOV 2 2 3 2 0 2 0 1 1 0.5 6 1 2 3 4 5 6"
	m, err := uai.ReadModel(strings.NewReader(in))
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	require.Equal(t, [][]int{{0}, {0, 1}}, m.Scopes)
	require.Len(t, m.Potentials[0], 2)
	for _, x := range m.Potentials[0] {
		require.InDelta(t, math.Log(0.5), x, 1e-12)
	}
	require.InDelta(t, math.Log(6), m.Potentials[1][5], 1e-12)

	_, err = uai.ReadModel(strings.NewReader("MARKOV 1 2 1 0 2 0.5 0.5"))
	require.ErrorIs(t, err, uai.ErrTableSize)
}

// TestReadEvidence accepts both layouts.
func TestReadEvidence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want map[int]int
	}{
		{"empty", "", map[int]int{}},
		{"none", "0\n", map[int]int{}},
		{"current", "2 0 1 2 2\n", map[int]int{0: 1, 2: 2}},
		{"legacy", "1\n2 0 1 2 2\n", map[int]int{0: 1, 2: 2}},
		{"legacy none", "1 0", map[int]int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := uai.ReadEvidence(strings.NewReader(tc.in))
			require.NoError(t, err)
			require.Equal(t, tc.want, ev)
		})
	}

	_, err := uai.ReadEvidence(strings.NewReader("3 0 1"))
	require.ErrorIs(t, err, uai.ErrEvidence)
	_, err = uai.ReadEvidence(strings.NewReader("1 a"))
	require.ErrorIs(t, err, uai.ErrSyntax)
}

// TestLoadFiles reads from disk and honours the log suffix.
func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "chain.uai")
	logged := filepath.Join(dir, "chain.UAI.LG")
	evid := filepath.Join(dir, "chain.uai.evid")
	require.NoError(t, os.WriteFile(plain, []byte(chain), 0o644))
	require.NoError(t, os.WriteFile(logged, []byte(chain), 0o644))
	require.NoError(t, os.WriteFile(evid, []byte("1 2 1"), 0o644))

	m, err := uai.LoadModel(plain)
	require.NoError(t, err)
	require.InDelta(t, math.Log(0.25), m.Potentials[0][0], 1e-12)

	m, err = uai.LoadModel(logged)
	require.NoError(t, err)
	require.Equal(t, 0.25, m.Potentials[0][0])

	ev, err := uai.LoadEvidence(evid)
	require.NoError(t, err)
	require.Equal(t, map[int]int{2: 1}, ev)

	ev, err = uai.LoadEvidence("")
	require.NoError(t, err)
	require.Empty(t, ev)

	_, err = uai.LoadModel(filepath.Join(dir, "missing.uai"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
