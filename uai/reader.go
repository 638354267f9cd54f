package uai

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/mplp/model"
)

// DefaultZeroLog replaces log(0) for zero-probability entries.
const DefaultZeroLog = -1e6

// Network types accepted on the first line.
const (
	Markov = "MARKOV"
	Bayes  = "BAYES"
)

// LogSuffix marks model files whose entries are already logarithms.
const LogSuffix = ".uai.lg"

type options struct {
	zeroLog   float64
	logValues bool
}

// Option configures ReadModel.
type Option func(*options)

// WithZeroLog sets the value used for zero probabilities. It panics on a
// NaN or positive floor.
func WithZeroLog(v float64) Option {
	if math.IsNaN(v) || v > 0 {
		panic("uai: zero floor must be a non-positive number")
	}
	return func(o *options) { o.zeroLog = v }
}

// WithLogValues reads table entries as logarithms, unchanged.
func WithLogValues() Option {
	return func(o *options) { o.logValues = true }
}

// tokens walks whitespace-separated words.
type tokens struct {
	sc  *bufio.Scanner
	pos int
}

func newTokens(r io.Reader) *tokens {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	return &tokens{sc: sc}
}

func (t *tokens) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", fmt.Errorf("uai: read: %w", err)
		}
		return "", fmt.Errorf("%w: after token %d", ErrTruncated, t.pos)
	}
	t.pos++
	return t.sc.Text(), nil
}

func (t *tokens) nextInt() (int, error) {
	w, err := t.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(w)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d %q", ErrSyntax, t.pos, w)
	}
	return n, nil
}

func (t *tokens) nextFloat() (float64, error) {
	w, err := t.next()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d %q", ErrSyntax, t.pos, w)
	}
	return f, nil
}

// maxPrealloc bounds slice capacity taken from counts in the file; longer
// lists grow as their tokens arrive.
const maxPrealloc = 1 << 12

// maxTable is the largest joint state space a function table may have.
const maxTable = 1 << 30

// ReadModel parses a MARKOV or BAYES model. The result is validated.
// Functions over zero variables are constant factors; each is folded into
// a uniform table over variable 0 so that scores are unchanged.
//
// Implementation:
//   - Stage 1: network type, variable count, domain sizes.
//   - Stage 2: function scopes.
//   - Stage 3: one table per function, converted to log space.
func ReadModel(r io.Reader, opts ...Option) (*model.Model, error) {
	o := options{zeroLog: DefaultZeroLog}
	for _, opt := range opts {
		opt(&o)
	}
	tk := newTokens(r)

	// Stage 1
	kind, err := tk.next()
	if err != nil {
		return nil, fmt.Errorf("%w: empty input", ErrHeader)
	}
	switch strings.ToUpper(kind) {
	case Markov, Bayes:
	default:
		return nil, fmt.Errorf("%w: %q", ErrHeader, kind)
	}
	n, err := tk.count("variables")
	if err != nil {
		return nil, err
	}
	m := &model.Model{Domains: make([]int, 0, min(n, maxPrealloc))}
	for v := 0; v < n; v++ {
		d, err := tk.nextInt()
		if err != nil {
			return nil, err
		}
		m.Domains = append(m.Domains, d)
	}

	// Stage 2
	nf, err := tk.count("functions")
	if err != nil {
		return nil, err
	}
	m.Scopes = make([][]int, 0, min(nf, maxPrealloc))
	var constant []bool
	for f := 0; f < nf; f++ {
		k, err := tk.count("scope size")
		if err != nil {
			return nil, err
		}
		scope := make([]int, 0, min(k, maxPrealloc))
		for i := 0; i < k; i++ {
			v, err := tk.nextInt()
			if err != nil {
				return nil, err
			}
			scope = append(scope, v)
		}
		if k == 0 {
			if constant == nil {
				constant = make([]bool, nf)
			}
			constant[f] = true
			scope = append(scope, 0)
		}
		m.Scopes = append(m.Scopes, scope)
	}
	// Scopes must be sane before their sizes can be computed.
	if err = m.Validate(); err != nil {
		return nil, fmt.Errorf("uai: %w", err)
	}

	// Stage 3
	m.Potentials = make([][]float64, 0, len(m.Scopes))
	for f, scope := range m.Scopes {
		isConst := constant != nil && constant[f]
		want := 1
		if !isConst {
			if want, err = tableSize(m.Domains, scope); err != nil {
				return nil, fmt.Errorf("function %d: %w", f, err)
			}
		}
		size, err := tk.nextInt()
		if err != nil {
			return nil, err
		}
		if size != want {
			return nil, fmt.Errorf("%w: function %d has %d entries, scope needs %d", ErrTableSize, f, size, want)
		}
		vals := make([]float64, 0, min(size, maxPrealloc))
		for i := 0; i < size; i++ {
			x, err := tk.nextFloat()
			if err != nil {
				return nil, err
			}
			y, err := o.convert(x)
			if err != nil {
				return nil, fmt.Errorf("function %d entry %d: %w", f, i, err)
			}
			vals = append(vals, y)
		}
		if isConst {
			c := vals[0]
			vals = make([]float64, m.Domains[0])
			for i := range vals {
				vals[i] = c
			}
		}
		m.Potentials = append(m.Potentials, vals)
	}
	return m, nil
}

// count reads a non-negative count; what names it in errors.
func (t *tokens) count(what string) (int, error) {
	n, err := t.nextInt()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d %s", ErrSyntax, n, what)
	}
	return n, nil
}

// tableSize is the joint state count of scope, rejecting sizes above
// maxTable.
func tableSize(domains, scope []int) (int, error) {
	size := 1
	for _, v := range scope {
		d := domains[v]
		if size > maxTable/d {
			return 0, fmt.Errorf("%w: joint state space exceeds %d", ErrTableSize, maxTable)
		}
		size *= d
	}
	return size, nil
}

func (o options) convert(x float64) (float64, error) {
	if o.logValues {
		return x, nil
	}
	switch {
	case x < 0:
		return 0, fmt.Errorf("%w: %g", ErrNegative, x)
	case x == 0:
		return o.zeroLog, nil
	default:
		return math.Log(x), nil
	}
}

// ReadEvidence parses an evidence file into variable -> state pairs.
// Both "count v s ..." and the older "1 count v s ..." layouts are
// accepted; an empty input means no evidence. States are checked later
// against the model.
func ReadEvidence(r io.Reader) (map[int]int, error) {
	var nums []int
	tk := newTokens(r)
	for tk.sc.Scan() {
		tk.pos++
		n, err := strconv.Atoi(tk.sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q", ErrSyntax, tk.pos, tk.sc.Text())
		}
		nums = append(nums, n)
	}
	if err := tk.sc.Err(); err != nil {
		return nil, fmt.Errorf("uai: read: %w", err)
	}

	ev := make(map[int]int)
	switch {
	case len(nums) == 0:
		return ev, nil
	case len(nums) == 1+2*nums[0]:
		nums = nums[1:]
	case nums[0] == 1 && len(nums) >= 2 && len(nums) == 2+2*nums[1]:
		nums = nums[2:]
	default:
		return nil, fmt.Errorf("%w: %d numbers", ErrEvidence, len(nums))
	}
	for i := 0; i+1 < len(nums); i += 2 {
		ev[nums[i]] = nums[i+1]
	}
	return ev, nil
}

// LoadModel reads a model file, switching to log values for files named
// with LogSuffix (case-insensitive).
func LoadModel(path string, opts ...Option) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("uai: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), LogSuffix) {
		opts = append(opts, WithLogValues())
	}
	m, err := ReadModel(bufio.NewReader(f), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadEvidence reads an evidence file. An empty path yields no evidence.
func LoadEvidence(path string) (map[int]int, error) {
	if path == "" {
		return map[int]int{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("uai: %w", err)
	}
	defer f.Close()

	ev, err := ReadEvidence(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ev, nil
}
