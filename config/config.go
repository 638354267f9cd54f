// Package config loads the YAML run configuration of the mplp command and
// converts it into solver options and a run plan.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mplp/solver"
	"github.com/katalvlaran/mplp/uai"
)

// Config is the complete run configuration.
type Config struct {
	Solver   SolverConfig   `yaml:"solver"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
}

// SolverConfig mirrors solver.Options.
type SolverConfig struct {
	Seed              int64         `yaml:"seed"`
	TimeLimit         time.Duration `yaml:"time_limit"` // 0 = none
	MinRounds         int           `yaml:"min_rounds"`
	DecodeRounds      int           `yaml:"decode_rounds"`
	BatchDivisor      float64       `yaml:"batch_divisor"`
	GapThreshold      float64       `yaml:"gap_threshold"`
	RoundBudget       int           `yaml:"round_budget"`
	RestartTrials     int           `yaml:"restart_trials"`
	RestartScale      float64       `yaml:"restart_scale"`
	PerturbDegenerate bool          `yaml:"perturb_degenerate"`
	DegenerateScale   float64       `yaml:"degenerate_scale"`
	GlobalDecodingAt  float64       `yaml:"global_decoding_at"`
	MinEmitTime       time.Duration `yaml:"min_emit_time"`
}

// ScheduleConfig mirrors solver.Plan.
type ScheduleConfig struct {
	Iterations       int     `yaml:"iterations"`
	ObjDelThreshold  float64 `yaml:"obj_del_threshold"`
	IntGapThreshold  float64 `yaml:"int_gap_threshold"`
	Tighten          bool    `yaml:"tighten"`
	Restarts         bool    `yaml:"restarts"`
	DecimationRounds int     `yaml:"decimation_rounds"`
}

// InputConfig controls model loading.
type InputConfig struct {
	ZeroLog float64 `yaml:"zero_log"` // log value substituted for zero probabilities
}

// OutputConfig controls where results and diagnostics go.
type OutputConfig struct {
	ResultDir   string `yaml:"result_dir"`   // directory of the .MPE file
	ProgressLog string `yaml:"progress_log"` // per-round "seconds objective best" lines; empty = off
	LogLevel    string `yaml:"log_level"`    // debug, info, warn, error
	LogFormat   string `yaml:"log_format"`   // auto, text, json
}

// Log formats.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// Default returns the configuration of the reference tool.
func Default() *Config {
	o := solver.DefaultOptions()
	p := solver.DefaultPlan()
	return &Config{
		Solver: SolverConfig{
			TimeLimit:        0,
			MinRounds:        o.MinRounds,
			DecodeRounds:     o.DecodeRounds,
			BatchDivisor:     o.BatchDivisor,
			GapThreshold:     o.GapThreshold,
			RoundBudget:      o.RoundBudget,
			RestartTrials:    o.RestartTrials,
			RestartScale:     o.RestartScale,
			DegenerateScale:  o.DegenerateScale,
			GlobalDecodingAt: o.GlobalDecodingAt,
			MinEmitTime:      o.MinEmitTime,
		},
		Schedule: ScheduleConfig{
			Iterations:       p.Iterations,
			ObjDelThreshold:  p.ObjDelThreshold,
			IntGapThreshold:  p.IntGapThreshold,
			Tighten:          p.Tighten,
			Restarts:         p.Restarts,
			DecimationRounds: p.DecimationRounds,
		},
		Input: InputConfig{ZeroLog: uai.DefaultZeroLog},
		Output: OutputConfig{
			ResultDir: ".",
			LogLevel:  "info",
			LogFormat: FormatAuto,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault returns the defaults when path is empty or absent.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save writes c to path, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// InitConfig writes the defaults to path unless a file already exists.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return Default().Save(path)
}

// Validate reports every out-of-range value at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field string, v any) {
		errs = append(errs, fmt.Errorf("%w: %s = %v", ErrInvalid, field, v))
	}
	nonNeg := func(field string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			bad(field, v)
		}
	}

	s := c.Solver
	if s.TimeLimit < 0 {
		bad("solver.time_limit", s.TimeLimit)
	}
	if s.MinEmitTime < 0 {
		bad("solver.min_emit_time", s.MinEmitTime)
	}
	for _, f := range []struct {
		name string
		n    int
	}{
		{"solver.min_rounds", s.MinRounds},
		{"solver.decode_rounds", s.DecodeRounds},
		{"solver.round_budget", s.RoundBudget},
		{"solver.restart_trials", s.RestartTrials},
	} {
		if f.n < 0 {
			bad(f.name, f.n)
		}
	}
	if math.IsNaN(s.BatchDivisor) || math.IsInf(s.BatchDivisor, 0) || s.BatchDivisor < 1 {
		bad("solver.batch_divisor", s.BatchDivisor)
	}
	nonNeg("solver.gap_threshold", s.GapThreshold)
	nonNeg("solver.restart_scale", s.RestartScale)
	nonNeg("solver.degenerate_scale", s.DegenerateScale)
	if math.IsNaN(s.GlobalDecodingAt) || s.GlobalDecodingAt < 0 || s.GlobalDecodingAt > 1 {
		bad("solver.global_decoding_at", s.GlobalDecodingAt)
	}

	if c.Schedule.Iterations < 1 {
		bad("schedule.iterations", c.Schedule.Iterations)
	}
	if c.Schedule.DecimationRounds < 0 {
		bad("schedule.decimation_rounds", c.Schedule.DecimationRounds)
	}

	if math.IsNaN(c.Input.ZeroLog) || c.Input.ZeroLog > 0 {
		bad("input.zero_log", c.Input.ZeroLog)
	}

	if _, err := c.Level(); err != nil {
		bad("output.log_level", c.Output.LogLevel)
	}
	switch c.Output.LogFormat {
	case FormatAuto, FormatText, FormatJSON:
	default:
		bad("output.log_format", c.Output.LogFormat)
	}

	return errors.Join(errs...)
}

// Level parses Output.LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Output.LogLevel)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

// SolverOptions converts the solver section. c must be valid.
func (c *Config) SolverOptions() []solver.Option {
	s := c.Solver
	opts := []solver.Option{
		solver.WithSeed(s.Seed),
		solver.WithTimeLimit(s.TimeLimit),
		solver.WithMinRounds(s.MinRounds),
		solver.WithDecodeRounds(s.DecodeRounds),
		solver.WithBatchDivisor(s.BatchDivisor),
		solver.WithGapThreshold(s.GapThreshold),
		solver.WithRoundBudget(s.RoundBudget),
		solver.WithRestarts(s.RestartTrials, s.RestartScale),
		solver.WithGlobalDecodingAt(s.GlobalDecodingAt),
		solver.WithMinEmitTime(s.MinEmitTime),
	}
	if s.PerturbDegenerate {
		opts = append(opts, solver.WithDegeneratePerturbation(s.DegenerateScale))
	}
	return opts
}

// Plan converts the schedule section.
func (c *Config) Plan() solver.Plan {
	return solver.Plan{
		Iterations:       c.Schedule.Iterations,
		ObjDelThreshold:  c.Schedule.ObjDelThreshold,
		IntGapThreshold:  c.Schedule.IntGapThreshold,
		Tighten:          c.Schedule.Tighten,
		Restarts:         c.Schedule.Restarts,
		DecimationRounds: c.Schedule.DecimationRounds,
	}
}

// ReadOptions converts the input section.
func (c *Config) ReadOptions() []uai.Option {
	return []uai.Option{uai.WithZeroLog(c.Input.ZeroLog)}
}
