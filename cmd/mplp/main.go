// mplp solves MAP inference on a UAI graphical model with MPLP message
// passing, cluster tightening and decoding heuristics.
//
// Usage:
//
//	mplp [flags] model.uai [evidence.evid [seed [time-limit-seconds]]]
//
// Every strictly better assignment found is appended to <model>.MPE in
// the configured result directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"

	"github.com/katalvlaran/mplp/config"
	"github.com/katalvlaran/mplp/sink"
	"github.com/katalvlaran/mplp/solver"
	"github.com/katalvlaran/mplp/uai"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mplp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file (defaults apply when empty or absent)")
	initConfig := fs.Bool("init", false, "write the default config to -config and exit")
	evidence := fs.String("evidence", "", "evidence file")
	seed := fs.Int64("seed", 0, "random seed (overrides config when non-zero)")
	timeLimit := fs.Duration("time", 0, "time limit (overrides config when non-zero)")
	resultDir := fs.String("out", "", "result directory (overrides config)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (overrides config)")
	logFormat := fs.String("log-format", "", "auto, text or json (overrides config)")
	showVersion := fs.Bool("version", false, "show version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "mplp %s\n", version)
		return 0
	}

	if *initConfig {
		if *configPath == "" {
			fmt.Fprintln(stderr, "mplp: -init needs -config")
			return 2
		}
		if err := config.InitConfig(*configPath); err != nil {
			fmt.Fprintf(stderr, "mplp: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "config initialized at %s\n", *configPath)
		return 0
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "mplp: %v\n", err)
		return 1
	}

	// Positional layout of the classic command line.
	pos := fs.Args()
	if len(pos) < 1 {
		fmt.Fprintln(stderr, "usage: mplp [flags] model.uai [evidence [seed [seconds]]]")
		fs.PrintDefaults()
		return 2
	}
	modelPath := pos[0]
	if len(pos) > 1 {
		*evidence = pos[1]
	}
	if len(pos) > 2 {
		if *seed, err = strconv.ParseInt(pos[2], 10, 64); err != nil {
			fmt.Fprintf(stderr, "mplp: bad seed %q\n", pos[2])
			return 2
		}
	}
	if len(pos) > 3 {
		secs, err := strconv.ParseFloat(pos[3], 64)
		if err != nil || secs < 0 {
			fmt.Fprintf(stderr, "mplp: bad time limit %q\n", pos[3])
			return 2
		}
		*timeLimit = time.Duration(secs * float64(time.Second))
	}

	if *seed != 0 {
		cfg.Solver.Seed = *seed
	}
	if *timeLimit > 0 {
		cfg.Solver.TimeLimit = *timeLimit
	}
	if *resultDir != "" {
		cfg.Output.ResultDir = *resultDir
	}
	if *logLevel != "" {
		cfg.Output.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.Output.LogFormat = *logFormat
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "mplp: %v\n", err)
		return 2
	}

	logger := newLogger(cfg, stderr)
	if err := solve(cfg, modelPath, *evidence, logger); err != nil {
		logger.Error("run failed", "err", err)
		return 1
	}
	return 0
}

// newLogger picks text output for terminals and JSON otherwise, unless the
// format is set explicitly.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	lvl, _ := cfg.Level()
	hopts := &slog.HandlerOptions{Level: lvl}

	format := cfg.Output.LogFormat
	if format == config.FormatAuto {
		format = config.FormatJSON
		if isTerminalWriter(w) {
			format = config.FormatText
		}
	}
	if format == config.FormatText {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}

func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func solve(cfg *config.Config, modelPath, evidencePath string, logger *slog.Logger) (err error) {
	m, err := uai.LoadModel(modelPath, cfg.ReadOptions()...)
	if err != nil {
		return err
	}
	if m.Evidence, err = uai.LoadEvidence(evidencePath); err != nil {
		return err
	}

	out, err := sink.CreateMPE(sink.ResultPath(cfg.Output.ResultDir, modelPath))
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, out.Close()) }()
	rec := sink.NewRecorder()

	opts := append(cfg.SolverOptions(),
		solver.WithLogger(logger.With("run", out.RunID().String())),
		solver.WithResultSink(sink.Tee{out, rec}),
	)

	progress := sink.NewSlogProgress(logger, slog.LevelDebug)
	if cfg.Output.ProgressLog == "" {
		opts = append(opts, solver.WithProgressSink(progress))
	} else {
		f, ferr := os.Create(cfg.Output.ProgressLog)
		if ferr != nil {
			return fmt.Errorf("progress log: %w", ferr)
		}
		defer f.Close()
		pw := sink.NewProgressWriter(f)
		opts = append(opts, solver.WithProgressSink(progressTee{pw, progress}))
		defer func() { err = errors.Join(err, pw.Err()) }()
	}

	s, err := solver.New(m, opts...)
	if err != nil {
		return err
	}
	logger.Info("model loaded",
		"path", modelPath,
		"variables", s.NumVars(),
		"intersections", s.NumIntersections(),
		"regions", s.NumRegions(),
		"evidence", len(m.Evidence),
		"degenerate", s.Degenerate())

	res, err := s.Solve(cfg.Plan())
	logger.Info("done",
		"score", res.Score,
		"objective", res.Objective,
		"gap", res.Gap,
		"iterations", res.Iterations,
		"intersections", res.Intersections,
		"incumbents", rec.Len(),
		"elapsed", res.Elapsed.Round(time.Millisecond))
	return err
}

// progressTee forwards every report to each sink in order.
type progressTee []solver.ProgressSink

func (t progressTee) Progress(elapsed time.Duration, objective, best float64) {
	for _, p := range t {
		p.Progress(elapsed, objective, best)
	}
}
