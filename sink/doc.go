// Package sink provides destinations for solver output: incumbent
// assignments (solver.ResultSink) and per-round progress
// (solver.ProgressSink).
//
//   - MPEWriter appends incumbents to a file in the UAI MPE format, one
//     flushed block per incumbent, so a killed run leaves only complete
//     solutions behind.
//   - Recorder keeps incumbents in memory.
//   - ProgressWriter writes "seconds objective best" lines.
//   - SlogProgress forwards progress to a *slog.Logger.
//
// Every writer carries a run id so that outputs of one run can be
// correlated across files and logs.
package sink
