// Package solver computes approximate MAP assignments of discrete
// graphical models with MPLP, block-coordinate descent on the dual of the
// local-consistency LP relaxation.
//
// The model's scopes become regions; each region shares the singleton
// intersection of every member variable. Every MPLP round updates all
// regions once (region.UpdateMsgs), which never increases the dual
// objective
//
//	Objective = Σ_h max_x b_h(x)
//
// and keeps Σ_h b_h(x_h) equal to the model's log-potential for every full
// assignment x. Reading off the singleton argmaxes gives a primal
// assignment; the best one found so far (the incumbent) is kept with its
// value, and Objective - incumbent bounds the distance to the MAP value.
//
// What it offers:
//   - New(model, ...Option): build the region graph, clamp evidence
//   - RunMPLP: rounds until convergence, integrality or the deadline
//   - AddAllEdgeIntersections: tighten every region with its pairwise
//     intersections (FindIntersection, AddIntersection and AddRegion allow
//     hand-made tightening)
//   - RunGlobalDecoding / RunGlobalDecoding2 / RunRestarts: provisional
//     fix-and-reconverge heuristics that only ever improve the incumbent
//   - RunDecimation: permanently fix the most confident variables
//   - Solve(plan): the complete schedule, returning a Result
//
// Incumbents can be streamed through a ResultSink and per-round progress
// through a ProgressSink. Diagnostics go to an optional *slog.Logger.
//
// Determinism:
//
//	With a fixed seed and no time limit, every run is identical. All
//	randomness (perturbations, tie breaks) flows from one seeded source.
//
// A Solver is single-threaded and not safe for concurrent use.
package solver
