// Package mplp finds MAP assignments of discrete graphical models with
// MPLP, a dual-decomposition message-passing algorithm, plus cluster
// tightening and decoding heuristics.
//
// What is mplp?
//
//	A model is a set of discrete variables and log-potentials over small
//	variable subsets. The solver keeps one belief table per intersection
//	(variable subsets shared between regions) and per region, and runs
//	block-coordinate descent on the dual:
//		• Region updates: max-marginalize, average, subtract
//		• Decoding: per-variable argmax, scored against the model
//		• Tightening: pairwise intersections shared across regions
//		• Heuristics: batched and gap-ordered variable fixing, randomized
//		  restarts, decimation
//	The dual objective always upper-bounds the best assignment found, so
//	their gap certifies optimality when it closes.
//
// Packages:
//
//	potential/ dense log-space tables: expand, max-marginalize, arithmetic
//	region/    one region and its block update
//	model/     the in-memory model and its validation
//	solver/    belief arena, MPLP rounds, decoding heuristics, Solve
//	uai/       UAI model and evidence readers
//	sink/      result and progress sinks (.MPE writer, recorder, logs)
//	config/    YAML run configuration
//	cmd/mplp/  the command-line solver
//
// Quick start:
//
//	m, _ := uai.LoadModel("grid.uai")
//	s, _ := solver.New(m, solver.WithTimeLimit(30*time.Second))
//	res, _ := s.Solve(solver.DefaultPlan())
//	fmt.Println(res.Assignment, res.Score, res.Gap)
package mplp
