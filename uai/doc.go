// Package uai reads models and evidence in the UAI inference competition
// text formats.
//
// A model file is whitespace separated:
//
//	MARKOV            (or BAYES)
//	3                 number of variables
//	2 2 3             domain sizes
//	2                 number of functions
//	2 0 1             scope size, then variables (last varies fastest)
//	2 1 2
//	4                 table size, then the entries of function 0
//	 0.9 0.1 0.1 0.9
//	6
//	 0.5 0.5 0.2 0.3 0.3 0.2
//
// Entries are probabilities and are converted to log space; zeros become
// a large negative floor instead of -Inf. Files whose entries are already
// logarithms (".uai.lg") are read with WithLogValues. A function over zero
// variables is a constant factor; the reader folds it into a uniform table
// over variable 0, since model scopes are never empty.
//
// Counts in the file only bound what is read, never what is allocated up
// front, and joint state spaces above 2^30 are rejected with ErrTableSize.
//
// Evidence files list "count v0 s0 v1 s1 ..."; the older layout with a
// leading sample count of 1 is accepted too.
package uai
