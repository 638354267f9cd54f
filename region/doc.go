// Package region implements a single MPLP region: a cluster of variables
// with a principal intersection (holding the cluster's own reparameterized
// potential) and a list of shared intersections, each with an outgoing
// message table.
//
// Regions never own belief tables. The solver keeps one arena of
// aggregated beliefs indexed by intersection handle and passes it into
// UpdateMsgs; a region only remembers handles, the positions of each
// intersection's variables inside the region, and its own messages.
//
// UpdateMsgs is one block-coordinate-descent step on the MPLP dual. It
// leaves the total reparameterized potential Σ_c b_c(x_c) unchanged for
// every joint assignment x, and never increases Σ_c max b_c.
package region
