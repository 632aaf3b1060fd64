// Package totalizer implements the incremental at-most-k cardinality
// encoder §4.5 assumes as a black box: build(inputs, k), inc_update(new
// inputs, new k), outputs(), lits(), has_encoding(). oll grows a Totalizer's
// bound repeatedly over the lifetime of a search and occasionally feeds it
// more input literals, so the encoder must support both without rebuilding
// from scratch.
//
// The encoding used is Sinz's sequential-counter register network rather
// than the classical balanced-tree totalizer: a register s[i][j] is true
// iff at least j+1 of the first i+1 inputs are true, built by a simple OR/AND
// recurrence over the previous row. It satisfies the same outputs[i] ⇔
// "≥i+1 inputs true" contract §4.5 specifies, and both directions of
// incrementality it needs, more inputs (new rows) and a higher bound (new
// columns on existing rows), fall out of the same recurrence, which is not
// true of the tree-shaped totalizer without non-trivial restructuring.
//
// Arena addresses Totalizers by a dense EncId rather than a pointer; it is
// append-only for the lifetime of a search, matching §5's memory-ownership
// note that encoders live until search termination.
package totalizer
