// Package oll implements the core-guided weighted partial MaxSAT search
// described in §4.4: stratified OLL over a Formula's soft clauses, calling
// into internal/backend at its one suspension point (the SAT backend) and
// into totalizer for the cardinality constraints cores of size > 1 produce.
//
// Solver owns no global state: everything it needs, the variable store, the
// backend, and the clause.Builder used to emit the relaxation and
// cardinality gates it allocates, is handed to it by its caller
// (wpms.Problem).
//
// Two constructors exist, NewWeighted and NewUnweighted: the unweighted path
// is kept for symmetry and testability even though wpms.Problem only ever
// drives the weighted one.
package oll
