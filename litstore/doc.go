// Package litstore is the variable/literal registry shared by the rest of
// this module: ClauseAlgebra, Formula, the Totalizer encoder and the OLL
// search loop all allocate their propositional variables through a single
// Store so that variable numbering stays dense, contiguous and never reused.
//
// Var and Lit use the same bit-packing scheme as the solver package's own
// solver.Var and solver.Lit (variable index doubled, low bit holding the
// sign), so that the backend adapter in internal/backend can convert
// between the two with a bare type conversion rather than a translation
// table.
package litstore
