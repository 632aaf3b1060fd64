// Package backend adapts litstore.Lit-addressed clauses to the CDCL
// backend in github.com/crillab/wpms/solver: the external "SAT backend"
// §5 treats as a suspension point, and the realization of the
// lock-step variable invariant it describes.
//
// A Backend never allocates a variable on its own initiative: every
// variable it ever sees was already issued by the caller's litstore.Store,
// so the invariant holds by construction rather than by a runtime check.
// Clause accumulation is incremental; the underlying solver.Solver is
// rebuilt lazily, only when a solve is actually requested after new clauses
// or variables were added. Clauses are never appended to an already built
// solver.Solver; it is rebuilt from the full clause list instead.
package backend
