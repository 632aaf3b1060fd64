// Package wpms is the Formula (§4.3) and the §6 external interface: the one
// type a client actually constructs, Problem, bundling a LitStore, a
// ClauseAlgebra Builder, the accumulated soft clauses, and the SAT backend
// into a single object, rather than threading all four through every call
// a client makes.
//
// Problem owns variable bookkeeping, the backend, and soft-clause weights
// together so that AddSoft, AddHard and Solve can each be one call with no
// extra state for the caller to keep in sync.
package wpms
