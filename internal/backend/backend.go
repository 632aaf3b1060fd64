package backend

import (
	"github.com/crillab/wpms/clause"
	"github.com/crillab/wpms/litstore"
	"github.com/crillab/wpms/solver"
)

// A Backend accumulates hard clauses over variables issued by a
// litstore.Store and answers SolveAssuming queries against them, rebuilding
// the underlying CDCL solver as needed.
type Backend struct {
	store *litstore.Store
	hard  []clause.Clause

	s             *solver.Solver
	nbVars        int32
	dirty         bool
	contradictory bool
}

// New returns a Backend that allocates its variables through store. store is
// shared with the caller: the Backend only ever reads its variable count, it
// never calls NewVar itself.
func New(store *litstore.Store) *Backend {
	return &Backend{store: store, dirty: true}
}

// AddClause accumulates c as a hard clause. The underlying solver is not
// rebuilt until the next SolveAssuming call.
func (b *Backend) AddClause(c clause.Clause) {
	b.hard = append(b.hard, c)
	b.dirty = true
}

// AddUnit is a convenience wrapper for AddClause(clause.NewClause(l)).
func (b *Backend) AddUnit(l litstore.Lit) {
	b.AddClause(clause.NewClause(l))
}

// rebuild constructs a fresh solver.Problem from the accumulated hard
// clauses, following solver.ParseSlice's own split: unit clauses go into
// Units (with Model seeded accordingly) rather than Clauses, since
// watchClause requires every watched clause to carry at least two literals.
// A conflicting pair of units, or an empty clause, makes the problem Unsat
// outright.
func (b *Backend) rebuild() {
	nbVars := int(b.store.NbVars())
	model := make(solver.Model, nbVars)
	var units []solver.Lit
	var clauses []*solver.Clause
	status := solver.Indet
loop:
	for _, c := range b.hard {
		lits := toSolverLits(c.Lits())
		switch len(lits) {
		case 0:
			status = solver.Unsat
			break loop
		case 1:
			lit := lits[0]
			v := lit.Var()
			if model[v] == 0 {
				if lit.IsPositive() {
					model[v] = 1
				} else {
					model[v] = -1
				}
				units = append(units, lit)
			} else if (model[v] > 0) != lit.IsPositive() {
				status = solver.Unsat
				break loop
			}
		default:
			clauses = append(clauses, solver.NewClause(lits))
		}
	}
	pb := &solver.Problem{
		NbVars:  nbVars,
		Clauses: clauses,
		Units:   units,
		Model:   model,
		Status:  status,
	}
	b.s = solver.New(pb)
	b.nbVars = int32(nbVars)
	b.dirty = false
	// Assume has no Unsat short-circuit of its own (the teacher's contract
	// expects callers to check Status right after New rather than call
	// Assume on a solver already known dead), so the backend has to track
	// this itself.
	b.contradictory = status == solver.Unsat
}

// stale reports whether the solver must be rebuilt before the next query:
// either new clauses were added, or the store grew past the variable count
// the current solver was built with.
func (b *Backend) stale() bool {
	return b.dirty || b.s == nil || b.nbVars != b.store.NbVars()
}

func toSolverLits(lits []litstore.Lit) []solver.Lit {
	out := make([]solver.Lit, len(lits))
	for i, l := range lits {
		out[i] = solver.Lit(l)
	}
	return out
}

// SolveAssuming solves the accumulated hard clauses under the given
// assumption literals. On SAT it returns the saved model, indexed by
// litstore.Var. On UNSAT it returns a core: a subset of assumptions that
// remains unsatisfiable on its own, shrunk by deletion (grounded on
// explain.MUSDeletion's toggle-and-resolve technique, ported to operate on
// the live assumption vector via Assume/Solve directly).
func (b *Backend) SolveAssuming(assumptions []litstore.Lit) (sat bool, model []bool, core []litstore.Lit) {
	if b.stale() {
		b.rebuild()
	}
	if b.contradictory {
		return false, nil, nil
	}
	sat, model = b.trySolve(assumptions)
	if sat {
		return true, model, nil
	}
	return false, nil, b.shrinkCore(assumptions)
}

func (b *Backend) trySolve(assumptions []litstore.Lit) (bool, []bool) {
	st := b.s.Assume(toSolverLits(assumptions))
	if st == solver.Indet {
		st = b.s.Solve()
	}
	if st != solver.Sat {
		return false, nil
	}
	return true, b.s.Model()
}

// shrinkCore assumes core is already known to be UNSAT as a whole, and
// deletes literals from it one at a time: a literal is dropped for good if
// the remaining set is still UNSAT without it, and kept if dropping it makes
// the remainder SAT.
func (b *Backend) shrinkCore(core []litstore.Lit) []litstore.Lit {
	kept := append([]litstore.Lit{}, core...)
	i := 0
	for i < len(kept) {
		trial := make([]litstore.Lit, 0, len(kept)-1)
		trial = append(trial, kept[:i]...)
		trial = append(trial, kept[i+1:]...)
		if sat, _ := b.trySolve(trial); sat {
			i++
			continue
		}
		kept = trial
	}
	return kept
}

// Value returns v's binding in model, a slice returned by SolveAssuming.
func Value(model []bool, v litstore.Var) bool {
	return model[v]
}
