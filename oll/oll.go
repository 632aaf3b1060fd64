package oll

import (
	"fmt"

	"github.com/crillab/wpms/clause"
	"github.com/crillab/wpms/internal/backend"
	"github.com/crillab/wpms/litstore"
	"github.com/crillab/wpms/totalizer"
)

// A SoftClause is a clause whose violation is penalized by its weight. body
// already has a relaxation literal appended to it by its owner (wpms), so
// it is always satisfiable on its own; AssumptionVar is the variable whose
// negated literal is assumed while the clause is still considered, and
// whose positive literal becomes true once the clause is allowed to be
// violated.
type SoftClause struct {
	Weight         int
	Body           clause.Clause
	AssumptionVar  litstore.Var
	RelaxationVars []litstore.Var
	active         bool
}

// NewSoftClause returns a SoftClause of the given weight and body, relaxed
// through relax.
func NewSoftClause(weight int, body clause.Clause, relax litstore.Var) *SoftClause {
	return &SoftClause{Weight: weight, Body: body, AssumptionVar: relax, RelaxationVars: []litstore.Var{relax}}
}

// Active reports whether this clause has appeared in a core and been
// relaxed, i.e. is no longer asserted via assumption.
func (s *SoftClause) Active() bool {
	return s.active
}

// Binding is a BoundMapping entry: the encoder and bound a cardinality
// assumption literal enforces, and the weight it was introduced with.
type Binding struct {
	Enc    totalizer.EncId
	K      int
	Weight int
}

// Options configures a Solver.
type Options struct {
	// Verbose makes the Solver print progress lines in the "o %d" /
	// "c LB : %d" convention.
	Verbose bool
}

// Outcome is the result of a completed search: the optimal cost found and
// the model achieving it.
type Outcome struct {
	Cost  int
	Model []bool
}

// Solver runs the core-guided search over a fixed set of soft clauses,
// reading and writing hard clauses through b and solving through be.
type Solver struct {
	store *litstore.Store
	be    *backend.Backend
	b     clause.Builder
	arena *totalizer.Arena

	softs    []*SoftClause
	weighted bool
	opts     Options

	coreMapping  map[litstore.Lit]int // assumption literal -> index into softs
	boundMapping map[litstore.Lit]Binding

	minWeight int
	lb, ub    int
	hasUB     bool
	best      []bool

	nbSatisfiable int
	assumptions   []litstore.Lit
	done          bool
}

// NewWeighted returns a Solver running the weighted OLL path (§4.4).
func NewWeighted(store *litstore.Store, be *backend.Backend, b clause.Builder, softs []*SoftClause, opts Options) *Solver {
	return newSolver(store, be, b, softs, true, opts)
}

// NewUnweighted returns a Solver running the unweighted path: no
// stratification (min_weight stays 1). Core processing, relaxation and
// hardening are the same as on the weighted path, so min_core is 1 and no
// splitting happens only when every soft weight is 1. Kept for symmetry;
// wpms.Problem only ever drives NewWeighted.
func NewUnweighted(store *litstore.Store, be *backend.Backend, b clause.Builder, softs []*SoftClause, opts Options) *Solver {
	return newSolver(store, be, b, softs, false, opts)
}

func newSolver(store *litstore.Store, be *backend.Backend, b clause.Builder, softs []*SoftClause, weighted bool, opts Options) *Solver {
	s := &Solver{
		store:        store,
		be:           be,
		b:            b,
		arena:        totalizer.NewArena(b),
		softs:        softs,
		weighted:     weighted,
		opts:         opts,
		coreMapping:  make(map[litstore.Lit]int, len(softs)),
		boundMapping: make(map[litstore.Lit]Binding),
	}
	for i, sc := range softs {
		s.coreMapping[sc.AssumptionVar.Lit().Negation()] = i
	}
	if weighted {
		s.minWeight = s.maxSoftWeight()
	} else {
		s.minWeight = 1
	}
	return s
}

func (s *Solver) maxSoftWeight() int {
	max := 0
	for _, sc := range s.softs {
		if sc.Weight > max {
			max = sc.Weight
		}
	}
	return max
}

// Solve runs the search to completion. The very first solve always runs
// under an empty assumption vector, establishing a baseline model and ub
// before any soft clause is put under assumption; stratified assumptions
// only start being built after that first SAT. An UNSAT on that first solve
// means the hard clauses alone are contradictory and is reported as an
// *InvariantError.
func (s *Solver) Solve() (Outcome, error) {
	if len(s.softs) == 0 {
		s.minWeight = 0
	}
	s.assumptions = s.assumptions[:0]
	for {
		sat, model, core := s.be.SolveAssuming(s.assumptions)
		if sat {
			if err := s.onSat(model); err != nil {
				return Outcome{}, err
			}
			if s.lb == s.ub {
				return s.outcome(), nil
			}
			if s.done {
				return s.outcome(), nil
			}
			s.rebuildAssumptions()
			continue
		}
		if s.nbSatisfiable == 0 {
			return Outcome{}, &InvariantError{Reason: "backend reported UNSAT before any SAT (all-hard contradiction)"}
		}
		if err := s.onUnsat(core); err != nil {
			return Outcome{}, err
		}
		if s.lb == s.ub {
			return s.outcome(), nil
		}
		s.rebuildAssumptions()
	}
}

func (s *Solver) outcome() Outcome {
	return Outcome{Cost: s.ub, Model: s.best}
}

func (s *Solver) onSat(model []bool) error {
	s.nbSatisfiable++
	cost := s.modelCost(model)
	if !s.hasUB || cost < s.ub {
		s.ub = cost
		s.hasUB = true
		s.best = model
		if s.opts.Verbose {
			fmt.Printf("o %d\n", cost)
		}
	}
	if !s.weighted {
		return nil
	}
	if s.nbSatisfiable == 1 {
		s.onFirstSat()
		return nil
	}
	return s.onSubsequentSat()
}

// modelCost computes the true cost of model. An active soft clause's weight
// is NOT counted from the model directly: onUnsat already folded exactly one
// minCore into lb per core, regardless of how many soft clauses or
// cardinality bindings that core touched, and harden's cardinality bound
// structurally prevents the current model from realizing more violation
// among the active group than lb already accounts for. So lb is the exact
// cost contributed by every soft clause that has gone active so far, and
// starting from it rather than re-summing active weights avoids
// overcounting when one core activates several equal-weight soft clauses at
// once. The only clauses still worth asking the model about are the ones
// not yet folded into lb: inactive soft clauses, whose body clause forces
// their assumption variable true whenever the original literal is actually
// violated (the assumption variable is otherwise free, but a spurious true
// there only overcounts, never undercounts).
func (s *Solver) modelCost(model []bool) int {
	cost := s.lb
	for _, sc := range s.softs {
		if !sc.active && model[sc.AssumptionVar] {
			cost += sc.Weight
		}
	}
	return cost
}

// nextWeightBelow returns the largest weight strictly less than w among
// currently inactive soft clauses or live cardinality bindings, or 0 if
// none remain.
func (s *Solver) nextWeightBelow(w int) int {
	best := 0
	for _, sc := range s.softs {
		if !sc.active && sc.Weight < w && sc.Weight > best {
			best = sc.Weight
		}
	}
	for _, b := range s.boundMapping {
		if b.Weight < w && b.Weight > best {
			best = b.Weight
		}
	}
	return best
}

// onFirstSat unconditionally lowers min_weight after the first SAT: that
// solve ran under no assumptions at all and only established a baseline
// model, so every soft clause still needs a stratified assumption built for
// it (by Solve's rebuildAssumptions, once this returns) before the next
// solve. min_weight may drop to 0, meaning every remaining soft clause is
// now included regardless of weight.
func (s *Solver) onFirstSat() {
	s.minWeight = s.nextWeightBelow(s.minWeight)
}

// onSubsequentSat only recomputes min_weight if something was left
// unconsidered at the current threshold, for every SAT after the first. If
// nothing was left unconsidered, the search is over: lb must already equal
// ub, and onSubsequentSat sets done itself rather than leave Solve's lb==ub
// check as the only thing standing between termination and an infinite
// re-solve of the same assumption vector.
func (s *Solver) onSubsequentSat() error {
	notConsidered := 0
	for _, sc := range s.softs {
		if !sc.active && sc.Weight < s.minWeight {
			notConsidered++
		}
	}
	for _, b := range s.boundMapping {
		if b.Weight < s.minWeight {
			notConsidered++
		}
	}
	if notConsidered == 0 {
		if s.lb != s.ub {
			return &InvariantError{Reason: "nothing left unconsidered at current min_weight but lb != ub"}
		}
		s.done = true
		return nil
	}
	next := s.nextWeightBelow(s.minWeight)
	if next == 0 {
		s.done = true
		return nil
	}
	s.minWeight = next
	return nil
}

func (s *Solver) rebuildAssumptions() {
	s.assumptions = s.assumptions[:0]
	for _, sc := range s.softs {
		if !sc.active && sc.Weight >= s.minWeight {
			s.assumptions = append(s.assumptions, sc.AssumptionVar.Lit().Negation())
		}
	}
	for p, b := range s.boundMapping {
		if b.Weight >= s.minWeight {
			s.assumptions = append(s.assumptions, p)
		}
	}
	if s.opts.Verbose {
		fmt.Printf("c LB : %d\n", s.lb)
	}
}

func (s *Solver) minCoreWeight(core []litstore.Lit) (int, error) {
	min := -1
	for _, p := range core {
		var w int
		if idx, ok := s.coreMapping[p]; ok {
			w = s.softs[idx].Weight
		} else if b, ok := s.boundMapping[p]; ok {
			w = b.Weight
		} else {
			continue
		}
		if min == -1 || w < min {
			min = w
		}
	}
	if min == -1 {
		return 0, &InvariantError{Reason: "conflict core contained no recognized assumption literal"}
	}
	return min, nil
}

// onUnsat implements the four steps of the UNSAT core-processing rule: bump
// lb, split or harden each conflicting soft/cardinality assumption, build
// the harden-step cardinality constraint over what was relaxed, and let the
// caller rebuild the assumption vector.
func (s *Solver) onUnsat(core []litstore.Lit) error {
	minCore, err := s.minCoreWeight(core)
	if err != nil {
		return err
	}
	s.lb += minCore
	if s.hasUB && s.lb > s.ub {
		return &InvariantError{Reason: "lb exceeded ub"}
	}
	if s.lb == s.ub {
		return nil
	}

	var softRelax, cardRelax []litstore.Lit
	for _, p := range core {
		if idx, ok := s.coreMapping[p]; ok {
			relaxed, err := s.relaxSoft(idx, minCore)
			if err != nil {
				return err
			}
			softRelax = append(softRelax, relaxed)
			continue
		}
		if b, ok := s.boundMapping[p]; ok {
			relaxed := s.relaxCardinality(p, b, minCore)
			cardRelax = append(cardRelax, relaxed)
			continue
		}
		return &InvariantError{Reason: "conflict literal not found in CoreMapping or BoundMapping"}
	}
	s.harden(softRelax, cardRelax, minCore)
	return nil
}

// relaxSoft implements step 2's soft-clause case: split the clause if its
// weight exceeds min_core, otherwise mark it active outright. It returns
// the positive relaxation literal to fold into the harden step.
func (s *Solver) relaxSoft(idx, minCore int) (litstore.Lit, error) {
	sc := s.softs[idx]
	if sc.Weight < minCore {
		return 0, &InvariantError{Reason: "weight underflow on split: soft clause weight below min_core"}
	}
	if sc.Weight == minCore {
		sc.active = true
		return sc.AssumptionVar.Lit(), nil
	}
	sc.Weight -= minCore
	l := s.store.NewVar()
	lits := append(append([]litstore.Lit{}, sc.Body.Lits()...), l.Lit())
	newBody := clause.NewClause(lits...)
	s.b.AddHard(newBody)
	ns := NewSoftClause(minCore, newBody, l)
	ns.active = true
	newIdx := len(s.softs)
	s.softs = append(s.softs, ns)
	s.coreMapping[l.Lit().Negation()] = newIdx
	return l.Lit(), nil
}

// relaxCardinality implements step 2's cardinality case for assumption
// literal p with binding b, returning the positive relaxation literal to
// fold into the harden step.
func (s *Solver) relaxCardinality(p litstore.Lit, b Binding, minCore int) litstore.Lit {
	if b.Weight == minCore {
		delete(s.boundMapping, p)
		enc := s.arena.Get(b.Enc)
		enc.Tighten(b.K + 2)
		if b.K+1 < len(enc.Outputs()) {
			next := enc.Outputs()[b.K+1].Negation()
			s.boundMapping[next] = Binding{Enc: b.Enc, K: b.K + 1, Weight: minCore}
		}
		return p.Negation()
	}
	// Weight-greater: duplicate the cardinality constraint over the same
	// inputs instead of tightening the original, whose remaining weight is
	// still needed by assumptions at a lower min_weight.
	orig := s.arena.Get(b.Enc)
	dupID := s.arena.New()
	dup := s.arena.Get(dupID)
	dup.Build(append([]litstore.Lit{}, orig.Lits()...), b.K+2)
	relaxed := dup.Outputs()[b.K]
	b.Weight -= minCore
	s.boundMapping[p] = b
	if b.K+1 < len(dup.Outputs()) {
		next := dup.Outputs()[b.K+1].Negation()
		s.boundMapping[next] = Binding{Enc: dupID, K: b.K + 1, Weight: minCore}
	}
	return relaxed
}

// harden implements step 3: a single relaxed literal (soft or cardinality)
// is added directly as a unit clause, otherwise an at-most-1 totalizer over everything relaxed this
// round is built and its own output becomes the next cardinality
// assumption.
func (s *Solver) harden(softRelax, cardRelax []litstore.Lit, minCore int) {
	r := append(append([]litstore.Lit{}, softRelax...), cardRelax...)
	if len(r) == 0 {
		return
	}
	if len(r) == 1 {
		s.be.AddUnit(r[0])
		return
	}
	id := s.arena.New()
	enc := s.arena.Get(id)
	// An at-most-1 constraint over r is "not at least 2 true": build with
	// bound 2 and assume the negation of outputs[1], per §4.4's "register
	// its output literal at index 1".
	enc.Build(r, 2)
	out := enc.Outputs()[1].Negation()
	s.boundMapping[out] = Binding{Enc: id, K: 1, Weight: minCore}
}
