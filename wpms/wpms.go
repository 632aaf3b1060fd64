package wpms

import (
	"github.com/crillab/wpms/clause"
	"github.com/crillab/wpms/internal/backend"
	"github.com/crillab/wpms/litstore"
	"github.com/crillab/wpms/oll"
)

// Problem is the Formula of §4.3 plus the §6 external-interface facade: the
// single object a client builds a WPMS instance through. It owns the
// LitStore, the accumulated hard/soft clauses, and the SAT backend, one
// struct driving one solver.
type Problem struct {
	store *litstore.Store
	be    *backend.Backend

	softs []*oll.SoftClause

	solved bool
	model  []bool
	lb, ub int
}

// New returns an empty Problem, ready for AddHard/AddSoft calls.
func New() *Problem {
	store := litstore.New()
	return &Problem{store: store, be: backend.New(store)}
}

// NewVar allocates a fresh variable. Satisfies clause.Builder.
func (p *Problem) NewVar() litstore.Var {
	return p.store.NewVar()
}

// NewLit allocates a fresh variable and returns its literal with the given
// polarity (§4.1 new_lit).
func (p *Problem) NewLit(signed bool) litstore.Lit {
	return p.store.NewLit(signed)
}

// Neg returns ¬l (§4.1 neg).
func (p *Problem) Neg(l litstore.Lit) litstore.Lit {
	return l.Negation()
}

// AddHard adds c unconditionally to the formula (§4.3 add_hard). Satisfies
// clause.Builder, so Problem itself can be passed to clause.Or/Not/Implies.
func (p *Problem) AddHard(c clause.Clause) {
	p.be.AddClause(c)
}

// AddHardMany adds every clause of s unconditionally (§4.3 add_hard_many).
func (p *Problem) AddHardMany(s clause.Set) {
	for _, c := range s.Clauses() {
		p.AddHard(c)
	}
}

// AddHardSet is the §6 facade name for AddHardMany: "add_hard(ClauseSet)".
func (p *Problem) AddHardSet(s clause.Set) {
	p.AddHardMany(s)
}

// AddSoft relaxes c with a fresh assumption variable and registers it as a
// weighted soft clause (§4.3 add_soft). weight must be positive; use AddHard
// for unconditional clauses.
func (p *Problem) AddSoft(c clause.Clause, weight int) *oll.SoftClause {
	relax := p.store.NewVar()
	lits := append(append([]litstore.Lit{}, c.Lits()...), relax.Lit())
	body := clause.NewClause(lits...)
	p.AddHard(body)
	sc := oll.NewSoftClause(weight, body, relax)
	p.softs = append(p.softs, sc)
	return sc
}

// AddClause is the §6 facade: weight -1 is the client's sentinel for "this
// clause is hard", dispatching to AddHard; any other weight dispatches to
// AddSoft.
func (p *Problem) AddClause(c clause.Clause, weight int) {
	if weight == -1 {
		p.AddHard(c)
		return
	}
	p.AddSoft(c, weight)
}

// Not, Or and Implies are convenience wrappers around the clause package's
// operators, binding Problem itself as the Builder they emit side-effect
// clauses into.
func (p *Problem) Not(s clause.Set) clause.Set {
	return clause.Not(p, s)
}

func (p *Problem) Or(a, b clause.Set) clause.Set {
	return clause.Or(p, a, b)
}

func (p *Problem) Implies(a, b clause.Set) clause.Set {
	return clause.Implies(p, a, b)
}

// MaxWeight returns the largest weight among the soft clauses registered so
// far (§4.3 max_weight).
func (p *Problem) MaxWeight() int {
	max := 0
	for _, sc := range p.softs {
		if sc.Weight > max {
			max = sc.Weight
		}
	}
	return max
}

// Softs returns the soft clauses registered so far. The returned slice and
// its contents must not be mutated by callers.
func (p *Problem) Softs() []*oll.SoftClause {
	return p.softs
}

// LB and UB return the best lower/upper bound found by the last Solve call.
func (p *Problem) LB() int { return p.lb }
func (p *Problem) UB() int { return p.ub }

// Solve runs the weighted OLL search to completion and reports whether every
// variable in highLevel is true in the resulting optimal model (§6 solve).
func (p *Problem) Solve(highLevel []litstore.Var) (bool, error) {
	s := oll.NewWeighted(p.store, p.be, p, p.softs, oll.Options{})
	out, err := s.Solve()
	if err != nil {
		return false, err
	}
	p.model = out.Model
	p.ub = out.Cost
	p.lb = out.Cost
	p.solved = true
	for _, v := range highLevel {
		if !p.Value(v) {
			return false, nil
		}
	}
	return true, nil
}

// Value reads v's binding in the model saved by the last successful Solve
// call (§6 value). Reading before a successful Solve returns false.
func (p *Problem) Value(v litstore.Var) bool {
	if !p.solved || int(v) >= len(p.model) {
		return false
	}
	return p.model[v]
}
