package oll

import (
	"testing"

	"github.com/crillab/wpms/clause"
	"github.com/crillab/wpms/internal/backend"
	"github.com/crillab/wpms/litstore"
)

// fixture bundles the plumbing every scenario needs: a Store and a Backend.
// The fixture itself is the clause.Builder both the Formula and the Solver
// build gates through (fresh variables from the Store, clauses to the
// Backend).
type fixture struct {
	store *litstore.Store
	be    *backend.Backend
}

func newFixture() *fixture {
	store := litstore.New()
	return &fixture{store: store, be: backend.New(store)}
}

func (f *fixture) NewVar() litstore.Var {
	return f.store.NewVar()
}

func (f *fixture) AddHard(c clause.Clause) {
	f.be.AddClause(c)
}

// addSoft relaxes c with a fresh variable and returns the SoftClause, the
// way wpms.Problem.AddSoft does.
func (f *fixture) addSoft(c clause.Clause, weight int) *SoftClause {
	r := f.store.NewVar()
	lits := append(append([]litstore.Lit{}, c.Lits()...), r.Lit())
	body := clause.NewClause(lits...)
	f.AddHard(body)
	return NewSoftClause(weight, body, r)
}

// Scenario 1: one hard clause (a); one soft (¬a) weight 3.
func TestScenarioSingleConflictingSoft(t *testing.T) {
	f := newFixture()
	a := f.store.NewVar()
	f.AddHard(clause.NewClause(a.Lit()))
	soft := f.addSoft(clause.NewClause(a.Lit().Negation()), 3)

	s := NewWeighted(f.store, f.be, f, []*SoftClause{soft}, Options{})
	out, err := s.Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Cost != 3 {
		t.Errorf("expected cost 3, got %d", out.Cost)
	}
	if !out.Model[a] {
		t.Errorf("expected a=true in the optimal model")
	}
}

// Scenario 2: hard (a ∨ b); softs (¬a) w=1, (¬b) w=1.
func TestScenarioMutuallyExclusiveSofts(t *testing.T) {
	f := newFixture()
	a := f.store.NewVar()
	b := f.store.NewVar()
	f.AddHard(clause.NewClause(a.Lit(), b.Lit()))
	sa := f.addSoft(clause.NewClause(a.Lit().Negation()), 1)
	sb := f.addSoft(clause.NewClause(b.Lit().Negation()), 1)

	s := NewWeighted(f.store, f.be, f, []*SoftClause{sa, sb}, Options{})
	out, err := s.Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Cost != 1 {
		t.Errorf("expected cost 1, got %d", out.Cost)
	}
	if out.Model[a] == out.Model[b] {
		t.Errorf("expected exactly one of a, b true, got a=%v b=%v", out.Model[a], out.Model[b])
	}
}

// Scenario 3: hard (a) ∧ (b) ∧ (c); softs (¬a) w=5, (¬b) w=5, (¬c) w=5.
func TestScenarioThreeIndependentConflicts(t *testing.T) {
	f := newFixture()
	a := f.store.NewVar()
	b := f.store.NewVar()
	c := f.store.NewVar()
	f.AddHard(clause.NewClause(a.Lit()))
	f.AddHard(clause.NewClause(b.Lit()))
	f.AddHard(clause.NewClause(c.Lit()))
	sa := f.addSoft(clause.NewClause(a.Lit().Negation()), 5)
	sb := f.addSoft(clause.NewClause(b.Lit().Negation()), 5)
	sc := f.addSoft(clause.NewClause(c.Lit().Negation()), 5)

	s := NewWeighted(f.store, f.be, f, []*SoftClause{sa, sb, sc}, Options{})
	out, err := s.Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Cost != 15 {
		t.Errorf("expected cost 15, got %d", out.Cost)
	}
	if !out.Model[a] || !out.Model[b] || !out.Model[c] {
		t.Errorf("expected a=b=c=true in the optimal model")
	}
}

// Scenario: no soft clauses at all, only a satisfiable hard problem.
func TestNoSoftClausesTerminatesAtZeroCost(t *testing.T) {
	f := newFixture()
	a := f.store.NewVar()
	f.AddHard(clause.NewClause(a.Lit()))

	s := NewWeighted(f.store, f.be, f, nil, Options{})
	out, err := s.Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Cost != 0 {
		t.Errorf("expected cost 0 with no soft clauses, got %d", out.Cost)
	}
}

func TestUnsatHardClausesIsAnInvariantError(t *testing.T) {
	f := newFixture()
	a := f.store.NewVar()
	f.AddHard(clause.NewClause(a.Lit()))
	f.AddHard(clause.NewClause(a.Lit().Negation()))

	s := NewWeighted(f.store, f.be, f, nil, Options{})
	_, err := s.Solve()
	if err == nil {
		t.Fatalf("expected an error for a contradictory hard problem")
	}
	if _, ok := err.(*InvariantError); !ok {
		t.Errorf("expected an *InvariantError, got %T: %v", err, err)
	}
}

// Scenario 5: weight diversity. hard (a) ∧ (b) ∧ (c) ∧ (d); softs (¬a) w=7,
// (¬b) w=5, (¬c) w=5, (¬d) w=3 — four independent conflicts spanning three
// distinct strata, forcing several rounds of stratification before the
// search runs out of weight classes.
func TestScenarioWeightDiversity(t *testing.T) {
	f := newFixture()
	a := f.store.NewVar()
	b := f.store.NewVar()
	c := f.store.NewVar()
	d := f.store.NewVar()
	f.AddHard(clause.NewClause(a.Lit()))
	f.AddHard(clause.NewClause(b.Lit()))
	f.AddHard(clause.NewClause(c.Lit()))
	f.AddHard(clause.NewClause(d.Lit()))
	sa := f.addSoft(clause.NewClause(a.Lit().Negation()), 7)
	sb := f.addSoft(clause.NewClause(b.Lit().Negation()), 5)
	sc := f.addSoft(clause.NewClause(c.Lit().Negation()), 5)
	sd := f.addSoft(clause.NewClause(d.Lit().Negation()), 3)

	s := NewWeighted(f.store, f.be, f, []*SoftClause{sa, sb, sc, sd}, Options{})
	out, err := s.Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Cost != 20 {
		t.Errorf("expected cost 20, got %d", out.Cost)
	}
	if !out.Model[a] || !out.Model[b] || !out.Model[c] || !out.Model[d] {
		t.Errorf("expected a=b=c=d=true in the optimal model")
	}
}

// Scenario 6: cardinality duplication. relaxCardinality's weight-greater
// path fires when a live cardinality binding's remaining weight exceeds the
// min_core being paid off this round: the original encoder is left alone
// (its remaining weight is still needed by assumptions at a lower
// min_weight) and a duplicate totalizer is built over the same inputs to
// carry the newly paid-off increment instead.
func TestRelaxCardinalityWeightGreaterDuplicatesEncoder(t *testing.T) {
	f := newFixture()
	s := NewWeighted(f.store, f.be, f, nil, Options{})

	inputs := []litstore.Lit{
		f.store.NewVar().Lit(),
		f.store.NewVar().Lit(),
		f.store.NewVar().Lit(),
	}
	id := s.arena.New()
	enc := s.arena.Get(id)
	enc.Build(inputs, 2)
	p := enc.Outputs()[1].Negation()
	binding := Binding{Enc: id, K: 1, Weight: 5}
	s.boundMapping[p] = binding

	relaxed := s.relaxCardinality(p, binding, 3)

	remaining, ok := s.boundMapping[p]
	if !ok {
		t.Fatalf("expected the original binding to remain under p on the weight-greater path")
	}
	if remaining.Weight != 2 {
		t.Errorf("expected remaining weight 5-3=2, got %d", remaining.Weight)
	}
	if remaining.Enc != id {
		t.Errorf("expected the original binding to keep its original encoder, got %v want %v", remaining.Enc, id)
	}

	dupID := id + 1 // the duplicate was allocated right after id
	dup := s.arena.Get(dupID)
	if len(dup.Outputs()) == 0 {
		t.Fatalf("expected the duplicate encoder to have been built over the original inputs")
	}
	if relaxed != dup.Outputs()[binding.K] {
		t.Errorf("expected the returned literal to be the duplicate's K-th output")
	}
	next, ok := s.boundMapping[dup.Outputs()[binding.K+1].Negation()]
	if !ok {
		t.Fatalf("expected a new binding for the duplicate's next threshold")
	}
	if next.Enc != dupID || next.K != binding.K+1 || next.Weight != 3 {
		t.Errorf("expected {Enc:%v K:%d Weight:3}, got %+v", dupID, binding.K+1, next)
	}
}

func TestUnweightedMinCoreIsAlwaysOne(t *testing.T) {
	f := newFixture()
	a := f.store.NewVar()
	f.AddHard(clause.NewClause(a.Lit()))
	soft := f.addSoft(clause.NewClause(a.Lit().Negation()), 1)

	s := NewUnweighted(f.store, f.be, f, []*SoftClause{soft}, Options{})
	out, err := s.Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Cost != 1 {
		t.Errorf("expected cost 1, got %d", out.Cost)
	}
}
