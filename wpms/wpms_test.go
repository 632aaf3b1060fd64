package wpms

import (
	"testing"

	"github.com/crillab/wpms/clause"
	"github.com/crillab/wpms/litstore"
)

func TestAddClauseSentinelDispatchesHardVsSoft(t *testing.T) {
	p := New()
	a := p.NewVar()
	p.AddClause(clause.NewClause(a.Lit()), -1)
	p.AddClause(clause.NewClause(a.Lit().Negation()), 4)

	if len(p.Softs()) != 1 {
		t.Fatalf("expected exactly one soft clause, got %d", len(p.Softs()))
	}

	ok, err := p.Solve(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected Solve to report true when no high-level vars are given")
	}
	if p.UB() != 4 {
		t.Errorf("expected cost 4, got %d", p.UB())
	}
	if !p.Value(a) {
		t.Errorf("expected a=true in the optimal model")
	}
}

func TestSolveReportsHighLevelVarsFalse(t *testing.T) {
	p := New()
	a := p.NewVar()
	b := p.NewVar()
	p.AddHard(clause.NewClause(a.Lit()))
	p.AddSoft(clause.NewClause(b.Lit().Negation()), 1)

	ok, err := p.Solve([]litstore.Var{b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expected Solve to report false: b is left false in the optimal model")
	}
}

func TestMaxWeightTracksLargestSoft(t *testing.T) {
	p := New()
	a := p.NewVar()
	b := p.NewVar()
	p.AddSoft(clause.NewClause(a.Lit()), 2)
	p.AddSoft(clause.NewClause(b.Lit()), 7)
	if p.MaxWeight() != 7 {
		t.Errorf("expected max weight 7, got %d", p.MaxWeight())
	}
}

func TestOrRoutesThroughProblemAsBuilder(t *testing.T) {
	p := New()
	a := p.NewVar()
	b := p.NewVar()
	setA := clause.FromVar(a)
	setB := clause.FromVar(b)
	disj := p.Or(setA, setB)
	p.AddHardMany(disj)

	p.AddClause(clause.NewClause(a.Lit().Negation()), -1)

	ok, err := p.Solve(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("unexpected unsatisfiable result")
	}
	if !p.Value(b) {
		t.Errorf("expected b=true: a is forced false and a ∨ b must hold")
	}
}
