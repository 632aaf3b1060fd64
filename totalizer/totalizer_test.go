package totalizer

import (
	"testing"

	"github.com/crillab/wpms/clause"
	"github.com/crillab/wpms/litstore"
)

type fakeBuilder struct {
	store *litstore.Store
	hard  []clause.Clause
}

func newFakeBuilder() *fakeBuilder {
	return &fakeBuilder{store: litstore.New()}
}

func (b *fakeBuilder) NewVar() litstore.Var {
	return b.store.NewVar()
}

func (b *fakeBuilder) AddHard(c clause.Clause) {
	b.hard = append(b.hard, c)
}

func (b *fakeBuilder) eval(model map[litstore.Var]bool) bool {
	for _, c := range b.hard {
		if !c.Eval(model) {
			return false
		}
	}
	return true
}

// solveAssigning brute-forces the inputs (fixed by want) and all derived
// gate variables, and returns whether some assignment of the gate variables
// satisfies b.hard given those fixed inputs.
func solveAssigning(t *testing.T, b *fakeBuilder, fixed map[litstore.Var]bool) (map[litstore.Var]bool, bool) {
	t.Helper()
	n := int(b.store.NbVars())
	free := make([]litstore.Var, 0, n)
	for i := 0; i < n; i++ {
		v := litstore.Var(i)
		if _, ok := fixed[v]; !ok {
			free = append(free, v)
		}
	}
	model := make(map[litstore.Var]bool, n)
	for v, bnd := range fixed {
		model[v] = bnd
	}
	var try func(i int) bool
	try = func(i int) bool {
		if i == len(free) {
			return b.eval(model)
		}
		for _, bnd := range [2]bool{false, true} {
			model[free[i]] = bnd
			if try(i + 1) {
				return true
			}
		}
		return false
	}
	ok := try(0)
	return model, ok
}

func TestOutputsLengthMatchesBound(t *testing.T) {
	b := newFakeBuilder()
	v1 := b.store.NewVar()
	v2 := b.store.NewVar()
	v3 := b.store.NewVar()
	tot := New(b)
	tot.Build([]litstore.Lit{v1.Lit(), v2.Lit(), v3.Lit()}, 2)

	if !tot.HasEncoding() {
		t.Fatalf("expected HasEncoding true after Build")
	}
	if got := len(tot.Outputs()); got != 2 {
		t.Fatalf("expected 2 outputs for bound 2, got %d", got)
	}
}

func TestOutputZeroTrueIffAnyInputTrue(t *testing.T) {
	b := newFakeBuilder()
	v1 := b.store.NewVar()
	v2 := b.store.NewVar()
	tot := New(b)
	tot.Build([]litstore.Lit{v1.Lit(), v2.Lit()}, 2)
	o0 := tot.Outputs()[0]

	model, ok := solveAssigning(t, b, map[litstore.Var]bool{v1: true, v2: false})
	if !ok {
		t.Fatalf("expected a consistent assignment with v1=true")
	}
	if model[o0.Var()] != o0.IsPositive() {
		t.Errorf("expected outputs[0] true when one input is true")
	}
}

func TestOutputOneTrueIffBothInputsTrue(t *testing.T) {
	b := newFakeBuilder()
	v1 := b.store.NewVar()
	v2 := b.store.NewVar()
	tot := New(b)
	tot.Build([]litstore.Lit{v1.Lit(), v2.Lit()}, 2)
	o1 := tot.Outputs()[1]

	modelBoth, ok := solveAssigning(t, b, map[litstore.Var]bool{v1: true, v2: true})
	if !ok {
		t.Fatalf("expected a consistent assignment with both inputs true")
	}
	if modelBoth[o1.Var()] != o1.IsPositive() {
		t.Errorf("expected outputs[1] true when both inputs are true")
	}

	modelOne, ok := solveAssigning(t, b, map[litstore.Var]bool{v1: true, v2: false})
	if !ok {
		t.Fatalf("expected a consistent assignment with one input true")
	}
	if modelOne[o1.Var()] == o1.IsPositive() {
		t.Errorf("expected outputs[1] false when only one input is true")
	}
}

func TestUpdateAddsInputsIncrementally(t *testing.T) {
	b := newFakeBuilder()
	v1 := b.store.NewVar()
	v2 := b.store.NewVar()
	v3 := b.store.NewVar()
	tot := New(b)
	tot.Build([]litstore.Lit{v1.Lit()}, 1)
	if len(tot.Lits()) != 1 {
		t.Fatalf("expected 1 input after Build, got %d", len(tot.Lits()))
	}
	tot.Update([]litstore.Lit{v2.Lit(), v3.Lit()}, 1)
	if len(tot.Lits()) != 3 {
		t.Fatalf("expected 3 inputs after Update, got %d", len(tot.Lits()))
	}
	if len(tot.Outputs()) != 1 {
		t.Fatalf("expected bound to remain 1, got %d outputs", len(tot.Outputs()))
	}
}

func TestTightenGrowsOutputsWithoutNewInputs(t *testing.T) {
	b := newFakeBuilder()
	v1 := b.store.NewVar()
	v2 := b.store.NewVar()
	v3 := b.store.NewVar()
	tot := New(b)
	tot.Build([]litstore.Lit{v1.Lit(), v2.Lit(), v3.Lit()}, 1)
	before := len(tot.Lits())

	tot.Tighten(3)

	if len(tot.Lits()) != before {
		t.Errorf("Tighten should not change the input set, got %d inputs, want %d", len(tot.Lits()), before)
	}
	if got := len(tot.Outputs()); got != 3 {
		t.Fatalf("expected 3 outputs after tightening to bound 3, got %d", got)
	}
}

func TestArenaAddressing(t *testing.T) {
	b := newFakeBuilder()
	a := NewArena(b)
	id1 := a.New()
	id2 := a.New()
	if id1 == id2 {
		t.Fatalf("expected distinct EncIds, got %d and %d", id1, id2)
	}
	v := b.store.NewVar()
	a.Get(id1).Build([]litstore.Lit{v.Lit()}, 1)
	if !a.Get(id1).HasEncoding() {
		t.Errorf("expected encoder at id1 to be built")
	}
	if a.Get(id2).HasEncoding() {
		t.Errorf("expected encoder at id2 to remain unbuilt")
	}
}
