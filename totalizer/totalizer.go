package totalizer

import (
	"github.com/crillab/wpms/clause"
	"github.com/crillab/wpms/litstore"
)

// A Totalizer is an incremental at-most-k cardinality encoder over a growing
// multiset of input literals. Outputs()[i] is true iff at least i+1 of the
// inputs currently registered are true.
type Totalizer struct {
	b       clause.Builder
	inputs  []litstore.Lit
	k       int
	rows    [][]litstore.Lit // rows[i][c]: ≥c+1 true among the first i+1 inputs
	encoded bool
}

// New returns an empty, unbuilt Totalizer whose gates are emitted into b.
func New(b clause.Builder) *Totalizer {
	return &Totalizer{b: b}
}

// HasEncoding reports whether Build, Update or Tighten has ever been called.
func (t *Totalizer) HasEncoding() bool {
	return t.encoded
}

// Lits returns the encoder's current input literals. The returned slice must
// not be mutated.
func (t *Totalizer) Lits() []litstore.Lit {
	return t.inputs
}

// Outputs returns the encoder's ordered output literals. The returned slice
// must not be mutated.
func (t *Totalizer) Outputs() []litstore.Lit {
	if len(t.rows) == 0 {
		return nil
	}
	return t.rows[len(t.rows)-1]
}

// Build (re-)initializes the encoder over inputs with bound k, discarding
// any prior state.
func (t *Totalizer) Build(inputs []litstore.Lit, k int) {
	t.inputs = nil
	t.rows = nil
	t.k = 0
	t.Update(inputs, k)
}

// Update grows the encoder: newInputs are appended to the input multiset,
// and the bound is raised to newK if newK is greater than the current
// bound. Either argument may be zero-valued to grow along one axis only.
func (t *Totalizer) Update(newInputs []litstore.Lit, newK int) {
	if newK > t.k {
		t.growColumns(newK)
	}
	for _, l := range newInputs {
		t.addInput(l)
	}
	t.encoded = true
}

// Tighten raises the bound to k without adding new inputs.
func (t *Totalizer) Tighten(k int) {
	t.Update(nil, k)
}

func litAt(row []litstore.Lit, idx int) (litstore.Lit, bool) {
	if idx < 0 || idx >= len(row) {
		return 0, false
	}
	return row[idx], true
}

func (t *Totalizer) addInput(l litstore.Lit) {
	t.inputs = append(t.inputs, l)
	n := len(t.inputs)
	maxCol := n
	if maxCol > t.k {
		maxCol = t.k
	}
	var prev []litstore.Lit
	if len(t.rows) > 0 {
		prev = t.rows[len(t.rows)-1]
	}
	row := make([]litstore.Lit, maxCol)
	for c := 0; c < maxCol; c++ {
		row[c] = t.register(l, prev, c)
	}
	t.rows = append(t.rows, row)
}

func (t *Totalizer) growColumns(newK int) {
	for i := range t.rows {
		var prev []litstore.Lit
		if i > 0 {
			prev = t.rows[i-1]
		}
		maxCol := i + 1
		if maxCol > newK {
			maxCol = newK
		}
		row := t.rows[i]
		for c := len(row); c < maxCol; c++ {
			row = append(row, t.register(t.inputs[i], prev, c))
		}
		t.rows[i] = row
	}
	t.k = newK
}

// register computes s[i][c], the register for "≥c+1 of the inputs up to and
// including l are true", given the previous row (the registers for the
// inputs before l) already extended as far as column c requires.
func (t *Totalizer) register(l litstore.Lit, prev []litstore.Lit, c int) litstore.Lit {
	if c == 0 {
		if same, ok := litAt(prev, 0); ok {
			return t.mkOr(l, same)
		}
		return l
	}
	lower, okLower := litAt(prev, c-1)
	same, okSame := litAt(prev, c)
	and := t.mkAnd(l, lower)
	if !okLower {
		// unreachable given the column-growth invariants, but avoid a
		// malformed gate if it ever happens.
		and = l
	}
	if okSame {
		return t.mkOr(and, same)
	}
	return and
}

func (t *Totalizer) mkAnd(x, y litstore.Lit) litstore.Lit {
	z := t.b.NewVar().Lit()
	t.b.AddHard(clause.NewClause(z.Negation(), x))
	t.b.AddHard(clause.NewClause(z.Negation(), y))
	t.b.AddHard(clause.NewClause(z, x.Negation(), y.Negation()))
	return z
}

func (t *Totalizer) mkOr(x, y litstore.Lit) litstore.Lit {
	z := t.b.NewVar().Lit()
	t.b.AddHard(clause.NewClause(z, x.Negation()))
	t.b.AddHard(clause.NewClause(z, y.Negation()))
	t.b.AddHard(clause.NewClause(z.Negation(), x, y))
	return z
}

// Arena is an append-only collection of Totalizers addressed by a dense
// EncId rather than a pointer, so that the search loop holding one never
// has to reason about Totalizer lifetimes directly.
type Arena struct {
	b        clause.Builder
	encoders []*Totalizer
}

// EncId addresses a Totalizer within an Arena.
type EncId int

// NewArena returns an empty Arena whose encoders emit gates into b.
func NewArena(b clause.Builder) *Arena {
	return &Arena{b: b}
}

// New allocates and returns a fresh, empty Totalizer's id.
func (a *Arena) New() EncId {
	id := EncId(len(a.encoders))
	a.encoders = append(a.encoders, New(a.b))
	return id
}

// Get returns the Totalizer addressed by id.
func (a *Arena) Get(id EncId) *Totalizer {
	return a.encoders[id]
}
