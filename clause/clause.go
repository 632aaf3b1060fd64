package clause

import (
	"strconv"
	"strings"

	"github.com/crillab/wpms/litstore"
)

// A Clause is a disjunction of distinct literals. Order is irrelevant to its
// semantics but is preserved for determinism.
type Clause struct {
	lits []litstore.Lit
}

// NewClause builds a Clause from the given literals, removing exact
// duplicates. Tautological input (a literal and its negation both present)
// is not rejected or filtered; avoiding that is the caller's responsibility.
func NewClause(lits ...litstore.Lit) Clause {
	seen := make(map[litstore.Lit]bool, len(lits))
	out := make([]litstore.Lit, 0, len(lits))
	for _, l := range lits {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return Clause{lits: out}
}

// EmptyClause returns the clause with no literals, i.e. the value false.
func EmptyClause() Clause {
	return Clause{}
}

// Lits returns the literals of c. The returned slice must not be mutated.
func (c Clause) Lits() []litstore.Lit {
	return c.lits
}

// Len returns the number of literals in c.
func (c Clause) Len() int {
	return len(c.lits)
}

func (c Clause) String() string {
	strs := make([]string, len(c.lits))
	for i, l := range c.lits {
		strs[i] = strconv.Itoa(int(l.Int()))
	}
	return "(" + strings.Join(strs, " ∨ ") + ")"
}

// Eval returns whether c is satisfied by model. model must bind every
// variable referenced by c.
func (c Clause) Eval(model map[litstore.Var]bool) bool {
	for _, l := range c.lits {
		b, ok := model[l.Var()]
		if !ok {
			continue
		}
		if b == l.IsPositive() {
			return true
		}
	}
	return false
}

// A Set is a conjunction of Clauses, i.e. a formula in CNF. The empty Set is
// the constant true; a Set containing the empty Clause is the constant
// false.
type Set struct {
	clauses []Clause
}

// FromVar lifts v to the unit clause (v).
func FromVar(v litstore.Var) Set {
	return Set{clauses: []Clause{NewClause(v.Lit())}}
}

// FromLit lifts l to the unit clause (l).
func FromLit(l litstore.Lit) Set {
	return Set{clauses: []Clause{NewClause(l)}}
}

// FromClause lifts a single Clause to a singleton Set.
func FromClause(c Clause) Set {
	return Set{clauses: []Clause{c}}
}

// FromClauses builds a Set directly from a list of Clauses.
func FromClauses(cs []Clause) Set {
	out := make([]Clause, len(cs))
	copy(out, cs)
	return Set{clauses: out}
}

// True returns the empty Set, the constant true.
func True() Set {
	return Set{}
}

// False returns the Set containing only the empty clause, the constant
// false.
func False() Set {
	return Set{clauses: []Clause{EmptyClause()}}
}

// Clauses returns the clauses making up s. The returned slice must not be
// mutated.
func (s Set) Clauses() []Clause {
	return s.clauses
}

// Len returns the number of clauses in s.
func (s Set) Len() int {
	return len(s.clauses)
}

func (s Set) String() string {
	strs := make([]string, len(s.clauses))
	for i, c := range s.clauses {
		strs[i] = c.String()
	}
	return strings.Join(strs, " ∧ ")
}

// Eval returns whether s is satisfied by model. model must bind every
// variable s references, including any selector variables introduced by Or
// or Implies; testable property 1 (¬ eval) and property 2 (∨ eval) are
// stated after projecting those away, since they are existentially
// quantified, not universally fixed, by the algebra's contract.
func (s Set) Eval(model map[litstore.Var]bool) bool {
	for _, c := range s.clauses {
		if !c.Eval(model) {
			return false
		}
	}
	return true
}

// Builder is the side-effect target Or and Implies thread their fresh
// selector variables and hard clauses through.
type Builder interface {
	// NewVar allocates and returns a fresh variable.
	NewVar() litstore.Var
	// AddHard adds c as a hard (must-be-satisfied) clause.
	AddHard(c Clause)
}

// Not returns ¬s. ¬(C1 ∧ … ∧ Cm) is, semantically, ¬C1 ∨ … ∨ ¬Cm, where each
// ¬Ci is itself a conjunction of unit clauses; the disjunction across the m
// terms is built with Or so the result keeps Or's direction-preserving
// guarantee (needed when the negation itself becomes the antecedent of a
// further Implies, as in Implies's own definition).
func Not(b Builder, s Set) Set {
	if len(s.clauses) == 0 {
		return False()
	}
	negated := make([]Set, len(s.clauses))
	for i, c := range s.clauses {
		units := make([]Clause, len(c.lits))
		for j, l := range c.lits {
			units[j] = NewClause(l.Negation())
		}
		negated[i] = Set{clauses: units}
	}
	res := negated[0]
	for _, part := range negated[1:] {
		res = Or(b, res, part)
	}
	return res
}

// And returns the conjunction of the given Sets. It is pure: no selector
// variables or side-effect clauses are ever introduced.
func And(sets ...Set) Set {
	var out []Clause
	for _, s := range sets {
		out = append(out, s.clauses...)
	}
	return Set{clauses: out}
}

// Or returns p ∨ q using a direction-preserving selector encoding. If either
// operand has zero clauses, the result is the other operand unchanged and Or
// has no side effect. Otherwise two fresh selectors x, y are allocated, the
// returned Set is the single clause (x ∨ y), and for each clause Ci of p
// (resp. Dj of q) a fresh ci is tied to Ci with (ci ∨ ¬x), (ci ∨ ¬ℓ) for ℓ ∈
// Ci, and (¬ci ∨ Ci): together with the combining clause (x ∨ ¬c1 ∨ … ∨ ¬cm)
// this makes x ⇔ (c1 ∧ … ∧ cm), so x false forces some ci false, and that
// ci's own (ci ∨ ¬ℓ) clauses then force every literal of the corresponding Ci
// false, i.e. x false forces p itself false (symmetrically for y and q). A
// plain Tseitin encoding of p ∨ q only guarantees the forward direction (x
// true ⇒ p true); this also needs the reverse, since a later Implies built
// on this result negates it.
func Or(b Builder, p, q Set) Set {
	if len(p.clauses) == 0 {
		return q
	}
	if len(q.clauses) == 0 {
		return p
	}
	x := b.NewVar().Lit()
	y := b.NewVar().Lit()
	xrep := orSide(b, x, p.clauses)
	yrep := orSide(b, y, q.clauses)
	b.AddHard(NewClause(append([]litstore.Lit{x}, xrep...)...))
	b.AddHard(NewClause(append([]litstore.Lit{y}, yrep...)...))
	return FromClause(NewClause(x, y))
}

// orSide emits the per-clause ci side clauses for one operand of Or (selector
// sel, the operand's clauses) and returns their ¬ci literals; the caller
// still has to OR sel itself into the clause built from this slice to get the
// combining clause that completes sel ⇔ (c1 ∧ … ∧ cm).
func orSide(b Builder, sel litstore.Lit, clauses []Clause) []litstore.Lit {
	rep := make([]litstore.Lit, len(clauses))
	for i, c := range clauses {
		ci := b.NewVar().Lit()
		b.AddHard(NewClause(ci, sel.Negation()))
		for _, l := range c.lits {
			b.AddHard(NewClause(ci, l.Negation()))
		}
		lits := make([]litstore.Lit, 0, len(c.lits)+1)
		lits = append(lits, ci.Negation())
		lits = append(lits, c.lits...)
		b.AddHard(NewClause(lits...))
		rep[i] = ci.Negation()
	}
	return rep
}

// Implies returns p ⇒ q, defined as ¬p ∨ q, and therefore carries the same
// side effects as Not and Or.
func Implies(b Builder, p, q Set) Set {
	return Or(b, Not(b, p), q)
}
