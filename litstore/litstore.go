package litstore

// A Var is an opaque, totally ordered variable identifier issued by a Store.
// Vars start at 0 and are dense and contiguous: once issued, a Var is never
// reused or retracted.
type Var int32

// A Lit is a variable paired with a polarity. Negation flips the polarity
// and leaves the variable untouched. Lits start at 0 and are positive; the
// sign is the last bit.
type Lit int32

// Lit returns the positive literal for v.
func (v Var) Lit() Lit {
	return Lit(v * 2)
}

// SignedLit returns the literal for v, negated if signed is true.
func (v Var) SignedLit(signed bool) Lit {
	if signed {
		return Lit(v*2) + 1
	}
	return Lit(v * 2)
}

// Var returns the variable l is built on.
func (l Lit) Var() Var {
	return Var(l / 2)
}

// IsPositive is true iff l has positive polarity.
func (l Lit) IsPositive() bool {
	return l%2 == 0
}

// Negation returns ¬l. Negation(¬l) = l.
func (l Lit) Negation() Lit {
	return l ^ 1
}

// Int returns the DIMACS-style signed integer for l (variables are 1-based
// in that representation).
func (l Lit) Int() int32 {
	res := int32(l/2 + 1)
	if !l.IsPositive() {
		return -res
	}
	return res
}

// A Store allocates fresh propositional variables on demand. The zero value
// is a ready-to-use, empty Store.
type Store struct {
	nbVars int32
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// NewVar allocates and returns a fresh Var. Variable allocation is
// monotone: successive calls return strictly increasing Vars.
func (s *Store) NewVar() Var {
	v := Var(s.nbVars)
	s.nbVars++
	return v
}

// NewLit allocates a fresh variable and returns the literal with the given
// polarity (false, i.e. positive, by default).
func (s *Store) NewLit(signed bool) Lit {
	return s.NewVar().SignedLit(signed)
}

// MkLit returns the literal for v with the given polarity. It does not
// allocate; v must already have been issued by this Store.
func (s *Store) MkLit(v Var, signed bool) Lit {
	return v.SignedLit(signed)
}

// Neg returns ¬l. Provided as a free function to match the external
// interface of §6; Lit.Negation is the method form used internally.
func Neg(l Lit) Lit {
	return l.Negation()
}

// NbVars returns the number of variables issued so far.
func (s *Store) NbVars() int32 {
	return s.nbVars
}

