package litstore

import "testing"

func TestNewVarMonotone(t *testing.T) {
	s := New()
	var prev Var = -1
	for i := 0; i < 10; i++ {
		v := s.NewVar()
		if v <= prev {
			t.Fatalf("variable allocation not monotone: got %d after %d", v, prev)
		}
		prev = v
	}
	if s.NbVars() != 10 {
		t.Errorf("expected 10 vars, got %d", s.NbVars())
	}
}

func TestNegation(t *testing.T) {
	s := New()
	v := s.NewVar()
	pos := v.Lit()
	neg := pos.Negation()
	if neg.Var() != v {
		t.Errorf("negation changed variable: got %d, want %d", neg.Var(), v)
	}
	if neg.IsPositive() {
		t.Errorf("negation of positive literal should not be positive")
	}
	if neg.Negation() != pos {
		t.Errorf("double negation should return original literal")
	}
}

func TestNewLitPolarity(t *testing.T) {
	s := New()
	l := s.NewLit(true)
	if l.IsPositive() {
		t.Errorf("expected negative literal from NewLit(true)")
	}
	l2 := s.NewLit(false)
	if !l2.IsPositive() {
		t.Errorf("expected positive literal from NewLit(false)")
	}
}

func TestMkLit(t *testing.T) {
	s := New()
	v := s.NewVar()
	if Neg(s.MkLit(v, false)) != s.MkLit(v, true) {
		t.Errorf("Neg(MkLit(v, false)) should equal MkLit(v, true)")
	}
}
