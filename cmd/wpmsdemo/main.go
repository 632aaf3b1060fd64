// Command wpmsdemo is a small, non-CLI example client exercising the §6
// interface end-to-end: it builds a tiny weighted partial MaxSAT instance
// programmatically, solves it, and prints the model and cost in the
// conventional "c"/"o" progress-line style. It has no flags and reads no
// files; those remain explicitly out of scope for the core.
package main

import (
	"fmt"
	"os"

	"github.com/crillab/wpms/clause"
	"github.com/crillab/wpms/wpms"
)

func main() {
	p := wpms.New()

	// Three boolean "tasks" a, b, c. Hard: at least one must run (a ∨ b ∨ c).
	// Soft: each task running has a cost, so the optimum runs exactly one,
	// the cheapest.
	a := p.NewVar()
	b := p.NewVar()
	c := p.NewVar()

	atLeastOne := clause.NewClause(a.Lit(), b.Lit(), c.Lit())
	p.AddHard(atLeastOne)

	p.AddSoft(clause.NewClause(a.Lit().Negation()), 5)
	p.AddSoft(clause.NewClause(b.Lit().Negation()), 2)
	p.AddSoft(clause.NewClause(c.Lit().Negation()), 9)

	fmt.Printf("c solving wpmsdemo instance\n")
	ok, err := p.Solve(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "c solve failed: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("c UNSAT")
		return
	}
	fmt.Printf("o %d\n", p.UB())
	fmt.Printf("v a=%v b=%v c=%v\n", p.Value(a), p.Value(b), p.Value(c))
}
