// Package clause implements the boolean-formula algebra over CNF values
// that the rest of this module builds on: Clause and Set (a conjunction of
// clauses) support negation, conjunction, disjunction and implication while
// preserving equi-logical strength, not merely equi-satisfiability, so that
// a Set can be safely used as the antecedent of a later implication.
//
// The combinator style (And/Or/Not/Implies as free functions, small
// exported Clause/Set value types, Eval against a model) is a Tseitin
// transform shaped the way a generic-Formula-to-CNF compiler usually is.
// Unlike an ordinary (equisatisfiable) Tseitin transform compiling a generic
// Formula tree to CNF, this package works directly on CNF Set values and
// gives Or a direction-preserving selector encoding: if the clause it
// returns is false under some model, the operands it was built from are
// provably false too, which a naive Tseitin encoding does not guarantee.
// Implies is built from Not and Or and inherits the same guarantee.
//
// Or and Implies have a side effect: they emit fresh hard clauses into the
// Builder passed to them. Not does too, since it is defined in terms of Or.
// And is the only pure operator.
package clause
