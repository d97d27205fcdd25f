// Package encoder implements a generic CNF variable interner and clause
// accumulator: the translation layer between domain-typed propositional
// variables and the signed integer literals a DIMACS-speaking SAT solver
// understands.
package encoder

import "fmt"

// Literal is a propositional literal over a domain of type T: either a
// positive occurrence of a variable, or its negation. Literal[int] is the
// SAT-id-space counterpart of a Literal[T] over some domain-typed T.
type Literal[T any] struct {
	inner T
	neg   bool
}

// Pos returns a positive literal over v.
func Pos[T any](v T) Literal[T] {
	return Literal[T]{inner: v}
}

// Neg returns a negative literal over v.
func Neg[T any](v T) Literal[T] {
	return Literal[T]{inner: v, neg: true}
}

// Not flips the polarity of the receiver, leaving the underlying variable
// untouched.
func (l Literal[T]) Not() Literal[T] {
	return Literal[T]{inner: l.inner, neg: !l.neg}
}

// Inner extracts the underlying variable, discarding polarity.
func (l Literal[T]) Inner() T {
	return l.inner
}

// Negated reports whether the receiver is a negative occurrence.
func (l Literal[T]) Negated() bool {
	return l.neg
}

func (l Literal[T]) String() string {
	if l.neg {
		return fmt.Sprintf("¬%v", l.inner)
	}
	return fmt.Sprintf("%v", l.inner)
}

// mapLiteral transforms the variable underneath a literal while preserving
// its polarity.
func mapLiteral[T, U any](l Literal[T], f func(T) U) Literal[U] {
	if l.neg {
		return Neg(f(l.inner))
	}
	return Pos(f(l.inner))
}

// Clause is a disjunction of literals over T.
type Clause[T any] []Literal[T]
