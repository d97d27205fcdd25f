package encoder

import (
	"fmt"
	"strings"
)

// snapshotState is the single save point an Encoder can hold. Its presence
// (non-nil) is the encoder's only notion of "a snapshot is active".
type snapshotState[T comparable] struct {
	counter    int
	clausesLen int
	newNames   []T
}

// Encoder maps domain variables of type T to positive integer SAT ids,
// accumulates the resulting CNF formula, and supports a single-level
// snapshot/rewind so that hypothetical assertions (Tseytin-encoded query
// negations) can be explored and then discarded without leaving a trace.
//
// The zero value is not usable; construct with New.
type Encoder[T comparable] struct {
	nameToID map[T]int
	idToName []T
	clauses  [][]Literal[int]
	counter  int
	snap     *snapshotState[T]
}

// New returns an empty Encoder.
func New[T comparable]() *Encoder[T] {
	return &Encoder[T]{
		nameToID: make(map[T]int),
	}
}

// NVars returns the number of ids ever allocated, named or raw.
func (e *Encoder[T]) NVars() int {
	return e.counter
}

// NClauses returns the number of clauses accumulated so far.
func (e *Encoder[T]) NClauses() int {
	return len(e.clauses)
}

func (e *Encoder[T]) growTo(id int) {
	if id <= len(e.idToName) {
		return
	}
	grown := make([]T, id)
	copy(grown, e.idToName)
	e.idToName = grown
}

// Intern returns the SAT-id literal corresponding to lit, allocating a
// fresh id on first occurrence of its underlying variable. Polarity is
// preserved.
func (e *Encoder[T]) Intern(lit Literal[T]) Literal[int] {
	name := lit.Inner()
	id, ok := e.nameToID[name]
	if !ok {
		e.counter++
		id = e.counter
		e.nameToID[name] = id
		e.growTo(id)
		e.idToName[id-1] = name
		if e.snap != nil {
			e.snap.newNames = append(e.snap.newNames, name)
		}
	}
	return mapLiteral(lit, func(T) int { return id })
}

// InternClause interns every literal in clause, preserving order.
func (e *Encoder[T]) InternClause(clause []Literal[T]) []Literal[int] {
	out := make([]Literal[int], len(clause))
	for i, lit := range clause {
		out[i] = e.Intern(lit)
	}
	return out
}

// Add interns clause and appends it to the formula.
func (e *Encoder[T]) Add(clause []Literal[T]) {
	e.clauses = append(e.clauses, e.InternClause(clause))
}

// AllocRaw allocates a fresh positive id with no associated domain name,
// for use as a Tseytin auxiliary. It still advances counter and is still
// undone by a pending Rewind, but leaves no entry in the name table.
func (e *Encoder[T]) AllocRaw() Literal[int] {
	e.counter++
	e.growTo(e.counter)
	return Pos(e.counter)
}

// AddRaw appends a clause of raw (already-interned or auxiliary) literals
// directly, with no interning step.
func (e *Encoder[T]) AddRaw(clause []Literal[int]) {
	e.clauses = append(e.clauses, clause)
}

// Snapshot records the current counter, clause count, and begins tracking
// newly interned names, so that a later Rewind can restore exactly this
// state. Panics if a snapshot is already active: the design supports only
// one save point at a time, matching Ask's non-nested usage.
func (e *Encoder[T]) Snapshot() {
	if e.snap != nil {
		panic("encoder: snapshot already active")
	}
	e.snap = &snapshotState[T]{
		counter:    e.counter,
		clausesLen: len(e.clauses),
	}
}

// Rewind restores the encoder to the state recorded by the last Snapshot:
// counter, clause length, and name table are all rolled back exactly.
// Panics if no snapshot is active.
func (e *Encoder[T]) Rewind() {
	if e.snap == nil {
		panic("encoder: rewind without an active snapshot")
	}
	snap := e.snap
	e.counter = snap.counter
	e.clauses = e.clauses[:snap.clausesLen]
	e.idToName = e.idToName[:snap.counter]
	for _, name := range snap.newNames {
		delete(e.nameToID, name)
	}
	e.snap = nil
}

// HasSnapshot reports whether a snapshot is currently active.
func (e *Encoder[T]) HasSnapshot() bool {
	return e.snap != nil
}

// EmitDIMACS renders the accumulated formula as DIMACS CNF text, and
// returns the id→name table as a slice indexed by id-1 (raw ids, which
// have no name, hold T's zero value at their index).
func (e *Encoder[T]) EmitDIMACS() (string, []T) {
	var b strings.Builder
	fmt.Fprintf(&b, "p cnf %d %d\n", e.counter, len(e.clauses))
	for _, clause := range e.clauses {
		for _, lit := range clause {
			if lit.Negated() {
				fmt.Fprintf(&b, "-%d ", lit.Inner())
			} else {
				fmt.Fprintf(&b, "%d ", lit.Inner())
			}
		}
		b.WriteString("0\n")
	}
	names := make([]T, len(e.idToName))
	copy(names, e.idToName)
	return b.String(), names
}

// DebugString renders the formula and name table for diagnostic dumps
// (e.g. on a consistency-check failure), independent of DIMACS formatting.
func (e *Encoder[T]) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "encoder: %d vars, %d clauses\n", e.counter, len(e.clauses))
	for i, name := range e.idToName {
		fmt.Fprintf(&b, "  %d = %v\n", i+1, name)
	}
	for _, clause := range e.clauses {
		parts := make([]string, len(clause))
		for i, lit := range clause {
			parts[i] = lit.String()
		}
		fmt.Fprintf(&b, "  (%s)\n", strings.Join(parts, " ∨ "))
	}
	return b.String()
}
