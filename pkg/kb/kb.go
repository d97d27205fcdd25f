// Package kb implements the Wumpus-World knowledge base: tell/ask/
// consistency on top of a generic CNF encoder and a pluggable SAT oracle,
// using Tseytin-encoded refutation to decide entailment.
package kb

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/LucaSforza/Wumpus-World/pkg/encoder"
	"github.com/LucaSforza/Wumpus-World/pkg/oracle"
	"github.com/LucaSforza/Wumpus-World/pkg/wumpus"
)

// KB is a propositional knowledge base over wumpus.Var, backed by a CNF
// encoder and decided by an Oracle.
type KB struct {
	enc    *encoder.Encoder[wumpus.Var]
	oracle oracle.Oracle
	log    log.FieldLogger
}

// New returns an empty knowledge base that decides satisfiability via o.
func New(o oracle.Oracle) *KB {
	return &KB{
		enc:    encoder.New[wumpus.Var](),
		oracle: o,
		log:    log.StandardLogger(),
	}
}

// SetLogger overrides the knowledge base's logger, e.g. to attach
// component fields.
func (k *KB) SetLogger(l log.FieldLogger) {
	k.log = l
}

// Tell asserts every clause of phi into the knowledge base. Monotonic:
// no snapshot is taken or released.
func (k *KB) Tell(phi wumpus.Formula) {
	for _, clause := range phi {
		k.enc.Add(clause)
	}
}

// Consistency reports whether the knowledge base, as currently asserted,
// is satisfiable.
func (k *KB) Consistency(ctx context.Context) (bool, error) {
	v, err := k.decide(ctx)
	if err != nil {
		return false, errors.Wrap(err, "consistency check failed")
	}
	return v == oracle.SAT, nil
}

// Ask decides whether the knowledge base entails phi, by refutation: it
// temporarily augments the KB with the negation of phi (Tseytin-encoded
// when phi has more than one clause) and checks unsatisfiability, then
// rewinds every augmentation — named or raw — before returning. The
// receiver's DIMACS output and name table are guaranteed identical before
// and after the call.
func (k *KB) Ask(ctx context.Context, phi wumpus.Formula) (bool, error) {
	k.log.WithField("clauses", len(phi)).Debug("ask: snapshotting knowledge base")
	k.enc.Snapshot()
	defer k.enc.Rewind()

	if len(phi) == 0 {
		// Nothing is entailed from nothing to prove.
		return false, nil
	}

	if len(phi) == 1 {
		for _, lit := range phi[0] {
			k.enc.Add(wumpus.Clause{lit.Not()})
		}
	} else {
		k.negateByTseytin(phi)
	}

	v, err := k.decide(ctx)
	if err != nil {
		return false, errors.Wrap(err, "ask failed")
	}
	return v == oracle.UNSAT, nil
}

// negateByTseytin asserts ¬phi = ¬C1 ∨ ... ∨ ¬Cn (phi's DNF negation) as
// CNF, introducing one fresh raw auxiliary ti per clause Ci of phi:
//
//	for every literal a in Ci:  (¬ti ∨ ¬a)     -- ti → ¬Ci, term-wise
//	{ti} ∪ Ci                                  -- ¬ti → Ci
//	{t1, ..., tn}                               -- at least one ¬Ci holds
func (k *KB) negateByTseytin(phi wumpus.Formula) {
	tseytin := make([]encoder.Literal[int], 0, len(phi))
	for _, clause := range phi {
		t := k.enc.AllocRaw()
		tseytin = append(tseytin, t)

		interned := k.enc.InternClause(clause)
		for _, lit := range interned {
			k.enc.AddRaw([]encoder.Literal[int]{t.Not(), lit.Not()})
		}

		withT := append(append([]encoder.Literal[int]{}, interned...), t)
		k.enc.AddRaw(withT)
	}
	k.enc.AddRaw(tseytin)
}

func (k *KB) decide(ctx context.Context) (oracle.Verdict, error) {
	dimacs, _ := k.enc.EmitDIMACS()
	v, err := k.oracle.Decide(ctx, dimacs, k.enc.NVars())
	if err != nil {
		return oracle.Unknown, err
	}
	return v, nil
}

// Dump renders the knowledge base's current formula for diagnostics, used
// when a consistency check fails.
func (k *KB) Dump() string {
	return k.enc.DebugString()
}

// DumpDIMACS renders the knowledge base's current formula as DIMACS CNF
// text, alongside the id→name table, for external inspection (e.g. the
// theory-dump command).
func (k *KB) DumpDIMACS() (string, []wumpus.Var) {
	return k.enc.EmitDIMACS()
}
