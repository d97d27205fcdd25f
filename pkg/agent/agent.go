// Package agent implements the Hero: the thin reasoning loop that turns
// percepts into ground clauses, queries the knowledge base about cell
// safety, and uses cached inferences plus A* planning to choose actions.
package agent

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"

	log "github.com/sirupsen/logrus"

	"github.com/LucaSforza/Wumpus-World/pkg/encoder"
	"github.com/LucaSforza/Wumpus-World/pkg/kb"
	"github.com/LucaSforza/Wumpus-World/pkg/planner"
	"github.com/LucaSforza/Wumpus-World/pkg/wumpus"
)

// Objective is the Hero's current high-level goal.
type Objective int

const (
	TakeGold Objective = iota
	GoHome
)

func (o Objective) String() string {
	if o == GoHome {
		return "GoHome"
	}
	return "TakeGold"
}

var (
	// ErrInconsistentKB means the knowledge base itself is unsatisfiable:
	// a theory bug, fatal by spec.
	ErrInconsistentKB = errors.New("knowledge base is inconsistent")
	// ErrNoActionPossible means candidate-action enumeration and safety
	// expansion left nothing to choose from.
	ErrNoActionPossible = errors.New("no legal action available")
	// ErrNoPlanHome means the GoHome objective could not find a path
	// through visited-safe cells back to the origin, which spec.md
	// treats as a contract violation (one must always exist).
	ErrNoPlanHome = errors.New("no plan back to the origin exists")
)

const (
	posInf = math.MaxInt32
	negInf = math.MinInt32
)

var origin = wumpus.NewPosition(0, 0)

type safetyState int

const (
	stateUndetermined safetyState = iota
	stateSafe
	stateUnsafe
)

// Hero is the Wumpus-World reasoning agent.
type Hero struct {
	kb        *kb.KB
	obj       Objective
	boardSize int
	turn      int

	visited  map[wumpus.Position]struct{}
	safe     map[wumpus.Position]struct{}
	unsafe   map[wumpus.Position]struct{}
	wumpusAt *wumpus.Position

	plan []wumpus.Position

	rng *rand.Rand
	log log.FieldLogger
}

// New returns a Hero backed by k, reasoning over a boardSize×boardSize
// grid. (0,0) starts cached Safe, matching the world theory's own axiom.
func New(k *kb.KB, boardSize int, rng *rand.Rand) *Hero {
	h := &Hero{
		kb:        k,
		obj:       TakeGold,
		boardSize: boardSize,
		visited:   map[wumpus.Position]struct{}{},
		safe:      map[wumpus.Position]struct{}{origin: {}},
		unsafe:    map[wumpus.Position]struct{}{},
		rng:       rng,
		log:       log.StandardLogger(),
	}
	return h
}

// SetLogger overrides the Hero's logger.
func (h *Hero) SetLogger(l log.FieldLogger) {
	h.log = l
}

// Objective reports the Hero's current high-level goal.
func (h *Hero) Objective() Objective { return h.obj }

// WumpusLocation reports the Wumpus's location, if the Hero has
// disambiguated it from a mere "Wumpus or Pit" inference.
func (h *Hero) WumpusLocation() (wumpus.Position, bool) {
	if h.wumpusAt == nil {
		return wumpus.Position{}, false
	}
	return *h.wumpusAt, true
}

// NextAction runs one full turn: consistency check, percept assertion,
// candidate enumeration, transitive safety expansion, plan maintenance,
// and utility-maximizing action selection.
func (h *Hero) NextAction(ctx context.Context, p wumpus.Perception) (wumpus.Action, error) {
	h.turn++
	turnLog := h.log.WithField("turn", h.turn).WithField("cell", p.Position.String())
	h.boardSize = p.BoardSize
	cell := p.Position

	ok, err := h.kb.Consistency(ctx)
	if err != nil {
		return wumpus.Action{}, err
	}
	if !ok {
		turnLog.Error(h.kb.Dump())
		return wumpus.Action{}, ErrInconsistentKB
	}

	h.assertGroundTruth(p)
	h.visited[cell] = struct{}{}

	chosen, toConsider := h.enumerateCandidates(cell, p)

	for _, a := range toConsider {
		if a.Kind == wumpus.ActionGrab {
			chosen = append(chosen, a)
			continue
		}
		nb := cell.Move(a.Direction)
		state, err := h.checkSafety(ctx, nb, cell, true)
		if err != nil {
			return wumpus.Action{}, err
		}
		if state == stateSafe {
			chosen = append(chosen, a)
		}
	}

	if len(chosen) == 0 {
		return wumpus.Action{}, ErrNoActionPossible
	}

	for len(h.plan) > 0 && h.plan[0] == cell {
		h.plan = h.plan[1:]
	}
	if len(h.plan) == 0 {
		if err := h.maintainPlan(cell); err != nil {
			return wumpus.Action{}, err
		}
	}

	best := h.pickBest(chosen, cell)
	turnLog.WithField("objective", h.obj.String()).WithField("action", best.String()).Debug("selected action")
	return best, nil
}

// assertGroundTruth tells the knowledge base the literal truth of this
// turn's percept at the hero's current cell.
func (h *Hero) assertGroundTruth(p wumpus.Perception) {
	cell := p.Position
	formula := wumpus.Formula{}
	if p.Breeze {
		formula = append(formula, wumpus.Unit(encoder.Pos(wumpus.Breeze(cell))))
	} else {
		formula = append(formula, wumpus.Unit(encoder.Neg(wumpus.Breeze(cell))))
	}
	if p.Stench {
		formula = append(formula, wumpus.Unit(encoder.Pos(wumpus.Stench(cell))))
	} else {
		formula = append(formula, wumpus.Unit(encoder.Neg(wumpus.Stench(cell))))
	}
	if p.Glitter {
		formula = append(formula, wumpus.Unit(encoder.Pos(wumpus.Gold(cell))))
	}
	h.kb.Tell(formula)
}

// enumerateCandidates splits the legal actions at cell into those already
// known Safe (chosen outright) and the rest (toConsider): moves whose
// destination needs a KB query, plus Grab when there is glitter.
func (h *Hero) enumerateCandidates(cell wumpus.Position, p wumpus.Perception) (chosen, toConsider []wumpus.Action) {
	if cell == origin {
		chosen = append(chosen, wumpus.Exit())
	}
	if p.Glitter {
		toConsider = append(toConsider, wumpus.Grab())
		h.obj = GoHome
	}

	for _, d := range wumpus.AllDirections {
		if !cell.CanMove(d, h.boardSize) {
			continue
		}
		nb := cell.Move(d)
		if _, bad := h.unsafe[nb]; bad {
			continue
		}
		if _, ok := h.safe[nb]; ok {
			chosen = append(chosen, wumpus.Move(d))
		} else {
			toConsider = append(toConsider, wumpus.Move(d))
		}
	}
	return chosen, toConsider
}

// checkSafety implements is_safe(p, origin) from the spec: a cached
// lookup, falling back to KB queries that, on resolving p as unsafe,
// disambiguate Wumpus vs Pit and then re-query neighbors one level deep
// (expand controls whether this call performs that re-query, so the
// re-query calls themselves — made with expand=false — cannot recurse
// further).
func (h *Hero) checkSafety(ctx context.Context, p, origin wumpus.Position, expand bool) (safetyState, error) {
	if _, ok := h.safe[p]; ok {
		return stateSafe, nil
	}
	if _, ok := h.unsafe[p]; ok {
		return stateUnsafe, nil
	}

	safeQuery := wumpus.Formula{wumpus.Unit(encoder.Pos(wumpus.Safe(p)))}
	isSafe, err := h.kb.Ask(ctx, safeQuery)
	if err != nil {
		return stateUndetermined, err
	}
	if isSafe {
		h.kb.Tell(safeQuery)
		h.safe[p] = struct{}{}
		return stateSafe, nil
	}

	dangerQuery := wumpus.Formula{{encoder.Pos(wumpus.Wumpus(p)), encoder.Pos(wumpus.Pit(p))}}
	isDangerous, err := h.kb.Ask(ctx, dangerQuery)
	if err != nil {
		return stateUndetermined, err
	}
	if !isDangerous {
		return stateUndetermined, nil
	}
	h.kb.Tell(dangerQuery)
	h.unsafe[p] = struct{}{}

	isWumpus, err := h.kb.Ask(ctx, wumpus.Formula{wumpus.Unit(encoder.Pos(wumpus.Wumpus(p)))})
	if err != nil {
		return stateUndetermined, err
	}
	if isWumpus {
		h.kb.Tell(wumpus.Formula{wumpus.Unit(encoder.Pos(wumpus.Wumpus(p)))})
		pos := p
		h.wumpusAt = &pos
	} else {
		h.kb.Tell(wumpus.Formula{wumpus.Unit(encoder.Pos(wumpus.Pit(p)))})
	}

	if expand {
		for _, nb := range dedup(append(wumpus.Neighbors(p, h.boardSize), wumpus.Neighbors(origin, h.boardSize)...)) {
			if _, err := h.checkSafety(ctx, nb, origin, false); err != nil {
				return stateUnsafe, err
			}
		}
	}

	return stateUnsafe, nil
}

func dedup(ps []wumpus.Position) []wumpus.Position {
	seen := make(map[wumpus.Position]struct{}, len(ps))
	out := ps[:0]
	for _, p := range ps {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// maintainPlan requests a fresh plan from the planner when the current
// one is empty: the nearest safe-but-unvisited cell under TakeGold, or
// the origin under GoHome. Exhausting the safe-unvisited frontier flips
// the objective to GoHome.
func (h *Hero) maintainPlan(cell wumpus.Position) error {
	if h.obj == TakeGold {
		var unvisited []wumpus.Position
		for pos := range h.safe {
			if _, seen := h.visited[pos]; !seen {
				unvisited = append(unvisited, pos)
			}
		}
		if path, ok := planner.NearestUnvisited(cell, unvisited, h.safe); ok {
			h.plan = path
			return nil
		}
		h.obj = GoHome
	}

	path, ok := planner.Plan(cell, origin, h.safe)
	if !ok {
		return ErrNoPlanHome
	}
	h.plan = path
	return nil
}

// pickBest scores every action by utility and returns the max, breaking
// ties uniformly at random via reservoir sampling.
func (h *Hero) pickBest(actions []wumpus.Action, cell wumpus.Position) wumpus.Action {
	best := actions[0]
	bestUtility := h.utility(best, cell)
	ties := 1
	for _, a := range actions[1:] {
		u := h.utility(a, cell)
		switch {
		case u > bestUtility:
			best, bestUtility, ties = a, u, 1
		case u == bestUtility:
			ties++
			if h.rng.IntN(ties) == 0 {
				best = a
			}
		}
	}
	return best
}

func (h *Hero) planIndex(pos wumpus.Position) int {
	for i, p := range h.plan {
		if p == pos {
			return i
		}
	}
	return -1
}

// utility scores a candidate action per the objective-specific payoff
// table in spec.md §6.
func (h *Hero) utility(a wumpus.Action, cell wumpus.Position) int {
	switch h.obj {
	case TakeGold:
		switch a.Kind {
		case wumpus.ActionGrab:
			return posInf
		case wumpus.ActionExit:
			return negInf
		case wumpus.ActionMove:
			dest := cell.Move(a.Direction)
			if _, seen := h.visited[dest]; !seen {
				return 1
			}
			if idx := h.planIndex(dest); idx >= 0 {
				return -(len(h.plan) - idx - 1)
			}
			return negInf
		default:
			return negInf
		}
	case GoHome:
		switch a.Kind {
		case wumpus.ActionExit, wumpus.ActionGrab:
			return posInf
		case wumpus.ActionMove:
			dest := cell.Move(a.Direction)
			if h.planIndex(dest) >= 0 {
				return -origin.Manhattan(dest)
			}
			return negInf
		case wumpus.ActionShoot:
			return negInf
		default:
			return negInf
		}
	default:
		return negInf
	}
}
