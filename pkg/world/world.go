// Package world supplements the spec's "external collaborator" World with
// a concrete dungeon simulator, grounded on original_source/src/world.rs:
// random placement of a single Wumpus, a single Gold, and a configurable
// number of pits; percept derivation; and action execution with the same
// fatal conditions the source enforces (death on Pit/Wumpus, illegal
// Grab, illegal Exit location).
package world

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/LucaSforza/Wumpus-World/pkg/wumpus"
)

type entity int

const (
	entityNone entity = iota
	entityPit
	entityWumpus
	entityGold
)

// DeathError is returned by Act when the hero's move lands on a Pit or
// the Wumpus.
type DeathError struct {
	Pos wumpus.Position
}

func (e *DeathError) Error() string {
	return fmt.Sprintf("the hero died at %s", e.Pos)
}

// ContractViolationError covers every other fatal world-contract breach:
// a move off the board, an illegal Grab, a Shoot, an Exit attempted
// outside the origin, or an unknown action.
type ContractViolationError struct {
	msg string
}

func (e *ContractViolationError) Error() string { return e.msg }

// Exited is returned by Act when the hero successfully exits the
// dungeon; WithGold distinguishes the two success cases spec.md's exit
// codes must log separately.
type Exited struct {
	WithGold bool
}

func (e *Exited) Error() string {
	if e.WithGold {
		return "the hero exited the dungeon with the gold"
	}
	return "the hero exited the dungeon without the gold"
}

// World is a square dungeon of entities, plus the hero's current state.
type World struct {
	size      int
	dungeon   [][]entity
	heroPos   wumpus.Position
	hasGold   bool
	goldTaken bool
	hasArrow  bool
}

// New builds a random dungeon of the given size with pitCount pits, one
// Wumpus, and one Gold, none of them on the origin cell or on top of each
// other. rng is the placement source (injected so callers can seed it
// deterministically).
func New(size, pitCount int, rng *rand.Rand) (*World, error) {
	if size <= 0 {
		return nil, errors.New("board size must be positive")
	}
	if size*size <= pitCount+2 {
		return nil, errors.New("board too small for the requested pit count")
	}

	dungeon := make([][]entity, size)
	for i := range dungeon {
		dungeon[i] = make([]entity, size)
	}

	placeRandom := func(e entity) {
		for {
			x, y := rng.IntN(size), rng.IntN(size)
			if x == 0 && y == 0 {
				continue
			}
			if dungeon[y][x] != entityNone {
				continue
			}
			dungeon[y][x] = e
			return
		}
	}

	for i := 0; i < pitCount; i++ {
		placeRandom(entityPit)
	}
	placeRandom(entityWumpus)
	placeRandom(entityGold)

	return &World{
		size:     size,
		dungeon:  dungeon,
		heroPos:  wumpus.NewPosition(0, 0),
		hasGold:  true,
		hasArrow: true,
	}, nil
}

func (w *World) at(p wumpus.Position) entity {
	return w.dungeon[p.Y][p.X]
}

// Perceive derives the percept vector for the hero's current cell.
func (w *World) Perceive() wumpus.Perception {
	p := wumpus.Perception{
		Position:  w.heroPos,
		BoardSize: w.size,
		Glitter:   w.at(w.heroPos) == entityGold,
	}
	for _, nb := range wumpus.Neighbors(w.heroPos, w.size) {
		switch w.at(nb) {
		case entityPit:
			p.Breeze = true
		case entityWumpus:
			p.Stench = true
		}
	}
	return p
}

// Act executes action against the dungeon, mutating hero position and
// dungeon contents as appropriate. A non-nil error is always one of
// *DeathError, *ContractViolationError, or *Exited (the last on success);
// callers type-switch on it to pick a process exit code.
func (w *World) Act(action wumpus.Action) error {
	switch action.Kind {
	case wumpus.ActionMove:
		if !w.heroPos.CanMove(action.Direction, w.size) {
			return &ContractViolationError{msg: fmt.Sprintf("illegal move %s from %s", action.Direction, w.heroPos)}
		}
		w.heroPos = w.heroPos.Move(action.Direction)
		if e := w.at(w.heroPos); e == entityPit || e == entityWumpus {
			return &DeathError{Pos: w.heroPos}
		}
		return nil

	case wumpus.ActionGrab:
		if w.at(w.heroPos) != entityGold {
			return &ContractViolationError{msg: fmt.Sprintf("grab attempted at %s where there is no gold", w.heroPos)}
		}
		w.dungeon[w.heroPos.Y][w.heroPos.X] = entityNone
		w.goldTaken = true
		return nil

	case wumpus.ActionShoot:
		return &ContractViolationError{msg: "arrow mechanics are not implemented"}

	case wumpus.ActionExit:
		if w.heroPos != wumpus.NewPosition(0, 0) {
			return &ContractViolationError{msg: fmt.Sprintf("illegal exit from %s, only (0,0) is a valid exit", w.heroPos)}
		}
		return &Exited{WithGold: w.goldTaken}

	default:
		return &ContractViolationError{msg: "unknown action"}
	}
}

func (w *World) String() string {
	out := ""
	for y, row := range w.dungeon {
		for x, e := range row {
			switch {
			case w.heroPos == wumpus.NewPosition(x, y):
				out += "H "
			case e == entityPit:
				out += "O "
			case e == entityWumpus:
				out += "W "
			case e == entityGold:
				out += "G "
			default:
				out += ". "
			}
		}
		out += "\n"
	}
	return out
}
