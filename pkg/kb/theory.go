package kb

import "github.com/LucaSforza/Wumpus-World/pkg/wumpus"

// BuildTheory asserts the fixed Wumpus-World axioms for an n×n grid into
// k: unique Wumpus, unique Gold, a safe start cell, the breeze/stench
// physics, and the definition of safety. Order of emission does not
// affect correctness; axioms are streamed clause-by-clause rather than
// materialized per-cell.
func BuildTheory(k *KB, n int) {
	cells := allCells(n)

	assertAtLeastOne(k, cells, wumpus.Wumpus)
	assertAtMostOne(k, cells, wumpus.Wumpus)
	assertAtLeastOne(k, cells, wumpus.Gold)
	assertAtMostOne(k, cells, wumpus.Gold)

	k.Tell(wumpus.Formula{wumpus.Unit(wumpus.Pos(wumpus.Safe(wumpus.NewPosition(0, 0))))})

	for _, c := range cells {
		assertPhysics(k, c, n, wumpus.Breeze, wumpus.Pit)
		assertPhysics(k, c, n, wumpus.Stench, wumpus.Wumpus)
		assertSafetyDefinition(k, c)
	}
}

func allCells(n int) []wumpus.Position {
	cells := make([]wumpus.Position, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cells = append(cells, wumpus.NewPosition(i, j))
		}
	}
	return cells
}

// assertAtLeastOne asserts ⋁_c pred(c) over every cell in cells.
func assertAtLeastOne(k *KB, cells []wumpus.Position, pred func(wumpus.Position) wumpus.Var) {
	clause := make(wumpus.Clause, 0, len(cells))
	for _, c := range cells {
		clause = append(clause, wumpus.Pos(pred(c)))
	}
	k.Tell(wumpus.Formula{clause})
}

// assertAtMostOne asserts ¬pred(c1) ∨ ¬pred(c2) for every distinct pair.
func assertAtMostOne(k *KB, cells []wumpus.Position, pred func(wumpus.Position) wumpus.Var) {
	for i, c1 := range cells {
		for _, c2 := range cells[i+1:] {
			k.Tell(wumpus.Formula{{wumpus.Neg(pred(c1)), wumpus.Neg(pred(c2))}})
		}
	}
}

// assertPhysics asserts the biconditional percept(c) ↔ ⋁_{c' adj c} cause(c'):
//
//	(a) for each neighbor c': ¬cause(c') ∨ percept(c)
//	(b) one clause: ¬percept(c) ∨ ⋁_{c' adj c} cause(c')
func assertPhysics(k *KB, c wumpus.Position, n int, percept, cause func(wumpus.Position) wumpus.Var) {
	neighbors := wumpus.Neighbors(c, n)

	backward := make(wumpus.Clause, 0, len(neighbors)+1)
	backward = append(backward, wumpus.Neg(percept(c)))
	for _, nb := range neighbors {
		k.Tell(wumpus.Formula{{wumpus.Neg(cause(nb)), wumpus.Pos(percept(c))}})
		backward = append(backward, wumpus.Pos(cause(nb)))
	}
	k.Tell(wumpus.Formula{backward})
}

// assertSafetyDefinition asserts the three safety clauses for cell c.
func assertSafetyDefinition(k *KB, c wumpus.Position) {
	k.Tell(wumpus.Formula{
		{wumpus.Pos(wumpus.Safe(c)), wumpus.Pos(wumpus.Wumpus(c)), wumpus.Pos(wumpus.Pit(c))},
		{wumpus.Neg(wumpus.Safe(c)), wumpus.Neg(wumpus.Pit(c))},
		{wumpus.Neg(wumpus.Safe(c)), wumpus.Neg(wumpus.Wumpus(c))},
	})
}
