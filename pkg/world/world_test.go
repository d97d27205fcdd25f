package world

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucaSforza/Wumpus-World/pkg/wumpus"
)

func newDeterministicWorld(t *testing.T, size, pits int, seed uint64) *World {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed))
	w, err := New(size, pits, rng)
	require.NoError(t, err)
	return w
}

func TestOriginNeverHoldsAnEntity(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		w := newDeterministicWorld(t, 4, 2, seed)
		assert.Equal(t, entityNone, w.at(wumpus.NewPosition(0, 0)))
	}
}

func TestPerceiveReflectsNeighbors(t *testing.T) {
	w := newDeterministicWorld(t, 4, 0, 1)
	w.dungeon[0][1] = entityPit
	p := w.Perceive()
	assert.True(t, p.Breeze)
	assert.False(t, p.Stench)
}

func TestActMoveIntoPitIsDeath(t *testing.T) {
	w := newDeterministicWorld(t, 4, 0, 1)
	w.dungeon[0][1] = entityPit
	err := w.Act(wumpus.Move(wumpus.East))
	var death *DeathError
	require.ErrorAs(t, err, &death)
}

func TestActGrabWithoutGoldIsContractViolation(t *testing.T) {
	w := newDeterministicWorld(t, 4, 0, 1)
	err := w.Act(wumpus.Grab())
	var violation *ContractViolationError
	require.ErrorAs(t, err, &violation)
}

func TestActExitOutsideOriginIsContractViolation(t *testing.T) {
	w := newDeterministicWorld(t, 4, 0, 1)
	require.NoError(t, w.Act(wumpus.Move(wumpus.East)))
	err := w.Act(wumpus.Exit())
	var violation *ContractViolationError
	require.ErrorAs(t, err, &violation)
}

func TestActExitAtOriginSucceeds(t *testing.T) {
	w := newDeterministicWorld(t, 4, 0, 1)
	err := w.Act(wumpus.Exit())
	var exited *Exited
	require.ErrorAs(t, err, &exited)
	assert.False(t, exited.WithGold)
}
