package kb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucaSforza/Wumpus-World/pkg/oracle"
	"github.com/LucaSforza/Wumpus-World/pkg/wumpus"
)

func newTestKB() *KB {
	return New(oracle.GiniOracle{})
}

func TestEmptyFormulaAskIsFalse(t *testing.T) {
	k := newTestKB()
	k.Tell(wumpus.Formula{wumpus.Unit(wumpus.Pos(wumpus.Safe(wumpus.NewPosition(0, 0))))})

	got, err := k.Ask(context.Background(), wumpus.Formula{})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestUnitAsk(t *testing.T) {
	k := newTestKB()
	a := wumpus.Safe(wumpus.NewPosition(0, 0))
	k.Tell(wumpus.Formula{wumpus.Unit(wumpus.Pos(a))})

	before, beforeNames := k.enc.EmitDIMACS()

	got, err := k.Ask(context.Background(), wumpus.Formula{wumpus.Unit(wumpus.Pos(a))})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = k.Ask(context.Background(), wumpus.Formula{wumpus.Unit(wumpus.Neg(a))})
	require.NoError(t, err)
	assert.False(t, got)

	after, afterNames := k.enc.EmitDIMACS()
	assert.Equal(t, before, after)
	assert.Equal(t, beforeNames, afterNames)
}

func TestMultiClauseTseytinAsk(t *testing.T) {
	k := newTestKB()
	a := wumpus.Safe(wumpus.NewPosition(0, 0))
	b := wumpus.Safe(wumpus.NewPosition(0, 1))
	k.Tell(wumpus.Formula{
		{wumpus.Pos(a), wumpus.Pos(b)},
		{wumpus.Neg(a)},
	})

	before, _ := k.enc.EmitDIMACS()

	got, err := k.Ask(context.Background(), wumpus.Formula{wumpus.Unit(wumpus.Pos(b)), wumpus.Unit(wumpus.Pos(b))})
	require.NoError(t, err)
	assert.True(t, got)

	after, _ := k.enc.EmitDIMACS()
	assert.Equal(t, before, after)
}

func TestConsistency(t *testing.T) {
	k := newTestKB()
	a := wumpus.Safe(wumpus.NewPosition(0, 0))
	k.Tell(wumpus.Formula{
		wumpus.Unit(wumpus.Pos(a)),
		wumpus.Unit(wumpus.Neg(a)),
	})
	ok, err := k.Consistency(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAskPurityAcrossMixedCalls(t *testing.T) {
	k := New(oracle.GiniOracle{})
	BuildTheory(k, 2)

	before, beforeNames := k.enc.EmitDIMACS()
	for i := 0; i < 3; i++ {
		_, err := k.Ask(context.Background(), wumpus.Formula{wumpus.Unit(wumpus.Pos(wumpus.Safe(wumpus.NewPosition(1, 0))))})
		require.NoError(t, err)
	}
	after, afterNames := k.enc.EmitDIMACS()
	assert.Equal(t, before, after)
	assert.Equal(t, beforeNames, afterNames)
}

func TestWorldTheoryConsistentForSmallBoards(t *testing.T) {
	for n := 2; n <= 6; n++ {
		k := New(oracle.GiniOracle{})
		BuildTheory(k, n)
		ok, err := k.Consistency(context.Background())
		require.NoError(t, err)
		assert.Truef(t, ok, "theory for board size %d should be satisfiable", n)
	}
}

func Test2x2SafetyEntailment(t *testing.T) {
	k := New(oracle.GiniOracle{})
	BuildTheory(k, 2)

	origin := wumpus.NewPosition(0, 0)
	k.Tell(wumpus.Formula{wumpus.Unit(wumpus.Neg(wumpus.Breeze(origin)))})
	k.Tell(wumpus.Formula{wumpus.Unit(wumpus.Neg(wumpus.Stench(origin)))})

	for _, pos := range []wumpus.Position{wumpus.NewPosition(0, 1), wumpus.NewPosition(1, 0)} {
		got, err := k.Ask(context.Background(), wumpus.Formula{wumpus.Unit(wumpus.Pos(wumpus.Safe(pos)))})
		require.NoError(t, err)
		assert.Truef(t, got, "expected %s to be entailed safe", pos)
	}
}

func TestUnsafeDisambiguation3x3(t *testing.T) {
	k := New(oracle.GiniOracle{})
	BuildTheory(k, 3)

	// Drive the disjunction straight from the physics: a breeze at (0,0)
	// implies a pit at one of its neighbors (0,1) or (1,0), and ruling
	// out a pit at (0,1) leaves (1,0) as the only possible cause.
	origin := wumpus.NewPosition(0, 0)
	k.Tell(wumpus.Formula{wumpus.Unit(wumpus.Pos(wumpus.Breeze(origin)))})
	k.Tell(wumpus.Formula{wumpus.Unit(wumpus.Neg(wumpus.Pit(wumpus.NewPosition(0, 1))))})

	pos := wumpus.NewPosition(1, 0)
	got, err := k.Ask(context.Background(), wumpus.Formula{{wumpus.Pos(wumpus.Wumpus(pos)), wumpus.Pos(wumpus.Pit(pos))}})
	require.NoError(t, err)
	assert.True(t, got)
}
