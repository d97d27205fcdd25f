package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucaSforza/Wumpus-World/pkg/wumpus"
)

func set(ps ...wumpus.Position) map[wumpus.Position]struct{} {
	m := make(map[wumpus.Position]struct{}, len(ps))
	for _, p := range ps {
		m[p] = struct{}{}
	}
	return m
}

func TestPlanStraightLine(t *testing.T) {
	traversable := set(
		wumpus.NewPosition(0, 0),
		wumpus.NewPosition(1, 0),
		wumpus.NewPosition(2, 0),
	)
	path, ok := Plan(wumpus.NewPosition(0, 0), wumpus.NewPosition(2, 0), traversable)
	require.True(t, ok)
	assert.Equal(t, []wumpus.Position{
		wumpus.NewPosition(0, 0),
		wumpus.NewPosition(1, 0),
		wumpus.NewPosition(2, 0),
	}, path)
}

func TestPlanSameCell(t *testing.T) {
	path, ok := Plan(wumpus.NewPosition(0, 0), wumpus.NewPosition(0, 0), nil)
	require.True(t, ok)
	assert.Equal(t, []wumpus.Position{wumpus.NewPosition(0, 0)}, path)
}

func TestPlanUnreachable(t *testing.T) {
	traversable := set(wumpus.NewPosition(0, 0))
	_, ok := Plan(wumpus.NewPosition(0, 0), wumpus.NewPosition(5, 5), traversable)
	assert.False(t, ok)
}

func TestNearestUnvisitedPicksShortest(t *testing.T) {
	traversable := set(
		wumpus.NewPosition(0, 0),
		wumpus.NewPosition(1, 0),
		wumpus.NewPosition(0, 1),
		wumpus.NewPosition(1, 1),
	)
	targets := []wumpus.Position{wumpus.NewPosition(1, 1), wumpus.NewPosition(1, 0)}
	path, ok := NearestUnvisited(wumpus.NewPosition(0, 0), targets, traversable)
	require.True(t, ok)
	assert.Equal(t, wumpus.NewPosition(1, 0), path[len(path)-1])
}
