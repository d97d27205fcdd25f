package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDIMACSRoundTrip(t *testing.T) {
	e := New[string]()
	e.Add([]Literal[string]{Pos("A"), Neg("B")})
	e.Add([]Literal[string]{Pos("B"), Pos("C")})

	text, names := e.EmitDIMACS()
	assert.Equal(t, "p cnf 3 2\n1 -2 0\n2 3 0\n", text)
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestMonotonicIntern(t *testing.T) {
	e := New[string]()
	a := e.Intern(Pos("A"))
	aAgain := e.Intern(Neg("A"))
	b := e.Intern(Pos("B"))
	c := e.Intern(Pos("C"))

	assert.Equal(t, a.Inner(), aAgain.Inner())
	assert.True(t, aAgain.Negated())
	assert.Equal(t, 1, a.Inner())
	assert.Equal(t, 2, b.Inner())
	assert.Equal(t, 3, c.Inner())
	assert.Equal(t, 3, e.NVars())
}

func TestRewindReversibility(t *testing.T) {
	e := New[string]()
	e.Add([]Literal[string]{Pos("A")})
	e.Add([]Literal[string]{Pos("B"), Neg("A")})

	before, beforeNames := e.EmitDIMACS()

	e.Snapshot()
	e.Add([]Literal[string]{Pos("Z"), Pos("A")})
	aux := e.AllocRaw()
	e.AddRaw([]Literal[int]{aux})
	e.Rewind()

	after, afterNames := e.EmitDIMACS()
	assert.Equal(t, before, after)
	assert.Equal(t, beforeNames, afterNames)
	assert.False(t, e.HasSnapshot())

	// the rewound name must be available for fresh (re-)interning again
	e.Add([]Literal[string]{Pos("Z")})
	_, names := e.EmitDIMACS()
	assert.Equal(t, []string{"A", "B", "Z"}, names)
}

func TestSnapshotMisuseAborts(t *testing.T) {
	e := New[string]()
	e.Snapshot()
	assert.Panics(t, func() { e.Snapshot() })
	e.Rewind()
	assert.Panics(t, func() { e.Rewind() })
}

func TestAllocRawHasNoName(t *testing.T) {
	e := New[string]()
	e.Add([]Literal[string]{Pos("A")})
	raw := e.AllocRaw()
	require.Equal(t, 2, raw.Inner())
	_, names := e.EmitDIMACS()
	require.Len(t, names, 2)
	assert.Equal(t, "A", names[0])
	assert.Equal(t, "", names[1])
}
