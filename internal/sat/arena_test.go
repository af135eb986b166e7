package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAllocAndLits(t *testing.T) {
	a := NewArena(0)
	lits := []Literal{PositiveLiteral(1), NegativeLiteral(2), PositiveLiteral(3)}

	ref := a.Alloc(lits, false)
	require.NotEqual(t, InvalidCRef, ref)

	assert.Equal(t, 3, a.Size(ref))
	assert.False(t, a.IsLearned(ref))
	assert.Equal(t, lits, a.Lits(ref))
}

func TestArenaLearnedFlagAndLBD(t *testing.T) {
	a := NewArena(0)
	ref := a.Alloc([]Literal{PositiveLiteral(1), PositiveLiteral(2)}, true)

	assert.True(t, a.IsLearned(ref))

	a.SetLBD(ref, 3)
	assert.Equal(t, uint32(3), a.LBD(ref))

	a.SetGlue(ref, true)
	assert.True(t, a.IsGlue(ref))
	a.SetGlue(ref, false)
	assert.False(t, a.IsGlue(ref))
}

func TestArenaActivityRoundTrip(t *testing.T) {
	a := NewArena(0)
	ref := a.Alloc([]Literal{PositiveLiteral(1), PositiveLiteral(2)}, true)

	a.SetActivity(ref, 1.5)
	assert.InDelta(t, float32(1.5), a.Activity(ref), 1e-9)
}

func TestArenaSwapAndSetLit(t *testing.T) {
	a := NewArena(0)
	l1, l2, l3 := PositiveLiteral(1), PositiveLiteral(2), PositiveLiteral(3)
	ref := a.Alloc([]Literal{l1, l2, l3}, false)

	a.Swap(ref, 0, 2)
	assert.Equal(t, []Literal{l3, l2, l1}, a.Lits(ref))

	a.SetLit(ref, 1, PositiveLiteral(9))
	assert.Equal(t, Literal(PositiveLiteral(9)), a.Lit(ref, 1))
}

func TestArenaTruncate(t *testing.T) {
	a := NewArena(0)
	ref := a.Alloc([]Literal{PositiveLiteral(1), PositiveLiteral(2), PositiveLiteral(3)}, false)

	a.Truncate(ref, 2)
	assert.Equal(t, 2, a.Size(ref))
	assert.Equal(t, uint32(1), a.Wasted())
}

func TestArenaDeleteAndGC(t *testing.T) {
	a := NewArena(0)
	keep := a.Alloc([]Literal{PositiveLiteral(1), PositiveLiteral(2)}, false)
	drop := a.Alloc([]Literal{PositiveLiteral(3), PositiveLiteral(4)}, false)
	keep2 := a.Alloc([]Literal{PositiveLiteral(5), PositiveLiteral(6)}, false)

	a.Delete(drop)
	assert.True(t, a.IsDeleted(drop))

	relocated := map[CRef]CRef{}
	a.GC(func(old, new CRef) {
		relocated[old] = new
	})

	assert.Equal(t, uint32(0), a.Wasted())
	_, keepMoved := relocated[keep]
	_, keep2Moved := relocated[keep2]
	assert.True(t, keepMoved)
	assert.True(t, keep2Moved)
	assert.Equal(t, []Literal{PositiveLiteral(1), PositiveLiteral(2)}, a.Lits(relocated[keep]))
	assert.Equal(t, []Literal{PositiveLiteral(5), PositiveLiteral(6)}, a.Lits(relocated[keep2]))
}

func TestArenaMaxWordsRejectsOverflow(t *testing.T) {
	a := NewArena(4) // 2 reserved words leave less room than one 3-word header
	ref := a.Alloc([]Literal{PositiveLiteral(1), PositiveLiteral(2), PositiveLiteral(3)}, false)
	assert.Equal(t, InvalidCRef, ref)
}
