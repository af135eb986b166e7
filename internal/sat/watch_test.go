package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchIndexAddAndListFor(t *testing.T) {
	wi := NewWatchIndex()
	wi.Grow(8)

	l := PositiveLiteral(1)
	w := Watch{CRef: CRef(5), Blocker: PositiveLiteral(2)}
	wi.Add(l, w)

	assert.Equal(t, []Watch{w}, wi.ListFor(l))
}

func TestWatchIndexAddBinaryRegistersBothDirections(t *testing.T) {
	wi := NewWatchIndex()
	wi.Grow(8)

	l := PositiveLiteral(1)
	other := NegativeLiteral(2)
	wi.AddBinary(l, other)

	listOnNotL := wi.ListFor(l.Opposite())
	assert.Len(t, listOnNotL, 1)
	assert.True(t, listOnNotL[0].IsBinary())
	assert.Equal(t, other, listOnNotL[0].Blocker)

	listOnNotOther := wi.ListFor(other.Opposite())
	assert.Len(t, listOnNotOther, 1)
	assert.True(t, listOnNotOther[0].IsBinary())
	assert.Equal(t, l, listOnNotOther[0].Blocker)
}

func TestWatchIndexRemoveClause(t *testing.T) {
	wi := NewWatchIndex()
	wi.Grow(8)

	watched0, watched1 := PositiveLiteral(1), PositiveLiteral(2)
	ref := CRef(10)
	wi.Add(watched0.Opposite(), Watch{CRef: ref, Blocker: watched1})
	wi.Add(watched1.Opposite(), Watch{CRef: ref, Blocker: watched0})

	wi.RemoveClause(ref, watched0, watched1)

	assert.Empty(t, wi.ListFor(watched0.Opposite()))
	assert.Empty(t, wi.ListFor(watched1.Opposite()))
}
