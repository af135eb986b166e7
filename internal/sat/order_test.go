package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(n int) (*order, *varState) {
	vs := &varState{}
	vs.grow() // reserve InvalidVar
	for i := 0; i < n; i++ {
		vs.grow()
	}
	o := newOrder(0.95, vs)
	for v := 1; v <= n; v++ {
		o.addVar(Var(v))
	}
	return o, vs
}

func TestOrderPopHighestActivity(t *testing.T) {
	o, vs := newTestOrder(3)

	o.bump(Var(2))
	o.bump(Var(2))
	o.bump(Var(3))

	v, ok := o.popNext()
	require.True(t, ok)
	assert.Equal(t, Var(2), v)

	_ = vs
}

func TestOrderSkipsAssignedVars(t *testing.T) {
	o, vs := newTestOrder(2)
	vs.value[1] = True // assigned out-of-band, should be skipped

	v, ok := o.popNext()
	require.True(t, ok)
	assert.Equal(t, Var(2), v)
}

func TestOrderReinsertAfterPop(t *testing.T) {
	o, _ := newTestOrder(1)

	v, ok := o.popNext()
	require.True(t, ok)
	assert.Equal(t, Var(1), v)

	_, ok = o.popNext()
	assert.False(t, ok)

	o.reinsert(v)
	v2, ok := o.popNext()
	require.True(t, ok)
	assert.Equal(t, Var(1), v2)
}

func TestOrderRescaleOnOverflow(t *testing.T) {
	o, vs := newTestOrder(1)
	vs.activity[1] = 1e100
	o.inc = 1e99   // a bump of 1 would leave 1e100 unchanged in float64
	o.bump(Var(1)) // 1.1e100 exceeds the threshold and triggers rescale
	assert.Less(t, vs.activity[1], 1e100)
}
