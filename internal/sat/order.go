package sat

import (
	"github.com/rhartert/yagh"
)

// order is the VSIDS variable-activity order heap: a binary max-heap over
// variables keyed by activity, backed by an indexed heap so that increasing
// a variable's key (bumping its activity) is an O(log n) reheapify rather
// than a linear search.
type order struct {
	heap *yagh.IntMap[float64]

	inc   float64 // in (0, 1e100)
	decay float64 // in (0, 1]

	vs *varState
}

func newOrder(decay float64, vs *varState) *order {
	return &order{
		heap:  yagh.New[float64](0),
		inc:   1,
		decay: decay,
		vs:    vs,
	}
}

// addVar registers a freshly created variable with its current activity in
// vs, inserting it into the heap.
func (o *order) addVar(v Var) {
	o.heap.GrowBy(1)
	o.heap.Put(int(v), -o.vs.activity[v])
	o.vs.inHeap[v] = true
}

// contains reports whether v is currently present in the heap.
func (o *order) contains(v Var) bool {
	return o.heap.Contains(int(v))
}

// reinsert adds v back to the heap, e.g. when it is unassigned by
// backtracking (invariant I5).
func (o *order) reinsert(v Var) {
	if o.vs.inHeap[v] {
		return
	}
	o.heap.Put(int(v), -o.vs.activity[v])
	o.vs.inHeap[v] = true
}

// bump increases v's activity and, if v is in the heap, its key.
// Rescales every activity (and the increment) when the threshold is
// crossed, preserving relative ordering.
func (o *order) bump(v Var) {
	o.vs.activity[v] += o.inc
	if o.vs.inHeap[v] {
		o.heap.Put(int(v), -o.vs.activity[v])
	}
	if o.vs.activity[v] > 1e100 {
		o.rescale()
	}
}

func (o *order) rescale() {
	o.inc *= 1e-100
	for v := range o.vs.activity {
		o.vs.activity[v] *= 1e-100
		if o.vs.inHeap[Var(v)] {
			o.heap.Put(v, -o.vs.activity[v])
		}
	}
}

// decayInc grows the increment so that future bumps matter exponentially more
// than past ones, without touching existing activities.
func (o *order) decayInc() {
	o.inc /= o.decay
	if o.inc > 1e100 {
		o.rescale()
	}
}

// popNext pops the highest-activity variable from the heap, discarding
// already-assigned ones lazily, and marks it absent from the heap. Returns
// (InvalidVar, false) if the heap is exhausted of unassigned variables.
func (o *order) popNext() (Var, bool) {
	for {
		next, ok := o.heap.Pop()
		if !ok {
			return InvalidVar, false
		}
		v := Var(next.Elem)
		o.vs.inHeap[v] = false
		if o.vs.value[v] != Unknown {
			continue // already assigned, discard
		}
		return v, true
	}
}
