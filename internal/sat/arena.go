package sat

import "math"

// clauseFlags packs boolean clause metadata into the low bits of a header
// word, alongside the clause's literal count in the high bits.
type clauseFlags uint32

const (
	flagLearned clauseFlags = 1 << iota
	flagDeleted
	flagGlue
	flagFrozen
)

const sizeShift = 4 // low 4 bits are flags, rest is the literal count

// Arena is a monotonically growing, bump-allocated store of 32-bit words
// holding clause headers and their literal bodies contiguously. Word
// offsets 0 and 1 are reserved (0 is InvalidCRef, 1 is BinaryConflict) and
// never allocated into.
//
// Per-clause layout, starting at the CRef offset:
//
//	word 0: size<<sizeShift | flags
//	word 1: lbd
//	word 2: activity (IEEE-754 bits of a float32)
//	word 3..3+size-1: literals, one per word
type Arena struct {
	words    []uint32
	wasted   uint32
	maxWords uint32 // 0 means unbounded
}

// clauseHeaderWords is the number of header words preceding the literals.
const clauseHeaderWords = 3

// NewArena returns an empty arena. maxWords, if non-zero, bounds the total
// number of words the arena may ever hold (the MAX_CLAUSES capacity guard).
func NewArena(maxWords uint32) *Arena {
	return &Arena{
		words:    make([]uint32, 2, 256),
		maxWords: maxWords,
	}
}

// Reserve preallocates backing capacity for at least minWords additional
// words, to avoid repeated geometric growth when the problem size is known
// up front.
func (a *Arena) Reserve(minWords int) {
	if cap(a.words)-len(a.words) >= minWords {
		return
	}
	grown := make([]uint32, len(a.words), len(a.words)+minWords)
	copy(grown, a.words)
	a.words = grown
}

// Alloc appends a clause header and body to the arena and returns its
// CRef. It returns InvalidCRef if the allocation would exceed maxWords.
func (a *Arena) Alloc(lits []Literal, learned bool) CRef {
	need := clauseHeaderWords + len(lits)
	if a.maxWords != 0 && uint32(len(a.words)+need) > a.maxWords {
		return InvalidCRef
	}

	ref := CRef(len(a.words))

	var flags clauseFlags
	if learned {
		flags |= flagLearned
	}
	header := uint32(len(lits))<<sizeShift | uint32(flags)

	a.words = append(a.words, header, 0, math.Float32bits(0))
	for _, l := range lits {
		a.words = append(a.words, uint32(l))
	}
	return ref
}

func (a *Arena) header(ref CRef) uint32 {
	return a.words[ref]
}

func (a *Arena) setHeader(ref CRef, h uint32) {
	a.words[ref] = h
}

// Size returns the number of literals in the clause.
func (a *Arena) Size(ref CRef) int {
	return int(a.header(ref) >> sizeShift)
}

func (a *Arena) flags(ref CRef) clauseFlags {
	return clauseFlags(a.header(ref) & (1<<sizeShift - 1))
}

func (a *Arena) setFlag(ref CRef, f clauseFlags) {
	a.setHeader(ref, a.header(ref)|uint32(f))
}

func (a *Arena) clearFlag(ref CRef, f clauseFlags) {
	a.setHeader(ref, a.header(ref)&^uint32(f))
}

// IsLearned reports whether the clause was produced by conflict analysis.
func (a *Arena) IsLearned(ref CRef) bool {
	return a.flags(ref)&flagLearned != 0
}

// IsDeleted reports whether the clause has been logically deleted (its
// words remain allocated until a GC pass reclaims them).
func (a *Arena) IsDeleted(ref CRef) bool {
	return a.flags(ref)&flagDeleted != 0
}

// IsGlue reports whether the clause is flagged as a glue clause (LBD <=
// glue_lbd), exempting it from unconditional reducer deletion.
func (a *Arena) IsGlue(ref CRef) bool {
	return a.flags(ref)&flagGlue != 0
}

// SetGlue flags or unflags the clause as glue.
func (a *Arena) SetGlue(ref CRef, glue bool) {
	if glue {
		a.setFlag(ref, flagGlue)
	} else {
		a.clearFlag(ref, flagGlue)
	}
}

// IsFrozen reports whether the clause is protected from the current
// reduction pass (e.g. because it is currently a propagation reason).
func (a *Arena) IsFrozen(ref CRef) bool {
	return a.flags(ref)&flagFrozen != 0
}

// SetFrozen flags or unflags the clause as frozen.
func (a *Arena) SetFrozen(ref CRef, frozen bool) {
	if frozen {
		a.setFlag(ref, flagFrozen)
	} else {
		a.clearFlag(ref, flagFrozen)
	}
}

// LBD returns the clause's recorded Literal Block Distance.
func (a *Arena) LBD(ref CRef) uint32 {
	return a.words[ref+1]
}

// SetLBD updates the clause's recorded LBD.
func (a *Arena) SetLBD(ref CRef, lbd uint32) {
	a.words[ref+1] = lbd
}

// Activity returns the clause's activity score.
func (a *Arena) Activity(ref CRef) float32 {
	return math.Float32frombits(a.words[ref+2])
}

// SetActivity updates the clause's activity score.
func (a *Arena) SetActivity(ref CRef, act float32) {
	a.words[ref+2] = math.Float32bits(act)
}

// Lits returns a copy of the clause's literal body. Writes to the returned
// slice do not reach the arena; use SetLit or Swap for that.
func (a *Arena) Lits(ref CRef) []Literal {
	size := a.Size(ref)
	start := int(ref) + clauseHeaderWords
	words := a.words[start : start+size]
	lits := make([]Literal, size)
	for i, w := range words {
		lits[i] = Literal(w)
	}
	return lits
}

// SetLit overwrites the literal at position i of the clause, e.g. when a
// watch swap moves a different literal into the watched slots.
func (a *Arena) SetLit(ref CRef, i int, l Literal) {
	a.words[int(ref)+clauseHeaderWords+i] = uint32(l)
}

// Lit returns the literal at position i of the clause.
func (a *Arena) Lit(ref CRef, i int) Literal {
	return Literal(a.words[int(ref)+clauseHeaderWords+i])
}

// Swap exchanges the literals at positions i and j of the clause.
func (a *Arena) Swap(ref CRef, i, j int) {
	base := int(ref) + clauseHeaderWords
	a.words[base+i], a.words[base+j] = a.words[base+j], a.words[base+i]
}

// Truncate shrinks the clause's literal count to n (n <= current size),
// used when root-level simplification removes falsified literals.
func (a *Arena) Truncate(ref CRef, n int) {
	size := a.Size(ref)
	if n == size {
		return
	}
	a.setHeader(ref, uint32(n)<<sizeShift|uint32(a.flags(ref)))
	a.wasted += uint32(size - n)
}

// Delete marks the clause as deleted and accounts its words as wasted. The
// words themselves are reclaimed only by a subsequent GC pass.
func (a *Arena) Delete(ref CRef) {
	a.setFlag(ref, flagDeleted)
	a.wasted += uint32(clauseHeaderWords + a.Size(ref))
}

// Wasted returns the number of words occupied by deleted clauses.
func (a *Arena) Wasted() uint32 {
	return a.wasted
}

// Used returns the number of words currently in use (including wasted
// ones); this is the high-water mark of the bump pointer.
func (a *Arena) Used() uint32 {
	return uint32(len(a.words))
}

// ShouldGC reports whether wasted space has crossed the 25% threshold at
// which a compaction pass becomes worthwhile.
func (a *Arena) ShouldGC() bool {
	used := a.Used()
	return used > 0 && float64(a.wasted) >= 0.25*float64(used-a.wasted)
}

// GC compacts all live (non-deleted) clauses into a fresh backing array and
// invokes reloc once per live clause with its old and new CRef, in
// allocation order, so that callers can rewrite every outstanding
// reference (watch lists, learnt/original reference arrays, reasons).
// Precondition: no concurrent readers of the arena. Postcondition:
// Wasted()==0 and every CRef supplied to reloc has been rewritten.
func (a *Arena) GC(reloc func(old, new CRef)) {
	newWords := make([]uint32, 2, len(a.words))

	ref := CRef(2)
	for int(ref) < len(a.words) {
		size := a.Size(ref)
		total := clauseHeaderWords + size
		if a.IsDeleted(ref) {
			ref += CRef(total)
			continue
		}

		newRef := CRef(len(newWords))
		newWords = append(newWords, a.words[ref:ref+CRef(total)]...)
		reloc(ref, newRef)

		ref += CRef(total)
	}

	a.words = newWords
	a.wasted = 0
}
