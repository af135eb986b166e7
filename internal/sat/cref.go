package sat

// CRef is a reference to a clause stored in the Arena: a word offset to its
// header. Index 0 of the arena is reserved and never allocated into, so the
// zero value doubles as a sentinel.
type CRef uint32

// InvalidCRef denotes "no clause" (e.g. a decision's reason, or a binary
// watch which keeps its clause implicit).
const InvalidCRef CRef = 0

// BinaryConflict is a distinct sentinel returned by the propagator to signal
// a conflict that originated from a binary-watch shortcut rather than from a
// clause stored in the arena. The analyzer reads the two implicated
// literals that the propagator records at the conflict instead of a clause
// body.
const BinaryConflict CRef = 1
