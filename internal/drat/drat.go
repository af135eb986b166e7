// Package drat emits an optional DRAT proof stream: every learnt-clause
// addition is written as a line of its literals, every clause deletion as
// a "d" line followed by its literals, and an UNSAT conclusion is closed
// with the empty clause.
package drat

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-bsat/bsat/internal/sat"
)

// Writer implements sat.DRATWriter over an io.Writer.
type Writer struct {
	w *bufio.Writer
}

// New returns a proof writer that appends lines to w.
func New(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Learn writes a clause-addition line.
func (d *Writer) Learn(lits []sat.Literal) {
	d.writeClause(lits)
}

// Delete writes a clause-deletion line.
func (d *Writer) Delete(lits []sat.Literal) {
	fmt.Fprint(d.w, "d ")
	d.writeClause(lits)
}

// Done concludes the proof. On UNSAT the empty clause is emitted, as DRAT
// requires.
func (d *Writer) Done(unsat bool) {
	if unsat {
		fmt.Fprintln(d.w, "0")
	}
	d.w.Flush()
}

func (d *Writer) writeClause(lits []sat.Literal) {
	for _, l := range lits {
		fmt.Fprintf(d.w, "%d ", l.ToDIMACS())
	}
	fmt.Fprintln(d.w, "0")
}
