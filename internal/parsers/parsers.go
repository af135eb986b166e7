// Package parsers wraps the external DIMACS reader/writer collaborators at
// the core's boundary: it turns a DIMACS CNF file into new_var/add_clause
// calls against a SATSolver, and turns a solver's result/model back into
// the DIMACS output convention.
package parsers

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rhartert/dimacs"

	"github.com/go-bsat/bsat/internal/sat"
)

// SATSolver is the subset of sat.Solver the DIMACS builder drives.
type SATSolver interface {
	AddVariable() sat.Var
	AddClause([]sat.Literal) error
}

// Reserver is implemented by solvers that can presize their clause storage
// once the DIMACS header declares how much is coming, avoiding repeated
// geometric growth while the rest of the file is parsed.
type Reserver interface {
	Reserve(nVars, nClauses int)
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", filename)
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, errors.Wrapf(err, "gzip %q", filename)
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file and loads its formula into solver.
// Variables are declared in order 1..nVars via new_var, matching the
// 1-based encoding the core uses natively, so literals need no offset
// conversion.
func LoadDIMACS(filename string, gzipped bool, solver SATSolver) error {
	r, err := reader(filename, gzipped)
	if err != nil {
		return err
	}
	defer r.Close()

	b := &builder{solver: solver}
	return errors.Wrapf(dimacs.ReadBuilder(r, b), "parsing DIMACS file %q", filename)
}

// builder adapts a SATSolver to dimacs.Builder.
type builder struct {
	solver   SATSolver
	declared int
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem: %q", problem)
	}
	if r, ok := b.solver.(Reserver); ok {
		r.Reserve(nVars, nClauses)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	b.declared = nVars
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		clause[i] = sat.FromDIMACS(l)
	}
	return b.solver.AddClause(clause)
}

func (b *builder) Comment(_ string) error {
	return nil
}

// ReadModels returns the list of models contained in a ".cnf.models" test
// fixture file: one model per line, literals using the same 1-based
// convention as the instance file.
func ReadModels(filename string) ([][]bool, error) {
	r, err := reader(filename, false)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, errors.Wrapf(err, "parsing models file %q", filename)
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}

// WriteResult writes the DIMACS-convention result line(s) and, for SAT, the
// v-line(s) of the model, to w.
func WriteResult(w io.Writer, result sat.Result, model []bool) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	switch result {
	case sat.Sat:
		fmt.Fprintln(bw, "s SATISFIABLE")
		fmt.Fprint(bw, "v")
		for i, b := range model {
			v := i + 1
			if !b {
				v = -v
			}
			fmt.Fprintf(bw, " %d", v)
		}
		fmt.Fprintln(bw, " 0")
	case sat.Unsat:
		fmt.Fprintln(bw, "s UNSATISFIABLE")
	default:
		fmt.Fprintln(bw, "s UNKNOWN")
	}
	return bw.Flush()
}
