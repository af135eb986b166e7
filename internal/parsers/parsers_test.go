package parsers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-bsat/bsat/internal/sat"
)

// fakeSolver records AddVariable/AddClause calls the way a real
// sat.Solver would, without any of the CDCL machinery, so the DIMACS
// builder can be tested in isolation.
type fakeSolver struct {
	vars    int
	clauses [][]sat.Literal
}

func (f *fakeSolver) AddVariable() sat.Var {
	f.vars++
	return sat.Var(f.vars)
}

func (f *fakeSolver) AddClause(lits []sat.Literal) error {
	clause := make([]sat.Literal, len(lits))
	copy(clause, lits)
	f.clauses = append(f.clauses, clause)
	return nil
}

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instance.cnf")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}
	return path
}

func TestLoadDIMACSDeclaresVarsAndClauses(t *testing.T) {
	path := writeFixture(t, "c a comment\np cnf 3 2\n1 -2 0\n-1 2 3 0\n")

	got := &fakeSolver{}
	if err := LoadDIMACS(path, false, got); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}

	want := [][]sat.Literal{
		{sat.FromDIMACS(1), sat.FromDIMACS(-2)},
		{sat.FromDIMACS(-1), sat.FromDIMACS(2), sat.FromDIMACS(3)},
	}
	if got.vars != 3 {
		t.Errorf("LoadDIMACS(): want 3 declared variables, got %d", got.vars)
	}
	if diff := cmp.Diff(want, got.clauses); diff != "" {
		t.Errorf("LoadDIMACS(): clause mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACSRejectsNonCNFProblem(t *testing.T) {
	path := writeFixture(t, "p wcnf 1 1\n1 0\n")

	got := &fakeSolver{}
	if err := LoadDIMACS(path, false, got); err == nil {
		t.Error("LoadDIMACS(): want error for non-cnf problem line, got none")
	}
}

func TestLoadDIMACSMissingFile(t *testing.T) {
	got := &fakeSolver{}
	if err := LoadDIMACS(filepath.Join(t.TempDir(), "missing.cnf"), false, got); err == nil {
		t.Error("LoadDIMACS(): want error for missing file, got none")
	}
}

func TestReadModelsParsesOneModelPerLine(t *testing.T) {
	path := writeFixture(t, "1 -2 3 0\n-1 -2 -3 0\n")

	models, err := ReadModels(path)
	if err != nil {
		t.Fatalf("ReadModels(): want no error, got %s", err)
	}

	want := [][]bool{
		{true, false, true},
		{false, false, false},
	}
	if diff := cmp.Diff(want, models); diff != "" {
		t.Errorf("ReadModels(): mismatch (-want +got):\n%s", diff)
	}
}
