package sat

import (
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDirectory = "testdata/"

func TestSessionsOnDIMACSInstances(t *testing.T) {
	config := DefaultConfig()
	testFiles, err := os.ReadDir(testDirectory)
	require.NoError(t, err)

	for _, solver := range Solvers() {
		t.Run(solver, func(t *testing.T) {
			skipMissingExecutable(t, solver, config)
			newSession, _ := NewSessionFactory(solver, config)

			for _, file := range testFiles {
				//**Arrange
				instance, err := parseDIMACSFile(testDirectory + file.Name())
				require.NoError(t, err, file.Name())
				expected := Unsatisfiable
				if strings.HasPrefix(file.Name(), "sat_") {
					expected = Satisfiable
				}

				//**Act
				session := newSession()
				for _, clause := range instance.Clauses {
					session.AddClause(clause)
				}
				status, err := session.Solve()

				//**Assert
				require.NoError(t, err, file.Name())
				assert.Equal(t, expected, status, file.Name())
				if status == Satisfiable {
					model := session.Model()
					assert.Len(t, model, int(instance.Variables), file.Name())
					assert.True(t, instance.Satisfies(model), file.Name())
				}
				assert.NoError(t, session.Release())
			}
		})
	}
}

func TestEmbeddedSessionsOnRandomInstances(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))

	for _, solver := range EmbeddedSolvers() {
		newSession, _ := NewSessionFactory(solver, DefaultConfig())
		unsatisfiable := 0

		for range 20 {
			instance := GenerateSATInstance(rng, uint64(rng.IntN(40)+1), rng.IntN(120)+1)

			session := newSession()
			for _, clause := range instance.Clauses {
				session.AddClause(clause)
			}
			status, err := session.Solve()
			require.NoError(t, err)

			if status == Unsatisfiable {
				unsatisfiable++
			} else {
				assert.True(t, instance.Satisfies(session.Model()), "%v returned a wrong model", solver)
			}
			require.NoError(t, session.Release())
		}

		t.Logf("%v: unsatisfiable instances: %v", solver, unsatisfiable)
	}
}

func TestEmbeddedSessionsAreIncremental(t *testing.T) {
	for _, solver := range EmbeddedSolvers() {
		t.Run(solver, func(t *testing.T) {
			newSession, _ := NewSessionFactory(solver, DefaultConfig())
			session := newSession()
			defer session.Release()

			session.AddClause([]int64{1, 2})
			status, err := session.Solve()
			require.NoError(t, err)
			require.Equal(t, Satisfiable, status)
			assert.Len(t, session.Model(), 2)

			// A clause over a variable the session has never seen
			session.AddClause([]int64{3})
			session.AddClause([]int64{-1})
			status, err = session.Solve()
			require.NoError(t, err)
			require.Equal(t, Satisfiable, status)
			assert.Equal(t, SATSolution{-1, 2, 3}, session.Model())

			session.AddClause([]int64{-2})
			status, err = session.Solve()
			require.NoError(t, err)
			assert.Equal(t, Unsatisfiable, status)

			// Unsatisfiability is permanent
			session.AddClause([]int64{1, 2, 3})
			status, err = session.Solve()
			require.NoError(t, err)
			assert.Equal(t, Unsatisfiable, status)
		})
	}
}

func TestEmbeddedSessionsReserveUnmentionedVariables(t *testing.T) {
	for _, solver := range EmbeddedSolvers() {
		t.Run(solver, func(t *testing.T) {
			newSession, _ := NewSessionFactory(solver, DefaultConfig())
			session := newSession()
			defer session.Release()

			session.Reserve(4)
			session.AddClause([]int64{1})
			status, err := session.Solve()
			require.NoError(t, err)
			require.Equal(t, Satisfiable, status)
			model := session.Model()
			require.Len(t, model, 4)
			assert.Equal(t, int64(1), model[0])

			// Reserving after a query still widens the model
			session.Reserve(5)
			session.AddClause([]int64{5})
			status, err = session.Solve()
			require.NoError(t, err)
			require.Equal(t, Satisfiable, status)
			model = session.Model()
			require.Len(t, model, 5)
			assert.Equal(t, int64(5), model[4])
		})
	}
}

func TestEmbeddedSessionsEmptyClause(t *testing.T) {
	for _, solver := range EmbeddedSolvers() {
		newSession, _ := NewSessionFactory(solver, DefaultConfig())
		session := newSession()

		session.AddClause([]int64{1})
		session.AddClause([]int64{})
		status, err := session.Solve()

		assert.NoError(t, err)
		assert.Equal(t, Unsatisfiable, status, solver)
		assert.NoError(t, session.Release())
	}
}

func TestSessionsRejectZeroLiteral(t *testing.T) {
	sessions := []SATSession{NewGophersatSession(), NewGiniSession(), NewCadicalSession("cadical")}
	for _, session := range sessions {
		assert.Panics(t, func() { session.AddClause([]int64{1, 0, 2}) })
	}
}

func TestSessionsReleaseOnce(t *testing.T) {
	sessions := []SATSession{NewGophersatSession(), NewGiniSession(), NewKissatSession("kissat")}
	for _, session := range sessions {
		assert.NoError(t, session.Release())
		assert.ErrorIs(t, session.Release(), ErrReleased)

		_, err := session.Solve()
		assert.ErrorIs(t, err, ErrReleased)
		assert.Panics(t, func() { session.AddClause([]int64{1}) })
		assert.Panics(t, func() { session.Reserve(1) })
	}
}

func TestModelWithoutSatisfiableResultPanics(t *testing.T) {
	sessions := []SATSession{NewGophersatSession(), NewGiniSession(), NewCryptominisatSession("cryptominisat5")}
	for _, session := range sessions {
		assert.Panics(t, func() { session.Model() })
	}
}

func TestProcessSessionMissingExecutable(t *testing.T) {
	session := NewCadicalSession(filepath.Join(t.TempDir(), "missing-cadical"))
	session.AddClause([]int64{1})

	status, err := session.Solve()

	assert.Error(t, err)
	assert.Equal(t, Unknown, status)
	assert.NoError(t, session.Release())
}

func TestProcessSessionDeclaresReservedVariables(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	//**Arrange
	path := filepath.Join(t.TempDir(), "solver.sh")
	script := "#!/bin/sh\ngrep '^p cnf 3 1$' > /dev/null || exit 1\necho 'v 1 0'\nexit 10\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	session := NewProcessSession("scripted", path)
	session.Reserve(3)
	session.AddClause([]int64{1})

	//**Act
	status, err := session.Solve()

	//**Assert
	require.NoError(t, err)
	assert.Equal(t, Satisfiable, status)
	assert.Equal(t, SATSolution{1, -2, -3}, session.Model())
	assert.NoError(t, session.Release())
}

func TestParseDIMACSFileKeepsUnits(t *testing.T) {
	//**Arrange
	fileName := testDirectory + "sat_units.cnf"

	//**Act
	instance, err := parseDIMACSFile(fileName)

	//**Assert
	require.NoError(t, err)
	assert.Equal(t, uint64(4), instance.Variables)
	assert.ElementsMatch(t, [][]int64{{1}, {2}, {3}, {4}}, instance.Clauses)
}

func TestProcessSessionExitCodes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	tests := []struct {
		name     string
		script   string
		status   Status
		model    SATSolution
		hasError bool
	}{
		{"satisfiable", "echo 's SATISFIABLE'\necho 'v 1 -2'\necho 'v 4 0'\nexit 10", Satisfiable, SATSolution{1, -2, -3, 4}, false},
		{"unsatisfiable", "echo 's UNSATISFIABLE'\nexit 20", Unsatisfiable, nil, false},
		{"crash", "echo 'out of memory' >&2\nexit 1", Unknown, nil, true},
		{"garbled", "echo 'v 1 x 0'\nexit 10", Unknown, nil, true},
		{"no values", "echo 's SATISFIABLE'\nexit 10", Unknown, nil, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			//**Arrange
			path := filepath.Join(t.TempDir(), "solver.sh")
			require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\ncat > /dev/null\n"+test.script+"\n"), 0755))
			session := NewProcessSession("scripted", path)
			session.AddClause([]int64{1, 2})
			session.AddClause([]int64{-3, 4})

			//**Act
			status, err := session.Solve()

			//**Assert
			assert.Equal(t, test.status, status)
			if test.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if test.model != nil {
				assert.Equal(t, test.model, session.Model())
			}
			assert.NoError(t, session.Release())
		})
	}
}

func skipMissingExecutable(t *testing.T, solver string, config Config) {
	t.Helper()
	if !ExternalSolver(solver) {
		return
	}
	if _, err := exec.LookPath(config.Executable(solver)); err != nil {
		t.Skipf("%v executable not available: %v", solver, err)
	}
}

// parseDIMACSFile loads a fixture through gophersat's CNF reader. The reader
// propagates unit clauses while parsing, so units come back as unit clauses
// ahead of the remaining ones; the result is equivalent to the file.
func parseDIMACSFile(fileName string) (SAT, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return SAT{}, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	problem, err := solver.ParseCNF(file)
	if err != nil {
		return SAT{}, fmt.Errorf("could not parse %v: %w", fileName, err)
	}
	if problem.Status == solver.Unsat {
		return SAT{}, fmt.Errorf("%v is unsatisfiable by unit propagation alone", fileName)
	}

	units := lo.Map(problem.Units, func(unit solver.Lit, _ int) []int64 {
		return []int64{int64(unit.Int())}
	})
	clauses := lo.Map(problem.Clauses, func(clause *solver.Clause, _ int) []int64 {
		return lo.Times(clause.Len(), func(i int) int64 {
			return int64(clause.Get(i).Int())
		})
	})

	return SAT{
		Variables: uint64(problem.NbVars),
		Clauses:   append(units, clauses...),
	}, nil
}
