package sat

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/golang/glog"
)

// processSession drives a solver executable that reads DIMACS from its standard input. The executable keeps no
// state between runs, so the session accumulates the clauses and hands the whole instance over on every Solve.
// Every query is therefore solved from scratch: nothing learned by one run carries over to the next, unlike the
// in-process glucose3 and minisat sessions
type processSession struct {
	backend  string
	path     string
	args     []string
	instance SAT
	model    SATSolution
	released bool
}

func NewProcessSession(backend, path string, args ...string) SATSession {
	return &processSession{
		backend:  backend,
		path:     path,
		args:     args,
		instance: SAT{Clauses: [][]int64{}},
	}
}

func NewCadicalSession(path string) SATSession {
	return NewProcessSession("cadical", path, "-q")
}

func NewKissatSession(path string) SATSession {
	return NewProcessSession("kissat", path, "-q", "--relaxed")
}

func NewCryptominisatSession(path string) SATSession {
	return NewProcessSession("cryptominisat", path, "--verb", "0")
}

func (session *processSession) AddClause(clause []int64) {
	if session.released {
		panic(fmt.Sprintf("%v: clause added to a released session", session.backend))
	}
	checkClause(session.backend, clause)

	clauseCopy := make([]int64, len(clause))
	copy(clauseCopy, clause)
	session.instance.Clauses = append(session.instance.Clauses, clauseCopy)
	for _, literal := range clause {
		session.instance.Variables = max(session.instance.Variables, variableOf(literal))
	}
}

// Reserved variables are declared in the problem line handed to the executable
func (session *processSession) Reserve(variables uint64) {
	if session.released {
		panic(fmt.Sprintf("%v: variables reserved on a released session", session.backend))
	}
	session.instance.Variables = max(session.instance.Variables, variables)
}

func (session *processSession) Solve() (Status, error) {
	if session.released {
		return Unknown, ErrReleased
	}
	session.model = nil

	dimacs := session.instance.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	cmd := exec.Command(session.path, session.args...)
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into the solver's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	glog.V(2).Infof("%v: solving %d clauses over %d variables", session.backend, len(session.instance.Clauses), session.instance.Variables)

	err := cmd.Run()
	if cmd.ProcessState == nil { // The executable could not be started
		return Unknown, fmt.Errorf("cannot run %v executable %q: %w", session.backend, session.path, err)
	}

	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	switch cmd.ProcessState.ExitCode() {
	case 10:
		literals, err := parseSolution(stdOut.String())
		if err != nil {
			return Unknown, fmt.Errorf("cannot read %v output: %w", session.backend, err)
		}
		session.model = completeModel(session.instance.Variables, literals)
		return Satisfiable, nil
	case 20:
		return Unsatisfiable, nil
	default:
		return Unknown, fmt.Errorf("an error occurred during %v execution: %v : %v", session.backend, err, stderr.String())
	}
}

func (session *processSession) Model() SATSolution {
	if session.model == nil {
		panic(fmt.Sprintf("%v: model requested without a satisfiable result", session.backend))
	}
	return session.model
}

func (session *processSession) Release() error {
	if session.released {
		return ErrReleased
	}
	session.released = true
	session.instance, session.model = SAT{}, nil
	return nil
}
