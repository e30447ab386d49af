package sat

import (
	"errors"
	"fmt"
)

// ErrReleased is returned when a session is used after Release
var ErrReleased = errors.New("solver session already released")

// SATSession is an incremental solving session. Clauses may be added before or after any call to Solve,
// and every Solve decides the conjunction of all the clauses added so far.
// A session must be used by a single goroutine and released exactly once.
type SATSession interface {
	// Appends a clause to the live formula. The clause must not contain the literal 0
	AddClause(clause []int64)
	// Declares variables 1..variables part of the formula, including the ones no clause mentions,
	// so every model assigns them
	Reserve(variables uint64)
	// Decides the satisfiability of the clauses added so far; an error means the backend failed to decide
	Solve() (Status, error)
	// Returns the model found by the last Solve, which must have been Satisfiable
	Model() SATSolution
	// Releases the resources held by the backend
	Release() error
}

// SessionFactory creates a fresh session on every call
type SessionFactory func() SATSession

func checkClause(backend string, clause []int64) {
	for _, literal := range clause {
		if literal == 0 {
			panic(fmt.Sprintf("%v: literal 0 is not allowed in clause %v", backend, clause))
		}
	}
}

func variableOf(literal int64) uint64 {
	if literal < 0 {
		return uint64(-literal)
	}
	return uint64(literal)
}

// Builds a complete model over 1..variables from the literals reported by a backend, unmentioned variables are false
func completeModel(variables uint64, literals []int64) SATSolution {
	values := make([]bool, variables+1)
	for _, literal := range literals {
		if literal > 0 && uint64(literal) <= variables {
			values[literal] = true
		}
	}

	model := make(SATSolution, 0, variables)
	for variable := uint64(1); variable <= variables; variable++ {
		if values[variable] {
			model = append(model, int64(variable))
		} else {
			model = append(model, -int64(variable))
		}
	}
	return model
}
