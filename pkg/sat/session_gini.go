package sat

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/golang/glog"
)

// giniSession wraps a gini solver, which accepts new clauses between calls to Solve natively
type giniSession struct {
	engine    *gini.Gini
	variables uint64 // Highest variable handed to the engine
	reserved  uint64
	clauses   int
	empty     bool
	model     SATSolution
	released  bool
}

func NewGiniSession() SATSession {
	return &giniSession{engine: gini.New()}
}

func (session *giniSession) AddClause(clause []int64) {
	if session.released {
		panic("gini: clause added to a released session")
	}
	checkClause("gini", clause)

	if len(clause) == 0 {
		session.empty = true
		return
	}

	for _, literal := range clause {
		session.variables = max(session.variables, variableOf(literal))
		session.engine.Add(z.Dimacs2Lit(int(literal)))
	}
	session.engine.Add(z.LitNull) // Terminates the clause
	session.clauses++
}

// The engine only learns a variable from a clause, so reserved variables it has never seen are completed as false
func (session *giniSession) Reserve(variables uint64) {
	if session.released {
		panic("gini: variables reserved on a released session")
	}
	session.reserved = max(session.reserved, variables)
}

func (session *giniSession) Solve() (Status, error) {
	if session.released {
		return Unknown, ErrReleased
	}
	session.model = nil
	if session.empty {
		return Unsatisfiable, nil
	}

	glog.V(2).Infof("gini: solving %d clauses over %d variables", session.clauses, session.variables)

	// 1 stands for satisfiable, -1 for unsatisfiable and 0 for an interrupted search
	switch result := session.engine.Solve(); result {
	case 1:
		positives := make([]int64, 0, session.variables)
		for variable := uint64(1); variable <= session.variables; variable++ {
			if session.engine.Value(z.Dimacs2Lit(int(variable))) {
				positives = append(positives, int64(variable))
			}
		}
		session.model = completeModel(max(session.variables, session.reserved), positives)
		return Satisfiable, nil
	case -1:
		return Unsatisfiable, nil
	default:
		return Unknown, fmt.Errorf("gini search ended without a decision: %v", result)
	}
}

func (session *giniSession) Model() SATSolution {
	if session.model == nil {
		panic("gini: model requested without a satisfiable result")
	}
	return session.model
}

func (session *giniSession) Release() error {
	if session.released {
		return ErrReleased
	}
	session.released = true
	session.engine, session.model = nil, nil
	return nil
}
