package sat

import (
	"fmt"

	"github.com/crillab/gophersat/solver"
	"github.com/golang/glog"
	"github.com/samber/lo"
)

// gophersatSession keeps a single gophersat engine alive across queries. Clauses added after the engine is built
// are appended to it, so learned clauses and activities survive between calls to Solve
type gophersatSession struct {
	clauses         [][]int
	variables       uint64
	engine          *solver.Solver
	engineVariables uint64 // Variables known to the engine when it was built
	empty           bool   // Whether the empty clause has been added
	model           SATSolution
	released        bool
}

func NewGophersatSession() SATSession {
	return &gophersatSession{}
}

func (session *gophersatSession) AddClause(clause []int64) {
	if session.released {
		panic("gophersat: clause added to a released session")
	}
	checkClause("gophersat", clause)

	session.clauses = append(session.clauses, lo.Map(clause, func(literal int64, _ int) int { return int(literal) }))
	if len(clause) == 0 {
		session.empty = true
		return
	}

	for _, literal := range clause {
		session.variables = max(session.variables, variableOf(literal))
	}

	// A clause over an unknown variable cannot be appended, so the engine is rebuilt on the next Solve
	if session.engine == nil {
		return
	} else if session.variables > session.engineVariables {
		session.engine = nil
		return
	}

	lits := lo.Map(clause, func(literal int64, _ int) solver.Lit {
		return solver.IntToVar(int32(variableOf(literal))).SignedLit(literal < 0)
	})
	session.engine.AppendClause(solver.NewClause(lits))
}

func (session *gophersatSession) Reserve(variables uint64) {
	if session.released {
		panic("gophersat: variables reserved on a released session")
	}
	session.variables = max(session.variables, variables)
	if session.engine != nil && session.variables > session.engineVariables {
		session.engine = nil
	}
}

func (session *gophersatSession) Solve() (status Status, err error) {
	if session.released {
		return Unknown, ErrReleased
	}
	session.model = nil
	if session.empty {
		return Unsatisfiable, nil
	}

	// The engine panics on internal inconsistencies, which are reported as a failure to decide
	defer func() {
		if recovered := recover(); recovered != nil {
			session.engine = nil
			status, err = Unknown, fmt.Errorf("gophersat failed: %v", recovered)
		}
	}()

	if session.engine == nil {
		glog.V(2).Infof("gophersat: building engine from %d clauses over %d variables", len(session.clauses), session.variables)
		session.engine = solver.New(solver.ParseSliceNb(session.clauses, int(session.variables)))
		session.engineVariables = session.variables
	}

	switch result := session.engine.Solve(); result {
	case solver.Sat:
		bindings := session.engine.Model()
		positives := make([]int64, 0, len(bindings))
		for i, binding := range bindings {
			if binding {
				positives = append(positives, int64(i+1))
			}
		}
		session.model = completeModel(session.variables, positives)
		return Satisfiable, nil
	case solver.Unsat:
		return Unsatisfiable, nil
	default:
		return Unknown, fmt.Errorf("gophersat returned an undecided status: %v", result)
	}
}

func (session *gophersatSession) Model() SATSolution {
	if session.model == nil {
		panic("gophersat: model requested without a satisfiable result")
	}
	return session.model
}

func (session *gophersatSession) Release() error {
	if session.released {
		return ErrReleased
	}
	session.released = true
	session.engine, session.clauses, session.model = nil, nil, nil
	return nil
}
