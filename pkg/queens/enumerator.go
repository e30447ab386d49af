package queens

import (
	"fmt"

	"github.com/lornalelcaj/nqueens-sat-solver/pkg/sat"

	"github.com/golang/glog"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// SolverFaultError reports a backend that failed to decide a query. It is never mistaken for the end of the enumeration
type SolverFaultError struct {
	Solutions uint64 // Models accepted before the fault
	Err       error
}

func (err *SolverFaultError) Error() string {
	return fmt.Sprintf("solver fault after %d solutions: %v", err.Solutions, err.Err)
}

func (err *SolverFaultError) Unwrap() error {
	return err.Err
}

// Enumerate counts the models of formula. See EnumerateFunc
func Enumerate(formula sat.SAT, session sat.SATSession) (uint64, error) {
	return EnumerateFunc(formula, session, nil)
}

// EnumerateFunc loads formula into session and queries it until it becomes unsatisfiable. Every model found is
// handed to visit (when non-nil) and then excluded by a blocking clause, so no model is accepted twice.
//
// The session is owned by EnumerateFunc and released on every path. On failure the count is 0 and the error is either
// a *SolverFaultError, the error returned by visit, or a release failure
func EnumerateFunc(formula sat.SAT, session sat.SATSession, visit func(model sat.SATSolution) error) (count uint64, err error) {
	defer func() {
		err = multierr.Append(err, session.Release())
		if err != nil {
			count = 0
		}
	}()

	session.Reserve(formula.Variables)
	for _, clause := range formula.Clauses {
		session.AddClause(clause)
	}

	for {
		status, err := session.Solve()
		if err != nil {
			return 0, &SolverFaultError{Solutions: count, Err: err}
		}

		switch status {
		case sat.Unsatisfiable:
			glog.V(1).Infof("enumeration exhausted after %d solutions", count)
			return count, nil
		case sat.Satisfiable:
		default:
			return 0, &SolverFaultError{Solutions: count, Err: fmt.Errorf("undecided status %v", status)}
		}

		model := session.Model()
		if uint64(len(model)) != formula.Variables {
			return 0, &SolverFaultError{
				Solutions: count,
				Err:       fmt.Errorf("model assigns %d of %d variables", len(model), formula.Variables),
			}
		}
		count++

		if visit != nil {
			if err := visit(model); err != nil {
				return 0, err
			}
		}

		session.AddClause(blockingClause(model))
	}
}

// The clause holds unless every assignment of the model holds again
func blockingClause(model sat.SATSolution) []int64 {
	return lo.Map(model, func(literal int64, _ int) int64 { return -literal })
}
