package queens

import "github.com/lornalelcaj/nqueens-sat-solver/pkg/sat"

// MinSolvableSize is the smallest board size worth handing to a solver, smaller boards are reported as having no
// solutions without creating a session
const MinSolvableSize = 4

// Count returns the number of solutions of the n-queens problem. The session created by newSession is released
// before Count returns
func Count(n int, newSession sat.SessionFactory) (uint64, error) {
	if n < MinSolvableSize {
		return 0, nil
	}
	return Enumerate(Encode(n), newSession())
}

// Solutions returns every solution of the n-queens problem in the order the solver found them
func Solutions(n int, newSession sat.SessionFactory) ([]Board, error) {
	boards := []Board{}
	if n < MinSolvableSize {
		return boards, nil
	}

	_, err := EnumerateFunc(Encode(n), newSession(), func(model sat.SATSolution) error {
		boards = append(boards, Decode(n, model))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return boards, nil
}
