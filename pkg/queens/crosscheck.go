package queens

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/lornalelcaj/nqueens-sat-solver/pkg/sat"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// MismatchError reports solvers that disagree on the number of solutions
type MismatchError struct {
	Size   int
	Counts map[string]uint64
}

func (err *MismatchError) Error() string {
	solvers := lo.Keys(err.Counts)
	slices.Sort(solvers)

	var builder strings.Builder
	fmt.Fprintf(&builder, "solvers disagree on the %d-queens solutions:", err.Size)
	for _, solver := range solvers {
		fmt.Fprintf(&builder, " %v=%d", solver, err.Counts[solver])
	}
	return builder.String()
}

// CrossCheck counts the n-queens solutions with every solver concurrently and verifies they all agree.
// Each solver gets its own session, so no session is shared between goroutines
func CrossCheck(n int, solvers map[string]sat.SessionFactory) (map[string]uint64, error) {
	var mutex sync.Mutex
	counts := make(map[string]uint64, len(solvers))

	var group errgroup.Group
	for name, newSession := range solvers {
		group.Go(func() error {
			count, err := Count(n, newSession)
			if err != nil {
				return fmt.Errorf("%v: %w", name, err)
			}

			mutex.Lock()
			defer mutex.Unlock()
			counts[name] = count
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if len(lo.Uniq(lo.Values(counts))) > 1 {
		return counts, &MismatchError{Size: n, Counts: counts}
	}
	return counts, nil
}
