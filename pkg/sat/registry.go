package sat

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// DefaultSolver is used whenever a solver name is not recognized
const DefaultSolver = "glucose3"

var backends = map[string]func(config Config) SATSession{
	// gophersat manages its learned clauses with glucose's LBD heuristics
	"glucose3": func(Config) SATSession { return NewGophersatSession() },
	// gini is a MiniSat-style CDCL solver
	"minisat": func(Config) SATSession { return NewGiniSession() },
	"cadical": func(config Config) SATSession { return NewCadicalSession(config.Executable("cadical")) },
	"kissat":  func(config Config) SATSession { return NewKissatSession(config.Executable("kissat")) },
	"cryptominisat": func(config Config) SATSession {
		return NewCryptominisatSession(config.Executable("cryptominisat"))
	},
}

// Solvers returns the recognized solver names in lexicographic order
func Solvers() []string {
	names := lo.Keys(backends)
	slices.Sort(names)
	return names
}

// EmbeddedSolvers returns the solvers that run in-process and need no executable
func EmbeddedSolvers() []string {
	return []string{"glucose3", "minisat"}
}

// ExternalSolver reports whether the solver runs as an external executable
func ExternalSolver(name string) bool {
	_, ok := defaultExecutables[name]
	return ok
}

// ResolveSolver maps a case-insensitive solver name to a recognized one. Unknown names resolve to DefaultSolver
// and known is false
func ResolveSolver(name string) (resolved string, known bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := backends[name]; ok {
		return name, true
	}
	return DefaultSolver, false
}

// NewSessionFactory returns a factory of sessions for the solver resolved from name, along with the resolved name
func NewSessionFactory(name string, config Config) (SessionFactory, string) {
	resolved, _ := ResolveSolver(name)
	build := backends[resolved]
	return func() SATSession {
		return build(config)
	}, resolved
}
