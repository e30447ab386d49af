package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/lornalelcaj/nqueens-sat-solver/pkg/queens"
	"github.com/lornalelcaj/nqueens-sat-solver/pkg/sat"

	"github.com/golang/glog"
	"github.com/samber/lo"
)

// Exit codes besides the usage error (1)
const (
	solverFaultExitCode = 2
	mismatchExitCode    = 3
)

var (
	configPathPtr  = flag.String("config", "", "Path to the configuration file; if empty, \"config.json\" next to the executable is used when present")
	printBoardsPtr = flag.Bool("print", false, "Print every solution found")
	crossCheckPtr  = flag.Bool("crosscheck", false, "Count the solutions with every available solver and verify they agree")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	// Validate arguments
	if flag.NArg() < 1 {
		flag.Usage()
		exit(1)
	}
	n, err := strconv.Atoi(flag.Arg(0))
	if err != nil || n < 0 {
		fmt.Fprintf(os.Stderr, "Please provide a valid non-negative integer for N, got %q\n", flag.Arg(0))
		flag.Usage()
		exit(1)
	}

	config, err := sat.LoadConfig(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load configuration: %v\n", err)
		exit(1)
	}

	solverName := config.DefaultSolver
	if flag.NArg() > 1 {
		solverName = flag.Arg(1)
	}
	newSession, solver := sat.NewSessionFactory(solverName, config)
	if _, known := sat.ResolveSolver(solverName); !known {
		glog.Warningf("unknown solver %q, falling back to %v", solverName, solver)
		fmt.Printf("Unknown solver '%v'. Using %v.\n", solverName, solver)
	}

	if *crossCheckPtr {
		crossCheck(n, config)
		return
	}

	fmt.Printf("Solving %d-Queens problem using incremental %v SAT solver...\n", n, strings.ToUpper(solver))

	var count uint64
	if *printBoardsPtr {
		boards, err := queens.Solutions(n, newSession)
		if err != nil {
			fail(err)
		}
		for i, board := range boards {
			fmt.Printf("Solution %d for %dx%d board:\n%v\n", i+1, n, n, board)
		}
		count = uint64(len(boards))
	} else {
		count, err = queens.Count(n, newSession)
		if err != nil {
			fail(err)
		}
	}

	fmt.Printf("Number of solutions for %d-Queens: %d\n", n, count)

	// For verification, compare against known results for small boards
	if expected, ok := queens.Expected(n); ok {
		if count == expected {
			fmt.Printf("✓ Result matches known value: %d\n", expected)
		} else {
			fmt.Printf("✗ Result %d doesn't match known value: %d\n", count, expected)
		}
	}
}

func crossCheck(n int, config sat.Config) {
	// Embedded solvers always take part, external ones only when their executable can be found
	solvers := lo.Filter(sat.Solvers(), func(solver string, _ int) bool {
		if !sat.ExternalSolver(solver) {
			return true
		}
		_, err := exec.LookPath(config.Executable(solver))
		return err == nil
	})

	factories := make(map[string]sat.SessionFactory, len(solvers))
	for _, solver := range solvers {
		factories[solver], _ = sat.NewSessionFactory(solver, config)
	}

	fmt.Printf("Cross-checking %d-Queens with: %v\n", n, strings.Join(solvers, ", "))
	counts, err := queens.CrossCheck(n, factories)
	if _, ok := err.(*queens.MismatchError); ok {
		printCounts(counts)
		fmt.Fprintln(os.Stderr, err)
		exit(mismatchExitCode)
	} else if err != nil {
		fail(err)
	}

	printCounts(counts)
	fmt.Println("All solvers agree")
}

func printCounts(counts map[string]uint64) {
	solvers := lo.Keys(counts)
	slices.Sort(solvers)
	for _, solver := range solvers {
		fmt.Printf("%v: %d\n", solver, counts[solver])
	}
}

func configPath() string {
	if *configPathPtr != "" {
		return *configPathPtr
	}

	execPath, err := os.Executable()
	if err != nil {
		glog.Warningf("cannot determine executable path: %v", err)
		return sat.ConfigFile
	}
	return path.Join(path.Dir(execPath), sat.ConfigFile)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %v [flags] N [solver]\n", path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "Where N is the size of the chessboard; boards smaller than 4 have no solutions")
	fmt.Fprintf(os.Stderr, "Optional solver: %v, where %q is the default\n", strings.Join(sat.Solvers(), ", "), sat.DefaultSolver)
	flag.PrintDefaults()
}

func fail(err error) {
	glog.Errorf("enumeration failed: %v", err)
	fmt.Fprintf(os.Stderr, "an error occurred while counting the solutions: %v\n", err)
	exit(solverFaultExitCode)
}

func exit(code int) {
	glog.Flush()
	os.Exit(code)
}
