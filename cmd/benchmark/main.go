package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lornalelcaj/nqueens-sat-solver/pkg/queens"
	"github.com/lornalelcaj/nqueens-sat-solver/pkg/sat"

	"github.com/golang/glog"
	"github.com/samber/lo"
)

type ResultType int

const (
	solved ResultType = iota
	fault
)

var resultTypes = map[ResultType]string{
	solved: "solved",
	fault:  "fault",
}

type BenchmarkResult struct {
	Solver    string
	Size      int
	Variables uint64
	Clauses   int
	Solutions uint64
	Duration  int64 // Milliseconds
	Result    ResultType
}

func main() {
	rangePtr := flag.String("range", "4-8", "Board sizes to benchmark, either a single size or an inclusive range such as \"4-8\"")
	solversPtr := flag.String("solvers", strings.Join(sat.EmbeddedSolvers(), ","), "Comma-separated solvers to benchmark")
	configPathPtr := flag.String("config", sat.ConfigFile, "Path to the configuration file")
	outFilePtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file where the results will be written")
	flag.Parse()
	defer glog.Flush()

	from, to, err := parseRange(*rangePtr)
	if err != nil {
		glog.Exitf("invalid range: %v", err)
	}
	config, err := sat.LoadConfig(*configPathPtr)
	if err != nil {
		glog.Exitf("cannot load configuration: %v", err)
	}
	solvers := parseSolvers(*solversPtr)

	results := make([]BenchmarkResult, 0, len(solvers)*(to-from+1))
	for _, solver := range solvers {
		for n := from; n <= to; n++ {
			fmt.Printf("Benchmarking %d-Queens with solver \"%v\"\n", n, solver)
			results = append(results, measure(solver, n, config))
		}
	}

	if err := toCsv(*outFilePtr, results); err != nil {
		glog.Exitf("cannot write results: %v", err)
	}
}

func measure(solver string, n int, config sat.Config) BenchmarkResult {
	newSession, _ := sat.NewSessionFactory(solver, config)
	return measureSessions(solver, n, newSession)
}

// The reported sizes come from the formula that is enumerated, boards below queens.MinSolvableSize are not solved
func measureSessions(solver string, n int, newSession sat.SessionFactory) BenchmarkResult {
	formula := queens.Encode(n)

	var count uint64
	var err error
	start := time.Now()
	if n >= queens.MinSolvableSize {
		count, err = queens.Enumerate(formula, newSession())
	}
	duration := time.Since(start).Milliseconds()

	result := BenchmarkResult{
		Solver:    solver,
		Size:      n,
		Variables: formula.Variables,
		Clauses:   len(formula.Clauses),
		Solutions: count,
		Duration:  duration,
		Result:    solved,
	}
	if err != nil {
		glog.Errorf("solver \"%v\" failed on %d-Queens: %v", solver, n, err)
		result.Result = fault
	}
	return result
}

func toCsv(path string, results []BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"Solver", "N", "Variables", "Clauses", "Solutions", "Expected", "Duration(ms)", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		expected := ""
		if count, ok := queens.Expected(result.Size); ok {
			expected = strconv.FormatUint(count, 10)
		}

		record := []string{
			result.Solver,
			strconv.Itoa(result.Size),
			strconv.FormatUint(result.Variables, 10),
			strconv.Itoa(result.Clauses),
			strconv.FormatUint(result.Solutions, 10),
			expected,
			strconv.FormatInt(result.Duration, 10),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func parseRange(rangeStr string) (from, to int, err error) {
	parts := strings.Split(rangeStr, "-")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("unexpected range format: %v", rangeStr)
	}

	from, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lower bound: %w", err)
	}
	to = from
	if len(parts) == 2 {
		if to, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
			return 0, 0, fmt.Errorf("invalid upper bound: %w", err)
		}
	}

	if from < 0 || to < from {
		return 0, 0, errors.New("bounds must satisfy 0 <= from <= to")
	}
	return from, to, nil
}

// Normalizes the solver names, dropping duplicates
func parseSolvers(solversStr string) []string {
	names := lo.Filter(strings.Split(solversStr, ","), func(name string, _ int) bool {
		return strings.TrimSpace(name) != ""
	})
	return lo.Uniq(lo.Map(names, func(name string, _ int) string {
		resolved, known := sat.ResolveSolver(name)
		if !known {
			glog.Warningf("unknown solver %q, falling back to %v", name, resolved)
		}
		return resolved
	}))
}
