package sat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var errNoValueLines = errors.New("no value lines in solver output")

// Collects the literals of the "v" lines of a competition-format solver output, the terminating 0 is dropped
func parseSolution(solverOutput string) ([]int64, error) {
	lines := lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
		return len(line) > 0 && line[0] == 'v'
	})
	if len(lines) == 0 {
		return nil, errNoValueLines
	}

	fields := lo.FlatMap(lines, func(line string, _ int) []string {
		return strings.Fields(line[1:])
	})

	literals := make([]int64, 0, len(fields))
	for _, field := range fields {
		literal, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal in solver output: %w", err)
		}
		if literal != 0 {
			literals = append(literals, literal)
		}
	}
	return literals, nil
}
