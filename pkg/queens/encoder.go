package queens

import (
	"github.com/lornalelcaj/nqueens-sat-solver/pkg/sat"

	"github.com/samber/lo"
)

// Variable returns the propositional variable standing for a queen at (row, col) on an n×n board
func Variable(n, row, col int) int64 {
	return int64(row*n + col + 1)
}

// Cell returns the (row, col) position represented by a variable, it is the inverse of Variable
func Cell(n int, variable int64) (row, col int) {
	index := int(variable - 1)
	return index / n, index % n
}

// Encode builds the CNF formula whose models are exactly the placements of n non-attacking queens on an n×n board.
// Every constraint is encoded pairwise, hence the formula holds O(n³) clauses. The clause order is fixed
func Encode(n int) sat.SAT {
	if n <= 0 {
		return sat.SAT{Clauses: [][]int64{}}
	}

	// Constraints functions
	constraints := []func(n int) [][]int64{
		rowConstraints,
		columnConstraints,
		diagonalConstraints,
		antiDiagonalConstraints,
	}

	instance := sat.SAT{
		Variables: uint64(n * n),
		Clauses:   make([][]int64, 0, n*n*n),
	}
	for _, constraint := range constraints {
		instance.Clauses = append(instance.Clauses, constraint(n)...)
	}
	return instance
}

// Exactly one queen per row
func rowConstraints(n int) [][]int64 {
	clauses := make([][]int64, 0)
	for row := range n {
		variables := lo.Map(lo.Range(n), func(col int, _ int) int64 { return Variable(n, row, col) })
		clauses = append(clauses, variables) // At least one
		clauses = append(clauses, atMostOne(variables)...)
	}
	return clauses
}

// At most one queen per column. Rows already force n queens, so no column needs an at-least-one clause
func columnConstraints(n int) [][]int64 {
	clauses := make([][]int64, 0)
	for col := range n {
		variables := lo.Map(lo.Range(n), func(row int, _ int) int64 { return Variable(n, row, col) })
		clauses = append(clauses, atMostOne(variables)...)
	}
	return clauses
}

// At most one queen per main diagonal, i.e. among the cells where row - col = d
func diagonalConstraints(n int) [][]int64 {
	clauses := make([][]int64, 0)
	for d := -(n - 1); d < n; d++ {
		variables := make([]int64, 0, n)
		for row := range n {
			if col := row - d; 0 <= col && col < n {
				variables = append(variables, Variable(n, row, col))
			}
		}
		clauses = append(clauses, atMostOne(variables)...)
	}
	return clauses
}

// At most one queen per anti-diagonal, i.e. among the cells where row + col = d
func antiDiagonalConstraints(n int) [][]int64 {
	clauses := make([][]int64, 0)
	for d := range 2*n - 1 {
		variables := make([]int64, 0, n)
		for row := range n {
			if col := d - row; 0 <= col && col < n {
				variables = append(variables, Variable(n, row, col))
			}
		}
		clauses = append(clauses, atMostOne(variables)...)
	}
	return clauses
}

// One binary clause per unordered pair of variables
func atMostOne(variables []int64) [][]int64 {
	clauses := make([][]int64, 0, len(variables)*(len(variables)-1)/2)
	for i := range len(variables) {
		for j := i + 1; j < len(variables); j++ {
			clauses = append(clauses, []int64{-variables[i], -variables[j]})
		}
	}
	return clauses
}
