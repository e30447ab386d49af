package queens

import (
	"strings"

	"github.com/lornalelcaj/nqueens-sat-solver/pkg/sat"
)

// Board marks the cells holding a queen, indexed by row and then by column
type Board [][]bool

// Decode places a queen on every cell whose variable is true in the model
func Decode(n int, model sat.SATSolution) Board {
	board := make(Board, n)
	for row := range board {
		board[row] = make([]bool, n)
	}

	for _, literal := range model {
		// Acknowledge only positive literals that stand for a cell
		if literal > 0 && literal <= int64(n*n) {
			row, col := Cell(n, literal)
			board[row][col] = true
		}
	}
	return board
}

// Rows renders every row with "Q" for a queen and "." for an empty cell
func (board Board) Rows() []string {
	rows := make([]string, len(board))
	for i, cells := range board {
		var builder strings.Builder
		for _, queen := range cells {
			if queen {
				builder.WriteByte('Q')
			} else {
				builder.WriteByte('.')
			}
		}
		rows[i] = builder.String()
	}
	return rows
}

func (board Board) String() string {
	var builder strings.Builder
	for _, row := range board.Rows() {
		builder.WriteString(strings.Join(strings.Split(row, ""), " "))
		builder.WriteByte('\n')
	}
	return builder.String()
}

// Verify checks that the board is square, holds exactly one queen per row and that no two queens share a column,
// a diagonal or an anti-diagonal
func Verify(board Board) bool {
	n := len(board)
	columns, diagonals, antiDiagonals := make(map[int]bool), make(map[int]bool), make(map[int]bool)

	for row, cells := range board {
		if len(cells) != n {
			return false
		}

		queens := 0
		for col, queen := range cells {
			if !queen {
				continue
			}
			queens++

			if columns[col] || diagonals[row-col] || antiDiagonals[row+col] {
				return false
			}
			columns[col], diagonals[row-col], antiDiagonals[row+col] = true, true, true
		}

		if queens != 1 {
			return false
		}
	}
	return true
}
