package sudoku

import (
	"context"
	"fmt"
	"math/rand"
	"unicode"

	"github.com/constraint-framework/cspy/pkg/cspy"
	"github.com/constraint-framework/cspy/pkg/cspy/constraint"
	"github.com/constraint-framework/cspy/pkg/cspy/input"
)

// digits is the domain of every blank cell.
var digits = []cspy.Value{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

// Grid is a 9x9 board in row-major order. Zero marks a blank cell, one
// through nine mark givens. The zero value is the empty board.
type Grid [9][9]int

// ParseGrid reads a puzzle in its usual one-line form: 81 cells in
// row-major order, '.' or '0' for a blank, whitespace ignored.
func ParseGrid(text string) (Grid, error) {
	var grid Grid
	cells := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		switch {
		case r == '.' || r == '0':
			// blank cell
		case r >= '1' && r <= '9':
			if cells < 81 {
				grid[cells/9][cells%9] = int(r - '0')
			}
		default:
			return Grid{}, fmt.Errorf("%q is not a valid cell", r)
		}
		cells++
	}
	if cells != 81 {
		return Grid{}, fmt.Errorf("grid has %d cells, expected 81", cells)
	}
	return grid, nil
}

// CellID names the variable for the cell at the given zero-based row
// and column.
func CellID(row int, col int) cspy.Identifier {
	return cspy.IdentifierFromString(fmt.Sprintf("r%dc%d", row, col))
}

var _ input.ProblemSource = &SudokuProblemSource{}

// SudokuProblemSource builds a sudoku model: a variable per cell with
// the nine digits as its domain, givens collapsed to their single
// digit, and a not-equal constraint in both directions between every
// cell and the twenty peers it shares a row, column or box with. Each
// GetProblem call builds a fresh model, so one source can feed several
// solves.
type SudokuProblemSource struct {
	grid Grid
	seed int64
}

// NewSudokuProblemSource wraps a board. A seed of zero or more shuffles
// the candidate digits of every blank cell deterministically, so an
// empty board solves into a different grid per seed; a negative seed
// keeps the natural one-to-nine order.
func NewSudokuProblemSource(grid Grid, seed int64) *SudokuProblemSource {
	return &SudokuProblemSource{
		grid: grid,
		seed: seed,
	}
}

func (s *SudokuProblemSource) GetProblem(_ context.Context) (*cspy.Model, error) {
	var rng *rand.Rand
	if s.seed >= 0 {
		rng = rand.New(rand.NewSource(s.seed)) //nolint:gosec
	}

	model := cspy.NewModel()
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			if err := model.AddVariable(CellID(row, col), s.domain(row, col, rng)); err != nil {
				return nil, err
			}
		}
	}
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			for _, peer := range peers(row, col) {
				if err := model.AddConstraint(constraint.NotEqual(), CellID(row, col), peer); err != nil {
					return nil, err
				}
			}
		}
	}
	return model, nil
}

func (s *SudokuProblemSource) domain(row, col int, rng *rand.Rand) []cspy.Value {
	if given := s.grid[row][col]; given != 0 {
		return []cspy.Value{digits[given-1]}
	}
	domain := make([]cspy.Value, len(digits))
	copy(domain, digits)
	if rng != nil {
		rng.Shuffle(len(domain), func(i, j int) { domain[i], domain[j] = domain[j], domain[i] })
	}
	return domain
}

// peers lists the twenty cells that must differ from the given one:
// the rest of its row, the rest of its column, and the rest of its
// box.
func peers(row, col int) []cspy.Identifier {
	seen := map[cspy.Identifier]bool{CellID(row, col): true}
	ids := make([]cspy.Identifier, 0, 20)
	add := func(r, c int) {
		id := CellID(r, c)
		if seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	for c := 0; c < 9; c++ {
		add(row, c)
	}
	for r := 0; r < 9; r++ {
		add(r, col)
	}
	boxRow, boxCol := row/3*3, col/3*3
	for r := boxRow; r < boxRow+3; r++ {
		for c := boxCol; c < boxCol+3; c++ {
			add(r, c)
		}
	}
	return ids
}
