package sudoku

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	internalsolver "github.com/constraint-framework/cspy/internal/solver"
	"github.com/constraint-framework/cspy/pkg/cspy/solver"
)

func NewSudokuCommand() *cobra.Command {
	var (
		useMRV bool
		useLCV bool
		useAC3 bool
		trace  bool
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "sudoku [puzzle]",
		Short: "Solves a sudoku board",
		Long: `Solves a sudoku board.

The optional argument is a puzzle of 81 cells in row-major order, '.'
or '0' for a blank, whitespace ignored; it is read from the file it
names, or from the argument itself when no such file exists. Without
an argument the board starts empty, which pairs well with --seed to
produce a fresh solved board.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			grid, err := loadGrid(args)
			if err != nil {
				return err
			}
			return solve(grid, seed, useMRV, useLCV, useAC3, trace)
		},
	}

	cmd.Flags().BoolVar(&useMRV, "mrv", false, "pick the variable with the fewest remaining values first")
	cmd.Flags().BoolVar(&useLCV, "lcv", false, "try the least constraining value first")
	cmd.Flags().BoolVar(&useAC3, "ac3", false, "run an arc consistency pass before every search step")
	cmd.Flags().BoolVar(&trace, "trace", false, "print every rejected candidate to stderr")
	cmd.Flags().Int64Var(&seed, "seed", -1, "shuffle the candidate digits of blank cells with this seed, negative keeps the 1..9 order")

	return cmd
}

// loadGrid reads the puzzle argument, trying it as a file path first
// and as the puzzle text itself otherwise.
func loadGrid(args []string) (Grid, error) {
	if len(args) == 0 {
		return Grid{}, nil
	}
	if text, err := os.ReadFile(args[0]); err == nil {
		return ParseGrid(string(text))
	}
	return ParseGrid(args[0])
}

func solve(grid Grid, seed int64, useMRV, useLCV, useAC3, trace bool) error {
	// build solver
	options := []solver.Option{
		solver.WithMRV(useMRV),
		solver.WithLCV(useLCV),
		solver.WithAC3(useAC3),
	}
	if trace {
		options = append(options, solver.WithTracer(internalsolver.LoggingTracer{Writer: os.Stderr}))
	}
	so, err := solver.NewCspySolver(NewSudokuProblemSource(grid, seed), options...)
	if err != nil {
		return err
	}

	// get solution
	solution, err := so.Solve(context.Background())
	if err != nil {
		return err
	}
	if serr := solution.Error(); serr != nil {
		fmt.Printf("no solution found: %s\n", serr)
		return nil
	}

	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			value, _ := solution.Value(CellID(row, col))
			fmt.Printf("%s", value)
			if col != 8 {
				fmt.Printf(" ")
			}
		}
		fmt.Printf("\n")
	}
	fmt.Printf("%d attempts\n", solution.Attempts())
	return nil
}
