package dimacs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/constraint-framework/cspy/internal/sat"
	internalsolver "github.com/constraint-framework/cspy/internal/solver"
	"github.com/constraint-framework/cspy/pkg/cspy"
	"github.com/constraint-framework/cspy/pkg/cspy/input"
	"github.com/constraint-framework/cspy/pkg/cspy/solver"
)

func NewDimacsCommand() *cobra.Command {
	var (
		useMRV bool
		useLCV bool
		useAC3 bool
		trace  bool
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "dimacs <path>",
		Short: "Solves a 2-sat problem given in dimacs format",
		Long: `Solves a 2-sat problem given in dimacs format. For instance:
c
c this is a comment
c header: p cnf <number of variables> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 or not 2)

Clauses may carry at most two literals each.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return solve(args[0], useMRV, useLCV, useAC3, trace, verify)
		},
	}

	cmd.Flags().BoolVar(&useMRV, "mrv", false, "pick the variable with the fewest remaining values first")
	cmd.Flags().BoolVar(&useLCV, "lcv", false, "try the least constraining value first")
	cmd.Flags().BoolVar(&useAC3, "ac3", false, "run an arc consistency pass before every search step")
	cmd.Flags().BoolVar(&trace, "trace", false, "print every rejected candidate to stderr")
	cmd.Flags().BoolVar(&verify, "verify", false, "cross-check the verdict with an independent sat solver")

	return cmd
}

func solve(path string, useMRV, useLCV, useAC3, trace, verify bool) error {
	// open dimacs file
	dimacsFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	defer dimacsFile.Close()

	dimacs, err := NewDimacs(dimacsFile)
	if err != nil {
		return fmt.Errorf("error parsing dimacs file (%s): %w", path, err)
	}
	source := NewDimacsProblemSource(dimacs)

	// build solver
	options := []solver.Option{
		solver.WithMRV(useMRV),
		solver.WithLCV(useLCV),
		solver.WithAC3(useAC3),
	}
	if trace {
		options = append(options, solver.WithTracer(internalsolver.LoggingTracer{Writer: os.Stderr}))
	}
	so, err := solver.NewCspySolver(source, options...)
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
	} else {
		fmt.Println("solution found:")
		assignment := solution.Assignment()
		for _, variable := range dimacs.Variables() {
			fmt.Printf("%s = %t\n", variable, Truthy(assignment[cspy.Identifier(variable)]))
		}
		fmt.Printf("%d attempts\n", solution.Attempts())
	}

	if verify {
		return crossCheck(context.Background(), source, solution.Error() == nil)
	}
	return nil
}

// crossCheck hands a fresh copy of the problem to the SAT solver and
// confirms both engines agree on satisfiability.
func crossCheck(ctx context.Context, source input.ProblemSource, satisfiable bool) error {
	model, err := source.GetProblem(ctx)
	if err != nil {
		return err
	}
	checker, err := sat.NewSolver(sat.WithModel(model))
	if err != nil {
		return err
	}
	_, err = checker.Solve(ctx)
	switch {
	case err == nil && !satisfiable:
		return fmt.Errorf("verification failed: sat solver found a solution where backtracking found none")
	case errors.Is(err, cspy.ErrNotSatisfiable) && satisfiable:
		return fmt.Errorf("verification failed: sat solver proved unsatisfiable what backtracking solved")
	case err != nil && !errors.Is(err, cspy.ErrNotSatisfiable):
		return err
	}
	fmt.Println("verified: sat solver agrees")
	return nil
}
