package root

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/constraint-framework/cspy/cmd/dimacs"
	"github.com/constraint-framework/cspy/cmd/mapcolor"
	"github.com/constraint-framework/cspy/cmd/sudoku"
	"github.com/constraint-framework/cspy/internal/logger"
)

func NewRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "cspy",
		Short: "Cspy is an open-source binary constraint solver framework",
		Long: `An open-source binary constraint solver framework written in Go.
For more information visit https://github.com/constraint-framework/cspy`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logger.SetLevel(zerolog.DebugLevel)
			} else {
				logger.SetLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// add sub-commands
	rootCmd.AddCommand(mapcolor.NewMapColorCommand())
	rootCmd.AddCommand(dimacs.NewDimacsCommand())
	rootCmd.AddCommand(sudoku.NewSudokuCommand())

	return rootCmd
}
