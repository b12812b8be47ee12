package mapcolor

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	internalsolver "github.com/constraint-framework/cspy/internal/solver"
	"github.com/constraint-framework/cspy/pkg/cspy"
	"github.com/constraint-framework/cspy/pkg/cspy/solver"
)

func NewMapColorCommand() *cobra.Command {
	var (
		mapName  string
		colors   int
		distance int
		useMRV   bool
		useLCV   bool
		useAC3   bool
		trace    bool
	)

	cmd := &cobra.Command{
		Use:   "mapcolor",
		Short: "Colors a map so no two nearby regions share a color",
		Long: `Colors a map so no two nearby regions share a color.

With the default neighborhood distance of 1 only regions sharing a
border must differ. Raising the distance extends the requirement to
neighbors of neighbors, which usually needs a larger palette.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return solve(mapName, colors, distance, useMRV, useLCV, useAC3, trace)
		},
	}

	cmd.Flags().StringVarP(&mapName, "map", "m", "australia", fmt.Sprintf("map to color, one of: %s", strings.Join(AtlasNames(), ", ")))
	cmd.Flags().IntVarP(&colors, "colors", "c", 0, "number of colors to allow, 0 picks a default for the distance")
	cmd.Flags().IntVarP(&distance, "distance", "d", 1, "neighborhood distance within which regions must differ in color")
	cmd.Flags().BoolVar(&useMRV, "mrv", false, "pick the variable with the fewest remaining values first")
	cmd.Flags().BoolVar(&useLCV, "lcv", false, "try the least constraining value first")
	cmd.Flags().BoolVar(&useAC3, "ac3", false, "run an arc consistency pass before every search step")
	cmd.Flags().BoolVar(&trace, "trace", false, "print every rejected candidate to stderr")

	return cmd
}

func solve(mapName string, colors, distance int, useMRV, useLCV, useAC3, trace bool) error {
	borders, ok := Borders(mapName)
	if !ok {
		return fmt.Errorf("unknown map %q, expected one of: %s", mapName, strings.Join(AtlasNames(), ", "))
	}
	if distance < 1 {
		return fmt.Errorf("distance must be at least 1")
	}
	palette, err := pickPalette(colors, distance)
	if err != nil {
		return err
	}

	options := []solver.Option{
		solver.WithMRV(useMRV),
		solver.WithLCV(useLCV),
		solver.WithAC3(useAC3),
	}
	if trace {
		options = append(options, solver.WithTracer(internalsolver.LoggingTracer{Writer: os.Stderr}))
	}

	so, err := solver.NewCspySolver(NewMapProblemSource(borders, palette, distance), options...)
	if err != nil {
		return err
	}

	solution, err := so.Solve(context.Background())
	if err != nil {
		return err
	}
	if serr := solution.Error(); serr != nil {
		fmt.Printf("no solution found: %s\n", serr)
		return nil
	}

	assignment := solution.Assignment()
	regions := make([]string, 0, len(assignment))
	for region := range assignment {
		regions = append(regions, string(region))
	}
	sort.Strings(regions)

	used := map[cspy.Value]struct{}{}
	for _, region := range regions {
		color := assignment[cspy.Identifier(region)]
		used[color] = struct{}{}
		fmt.Printf("%s = %s\n", region, color)
	}
	fmt.Printf("colored %d regions with %d colors in %d attempts\n", len(regions), len(used), solution.Attempts())
	return nil
}

func pickPalette(colors, distance int) ([]cspy.Value, error) {
	if colors == 0 {
		if distance > 1 {
			return extendedPalette, nil
		}
		return basePalette, nil
	}
	if colors < 0 || colors > len(extendedPalette) {
		return nil, fmt.Errorf("colors must be between 1 and %d", len(extendedPalette))
	}
	return extendedPalette[:colors], nil
}
