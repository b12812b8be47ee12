package mapcolor

import (
	"context"
	"sort"

	"github.com/constraint-framework/cspy/pkg/cspy"
	"github.com/constraint-framework/cspy/pkg/cspy/constraint"
	"github.com/constraint-framework/cspy/pkg/cspy/input"
)

// basePalette is enough for any flat map when only direct neighbors
// must differ.
var basePalette = []cspy.Value{"Red", "Yellow", "Blue", "Green"}

// extendedPalette serves neighborhood distances greater than one.
var extendedPalette = []cspy.Value{
	"Red", "Yellow", "Blue", "Green", "Brown", "Khaki", "Silver", "Olive",
	"White", "Cyan", "Orange", "Pink", "Magenta", "Lavender", "Black", "Teal", "Purple",
}

var _ input.ProblemSource = &MapProblemSource{}

// MapProblemSource builds a coloring model for one atlas: a variable
// per region, the palette as every domain, and a not-equal constraint
// in both directions between every pair of regions within the
// neighborhood distance of each other. Each GetProblem call builds a
// fresh model, so one source can feed several solves.
type MapProblemSource struct {
	borders  map[string][]string
	palette  []cspy.Value
	distance int
}

func NewMapProblemSource(borders map[string][]string, palette []cspy.Value, distance int) *MapProblemSource {
	return &MapProblemSource{
		borders:  borders,
		palette:  palette,
		distance: distance,
	}
}

func (s *MapProblemSource) GetProblem(_ context.Context) (*cspy.Model, error) {
	model := cspy.NewModel()

	regions := make([]string, 0, len(s.borders))
	for region := range s.borders {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	for _, region := range regions {
		if err := model.AddVariable(cspy.Identifier(region), s.palette); err != nil {
			return nil, err
		}
	}
	for _, region := range regions {
		for _, neighbor := range s.withinDistance(region) {
			if err := model.AddConstraint(constraint.NotEqual(), cspy.Identifier(region), cspy.Identifier(neighbor)); err != nil {
				return nil, err
			}
		}
	}
	return model, nil
}

// withinDistance returns every region reachable from start in at most
// distance border crossings, sorted, start excluded.
func (s *MapProblemSource) withinDistance(start string) []string {
	seen := map[string]bool{start: true}
	frontier := []string{start}
	var reach []string
	for hop := 0; hop < s.distance; hop++ {
		var next []string
		for _, region := range frontier {
			for _, neighbor := range s.borders[region] {
				if seen[neighbor] {
					continue
				}
				seen[neighbor] = true
				reach = append(reach, neighbor)
				next = append(next, neighbor)
			}
		}
		frontier = next
	}
	sort.Strings(reach)
	return reach
}
