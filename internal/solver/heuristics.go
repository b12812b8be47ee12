package solver

import (
	"slices"

	"github.com/constraint-framework/cspy/pkg/cspy"
)

func (s *solver) selectVariable() cspy.Identifier {
	if s.useMRV {
		return s.minimumRemainingValues()
	}
	return s.model.Unassigned()[0]
}

// minimumRemainingValues picks the unassigned variable with the
// smallest current domain. Only a strictly smaller domain displaces the
// running best, so ties go to the variable encountered first.
func (s *solver) minimumRemainingValues() cspy.Identifier {
	var best cspy.Identifier
	bestSize := -1
	for _, variable := range s.model.Unassigned() {
		size := len(s.model.Domain(variable))
		if bestSize < 0 || size < bestSize {
			best = variable
			bestSize = size
		}
	}
	return best
}

func (s *solver) orderValues(variable cspy.Identifier) []cspy.Value {
	if s.useLCV {
		return s.leastConstrainingValues(variable)
	}
	return s.model.Domain(variable)
}

// leastConstrainingValues returns a copy of the variable's domain
// sorted by how many unassigned neighbors still hold each value, fewest
// first. The sort is stable, so values with equal counts keep their
// domain order.
func (s *solver) leastConstrainingValues(variable cspy.Identifier) []cspy.Value {
	arcs := s.model.ArcsFrom(variable)
	ordered := slices.Clone(s.model.Domain(variable))
	counts := make(map[cspy.Value]int, len(ordered))
	for _, value := range ordered {
		count := 0
		for _, arc := range arcs {
			if s.model.IsAssigned(arc.Neighbor) {
				continue
			}
			if slices.Contains(s.model.Domain(arc.Neighbor), value) {
				count++
			}
		}
		counts[value] = count
	}
	slices.SortStableFunc(ordered, func(a, b cspy.Value) int {
		return counts[a] - counts[b]
	})
	return ordered
}
