package solver

import (
	"slices"

	"github.com/constraint-framework/cspy/pkg/cspy"
)

// reduceArcs makes a single pass over every registered arc in
// registration order, pruning subject values that have no support left
// in the neighbor's domain. Arcs are not re-enqueued when a later prune
// shrinks a domain they were checked against, so one pass can leave
// arcs inconsistent that full AC-3 would catch. The pass stops as soon
// as it empties a domain; every prune it made is journaled and
// returned.
func (s *solver) reduceArcs() ([]cspy.Removal, error) {
	var removed []cspy.Removal
	for _, arc := range s.model.Arcs() {
		pruned, err := s.reduceArc(arc)
		if err != nil {
			return removed, err
		}
		removed = append(removed, pruned...)
		if len(s.model.Domain(arc.Subject)) == 0 {
			return removed, nil
		}
	}
	return removed, nil
}

// reduceArc prunes every value of the arc's subject that is compatible
// with none of the neighbor's current values.
func (s *solver) reduceArc(arc cspy.Arc) ([]cspy.Removal, error) {
	var removed []cspy.Removal
	for _, subjectValue := range slices.Clone(s.model.Domain(arc.Subject)) {
		if s.hasSupport(subjectValue, arc) {
			continue
		}
		pruned, err := s.model.Prune(arc.Subject, subjectValue)
		if err != nil {
			return removed, err
		}
		if pruned {
			removed = append(removed, cspy.Removal{Variable: arc.Subject, Value: subjectValue})
		}
	}
	return removed, nil
}

func (s *solver) hasSupport(subjectValue cspy.Value, arc cspy.Arc) bool {
	for _, neighborValue := range s.model.Domain(arc.Neighbor) {
		if arc.Constraint.Compatible(subjectValue, neighborValue) {
			return true
		}
	}
	return false
}
