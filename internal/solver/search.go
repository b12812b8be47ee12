package solver

import (
	"context"

	"github.com/constraint-framework/cspy/pkg/cspy"
)

var _ cspy.SearchPosition = searchPosition{}

type searchPosition struct {
	assignment cspy.Assignment
	conflicts  []cspy.Arc
}

func (p searchPosition) Assignment() cspy.Assignment {
	return p.assignment
}

func (p searchPosition) Conflicts() []cspy.Arc {
	return p.conflicts
}

// search is one frame of recursive backtracking. Each call owns a
// removal journal: the arc-consistency pass seeds it, the tried value's
// forward-check removals extend it, and Unassign drains it when the
// branch fails. A call that pruned arcs but found no value worth trying
// fails without restoring those prunes.
func (s *solver) search(ctx context.Context) (bool, error) {
	var journal []cspy.Removal
	if s.useAC3 {
		var err error
		journal, err = s.reduceArcs()
		if err != nil {
			return false, err
		}
	}

	if s.model.IsComplete() {
		return true, nil
	}

	if err := ctx.Err(); err != nil {
		if err := s.model.Restore(journal); err != nil {
			return false, err
		}
		return false, ErrIncomplete
	}

	variable := s.selectVariable()
	for _, value := range s.orderValues(variable) {
		if !s.model.IsConsistent(variable, value) {
			s.tracer.Trace(s.position(variable, value))
			continue
		}
		if !s.model.IsAssigned(variable) {
			if _, err := s.model.Assign(variable, value); err != nil {
				return false, err
			}
			removed, err := s.model.RemoveValue(variable, value)
			if err != nil {
				return false, err
			}
			journal = append(journal, removed...)
		}

		found, err := s.search(ctx)
		if found {
			return true, nil
		}
		if uerr := s.model.Unassign(journal, variable); uerr != nil {
			return false, uerr
		}
		if err != nil {
			return false, err
		}
		journal = nil
	}
	return false, nil
}

// position captures the state of the search at the moment a candidate
// value is rejected. The assignment map is the live one; tracers that
// retain it must copy it.
func (s *solver) position(variable cspy.Identifier, value cspy.Value) searchPosition {
	assignment := s.model.Assignment()
	var conflicts []cspy.Arc
	for _, arc := range s.model.ArcsFrom(variable) {
		neighborValue, ok := assignment[arc.Neighbor]
		if !ok {
			continue
		}
		if !arc.Constraint.Compatible(value, neighborValue) {
			conflicts = append(conflicts, arc)
		}
	}
	return searchPosition{assignment: assignment, conflicts: conflicts}
}
