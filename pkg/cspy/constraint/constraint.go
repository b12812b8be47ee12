package constraint

import (
	"fmt"

	"github.com/constraint-framework/cspy/pkg/cspy"
)

type UserFriendlyConstraintMessageFormatter func(constraint cspy.Constraint, subject cspy.Identifier, neighbor cspy.Identifier) string

type UserFriendlyConstraint struct {
	cspy.Constraint
	messageFormatter UserFriendlyConstraintMessageFormatter
}

func (constraint *UserFriendlyConstraint) String(subject cspy.Identifier, neighbor cspy.Identifier) string {
	return constraint.messageFormatter(constraint, subject, neighbor)
}

func NewUserFriendlyConstraint(constraint cspy.Constraint, messageFormatter UserFriendlyConstraintMessageFormatter) *UserFriendlyConstraint {
	return &UserFriendlyConstraint{
		Constraint:       constraint,
		messageFormatter: messageFormatter,
	}
}

type NotEqualConstraint struct{}

func (constraint *NotEqualConstraint) Compatible(a, b cspy.Value) bool {
	return a != b
}

func (constraint *NotEqualConstraint) String(subject cspy.Identifier, neighbor cspy.Identifier) string {
	return fmt.Sprintf("%s must differ from %s", subject, neighbor)
}

// NotEqual returns a Constraint that permits a pair of values only when
// they differ. It is the workhorse of coloring-style problems.
func NotEqual() cspy.Constraint {
	return &NotEqualConstraint{}
}

type EqualConstraint struct{}

func (constraint *EqualConstraint) Compatible(a, b cspy.Value) bool {
	return a == b
}

func (constraint *EqualConstraint) String(subject cspy.Identifier, neighbor cspy.Identifier) string {
	return fmt.Sprintf("%s must equal %s", subject, neighbor)
}

// Equal returns a Constraint that permits a pair of values only when
// they are identical.
func Equal() cspy.Constraint {
	return &EqualConstraint{}
}

type PredicateConstraint struct {
	description string
	test        func(a, b cspy.Value) bool
}

func (constraint *PredicateConstraint) Compatible(a, b cspy.Value) bool {
	return constraint.test(a, b)
}

func (constraint *PredicateConstraint) String(subject cspy.Identifier, neighbor cspy.Identifier) string {
	return fmt.Sprintf("%s %s %s", subject, constraint.description, neighbor)
}

// Predicate returns a Constraint backed by an arbitrary compatibility
// test. The description is used when the constraint is rendered, as in
// "%subject %description %neighbor".
func Predicate(description string, test func(a, b cspy.Value) bool) cspy.Constraint {
	return &PredicateConstraint{
		description: description,
		test:        test,
	}
}
