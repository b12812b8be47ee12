package cspy

import (
	"errors"
	"fmt"
)

// ErrNotSatisfiable is returned by the search when no complete assignment
// satisfies every registered constraint. It is an expected outcome of a
// well-formed problem, not an internal failure: callers are expected to
// distinguish it from structural errors and report "no solution" rather
// than crash.
var ErrNotSatisfiable = errors.New("constraints not satisfiable")

// DuplicateVariable is returned when a variable is registered twice
// with the same Model.
type DuplicateVariable Identifier

func (e DuplicateVariable) Error() string {
	return fmt.Sprintf("duplicate variable %q in model", Identifier(e))
}

// UnknownVariable is returned when an operation names a variable that
// was never registered with the Model.
type UnknownVariable Identifier

func (e UnknownVariable) Error() string {
	return fmt.Sprintf("unknown variable %q", Identifier(e))
}

// Identifier values uniquely identify particular Variables within
// a single Model.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// IdentifierFromString returns an Identifier based on a provided
// string.
func IdentifierFromString(s string) Identifier {
	return Identifier(s)
}

// Value is one candidate from a variable's domain. Callers that solve
// over richer objects map them to Value handles, the same way they map
// variables to Identifiers.
type Value string

func (v Value) String() string {
	return string(v)
}

// Assignment maps each assigned variable to its chosen value.
type Assignment map[Identifier]Value

// Removal records a single value removed from a single variable's
// domain. A slice of Removals is the undo journal for one assignment
// attempt: restoring it puts every journaled value back, exactly once
// per entry. Journals are set-like; restoration order is not
// significant.
type Removal struct {
	Variable Identifier
	Value    Value
}

// Constraint implementations limit the value pairs an ordered pair of
// variables may take together.
type Constraint interface {
	// Compatible reports whether value a on the subject variable may
	// coexist with value b on the neighbor variable.
	Compatible(a, b Value) bool
	// String returns a human-readable message describing the
	// constraint as applied to a subject/neighbor pair.
	String(subject, neighbor Identifier) string
}

// Arc composes a single Constraint with the ordered variable pair it
// binds. Constraints are directed: an Arc keyed on Subject says nothing
// about the reverse direction unless the caller registers that arc too.
type Arc struct {
	Subject    Identifier
	Neighbor   Identifier
	Constraint Constraint
}

// String implements fmt.Stringer and returns a human-readable message
// representing the receiver.
func (a Arc) String() string {
	return a.Constraint.String(a.Subject, a.Neighbor)
}
