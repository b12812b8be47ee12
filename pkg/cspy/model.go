package cspy

import (
	"fmt"
	"slices"
)

// Model holds the variables, domains, constraints, and assignment state
// of one binary constraint satisfaction problem. It carries no search
// policy: the search engine drives it through Assign, RemoveValue,
// Prune, and Unassign, and every domain mutation made on behalf of an
// assignment attempt is journaled so the attempt can be undone exactly.
//
// A Model is built once (variables and constraints registered before
// solving starts) and is owned by a single search; it is not safe for
// concurrent use.
type Model struct {
	domains    map[Identifier][]Value
	order      []Identifier
	unassigned []Identifier
	arcs       []Arc
	arcIndex   map[Identifier][]Arc
	assignment Assignment
	attempts   int
}

func NewModel() *Model {
	return &Model{
		domains:    make(map[Identifier][]Value),
		arcIndex:   make(map[Identifier][]Arc),
		assignment: make(Assignment),
	}
}

// AddVariable registers a variable with its initial candidate values
// and adds it to the unassigned set. The domain is copied; the caller's
// slice is not retained. Registering the same variable twice returns
// DuplicateVariable.
func (m *Model) AddVariable(v Identifier, domain []Value) error {
	if _, ok := m.domains[v]; ok {
		return DuplicateVariable(v)
	}
	m.domains[v] = slices.Clone(domain)
	m.order = append(m.order, v)
	m.unassigned = append(m.unassigned, v)
	return nil
}

// AddConstraint registers a directed constraint keyed on subject a with
// neighbor b. Both endpoints must already be registered. When an arc
// already exists for the exact ordered pair (a, b) the call is a no-op:
// the first registration wins.
func (m *Model) AddConstraint(c Constraint, a, b Identifier) error {
	if _, ok := m.domains[a]; !ok {
		return UnknownVariable(a)
	}
	if _, ok := m.domains[b]; !ok {
		return UnknownVariable(b)
	}
	for _, arc := range m.arcIndex[a] {
		if arc.Neighbor == b {
			return nil
		}
	}
	arc := Arc{Subject: a, Neighbor: b, Constraint: c}
	m.arcIndex[a] = append(m.arcIndex[a], arc)
	m.arcs = append(m.arcs, arc)
	return nil
}

// Assign marks v assigned to value, moves it from the unassigned set to
// the assignment, and counts the attempt. The returned bool reports
// whether the assignment is consistent with the current assignments of
// v's neighbors; it is advisory only, and callers that did not
// pre-filter with IsConsistent must consult it before trusting the
// assignment.
func (m *Model) Assign(v Identifier, value Value) (bool, error) {
	if _, ok := m.domains[v]; !ok {
		return false, UnknownVariable(v)
	}
	if _, ok := m.assignment[v]; ok {
		return false, fmt.Errorf("variable %q is already assigned", v)
	}
	m.assignment[v] = value
	i := slices.Index(m.unassigned, v)
	m.unassigned = slices.Delete(m.unassigned, i, i+1)
	m.attempts++
	return m.IsConsistent(v, value), nil
}

// IsConsistent reports whether assigning value to v would violate any
// constraint keyed on v given the neighbors' current assignments. A
// constraint whose neighbor is still unassigned cannot reject the
// value: there is nothing to check against yet.
func (m *Model) IsConsistent(v Identifier, value Value) bool {
	for _, arc := range m.arcIndex[v] {
		neighborValue, ok := m.assignment[arc.Neighbor]
		if !ok {
			continue
		}
		if !arc.Constraint.Compatible(value, neighborValue) {
			return false
		}
	}
	return true
}

// IsComplete reports whether every variable has been assigned.
func (m *Model) IsComplete() bool {
	return len(m.unassigned) == 0
}

// IsAssigned reports whether v currently holds an assignment.
func (m *Model) IsAssigned(v Identifier) bool {
	_, ok := m.assignment[v]
	return ok
}

// RemoveValue collapses v's domain to the singleton {value}, journaling
// every other value it held, and then forward-checks: for each arc
// keyed on v, value is removed from the neighbor's domain when present
// and journaled too. The returned journal is everything this call
// removed; passing it to Unassign (or Restore) puts all of it back.
func (m *Model) RemoveValue(v Identifier, value Value) ([]Removal, error) {
	domain, ok := m.domains[v]
	if !ok {
		return nil, UnknownVariable(v)
	}
	var removed []Removal
	for _, other := range domain {
		if other != value {
			removed = append(removed, Removal{Variable: v, Value: other})
		}
	}
	m.domains[v] = []Value{value}
	for _, arc := range m.arcIndex[v] {
		neighborDomain := m.domains[arc.Neighbor]
		if i := slices.Index(neighborDomain, value); i >= 0 {
			m.domains[arc.Neighbor] = slices.Delete(neighborDomain, i, i+1)
			removed = append(removed, Removal{Variable: arc.Neighbor, Value: value})
		}
	}
	return removed, nil
}

// Prune removes a single value from v's domain when present and reports
// whether it did. It is the primitive arc-consistency propagation is
// built on; callers are responsible for journaling the removal.
func (m *Model) Prune(v Identifier, value Value) (bool, error) {
	domain, ok := m.domains[v]
	if !ok {
		return false, UnknownVariable(v)
	}
	i := slices.Index(domain, value)
	if i < 0 {
		return false, nil
	}
	m.domains[v] = slices.Delete(domain, i, i+1)
	return true, nil
}

// Restore puts every journaled value back into its variable's domain,
// exactly once per entry. Restoration is set-like: a restored domain
// holds the same values as before the removals, not necessarily in the
// same order.
func (m *Model) Restore(removals []Removal) error {
	for _, r := range removals {
		domain, ok := m.domains[r.Variable]
		if !ok {
			return UnknownVariable(r.Variable)
		}
		m.domains[r.Variable] = append(domain, r.Value)
	}
	return nil
}

// Unassign deletes v's assignment, returns it to the back of the
// unassigned set, and restores the removal journal accumulated by the
// attempt. When v is not assigned the call does nothing, journal
// included.
func (m *Model) Unassign(removals []Removal, v Identifier) error {
	if _, ok := m.assignment[v]; !ok {
		return nil
	}
	delete(m.assignment, v)
	m.unassigned = append(m.unassigned, v)
	return m.Restore(removals)
}

// Variables returns every registered variable in insertion order. The
// returned slice is owned by the Model and must not be mutated.
func (m *Model) Variables() []Identifier {
	return m.order
}

// Unassigned returns the variables that do not hold an assignment. A
// variable that has been unassigned reappears at the back of the list,
// not at its original position. The returned slice is owned by the
// Model and must not be mutated.
func (m *Model) Unassigned() []Identifier {
	return m.unassigned
}

// Domain returns the current candidate values for v in domain order, or
// nil when v is unknown. The returned slice is owned by the Model and
// must not be mutated.
func (m *Model) Domain(v Identifier) []Value {
	return m.domains[v]
}

// Arcs returns every registered constraint arc in registration order.
// The returned slice is owned by the Model and must not be mutated.
func (m *Model) Arcs() []Arc {
	return m.arcs
}

// ArcsFrom returns the constraint arcs keyed on subject v. The returned
// slice is owned by the Model and must not be mutated.
func (m *Model) ArcsFrom(v Identifier) []Arc {
	return m.arcIndex[v]
}

// Assignment returns the live assignment map. It is not a copy: a
// caller that holds on to it across further mutation (or mutates it)
// must copy it first.
func (m *Model) Assignment() Assignment {
	return m.assignment
}

// Attempts returns the total number of assignment attempts made against
// this model, for reporting by callers.
func (m *Model) Attempts() int {
	return m.attempts
}
