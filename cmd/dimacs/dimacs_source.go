package dimacs

import (
	"context"
	"fmt"
	"slices"

	"github.com/constraint-framework/cspy/pkg/cspy"
	"github.com/constraint-framework/cspy/pkg/cspy/constraint"
	"github.com/constraint-framework/cspy/pkg/cspy/input"
)

var _ input.ProblemSource = &DimacsProblemSource{}

// DimacsProblemSource turns a parsed 2-sat instance into a binary
// constraint model. Every variable's domain holds its own literal in
// both polarities ("3" and "-3"), never a bare boolean: assignment
// propagation removes the assigned value from neighboring domains, so
// values must be unique per variable to keep that pruning from crossing
// variables. Unit clauses narrow the domain of their variable, and the
// two-literal clauses over each pair of variables conjoin into one
// constraint per direction. Clauses wider than two literals have no
// binary encoding and are rejected. Each GetProblem call builds a fresh
// model.
type DimacsProblemSource struct {
	dimacs *Dimacs
}

func NewDimacsProblemSource(dimacs *Dimacs) *DimacsProblemSource {
	return &DimacsProblemSource{dimacs: dimacs}
}

type pair struct {
	a, b string
}

func (s *DimacsProblemSource) GetProblem(_ context.Context) (*cspy.Model, error) {
	domains := make(map[string][]cspy.Value, len(s.dimacs.Variables()))
	for _, variable := range s.dimacs.Variables() {
		domains[variable] = []cspy.Value{literalValue(variable, false), literalValue(variable, true)}
	}

	clausesByPair := map[pair][][]Literal{}
	var pairsInOrder []pair

	for _, clause := range s.dimacs.Clauses() {
		switch len(clause) {
		case 1:
			variable := clause[0].Variable
			domains[variable] = narrow(domains[variable], wantedValue(clause[0]))
		case 2:
			x, y := clause[0], clause[1]
			if x.Variable == y.Variable {
				if x.Negated == y.Negated {
					// (l or l) is just l
					domains[x.Variable] = narrow(domains[x.Variable], wantedValue(x))
				}
				// (l or not l) always holds
				continue
			}
			p := pair{a: x.Variable, b: y.Variable}
			if p.b < p.a {
				p.a, p.b = p.b, p.a
			}
			if _, ok := clausesByPair[p]; !ok {
				pairsInOrder = append(pairsInOrder, p)
			}
			clausesByPair[p] = append(clausesByPair[p], clause)
		default:
			return nil, fmt.Errorf("clause with %d literals cannot be expressed as a binary constraint", len(clause))
		}
	}

	model := cspy.NewModel()
	for _, variable := range s.dimacs.Variables() {
		if err := model.AddVariable(cspy.IdentifierFromString(variable), domains[variable]); err != nil {
			return nil, err
		}
	}
	for _, p := range pairsInOrder {
		clauses := clausesByPair[p]
		if err := model.AddConstraint(conjoined(clauses, p.a), cspy.Identifier(p.a), cspy.Identifier(p.b)); err != nil {
			return nil, err
		}
		if err := model.AddConstraint(conjoined(clauses, p.b), cspy.Identifier(p.b), cspy.Identifier(p.a)); err != nil {
			return nil, err
		}
	}
	return model, nil
}

// conjoined builds the constraint enforcing every clause over one pair
// of variables, evaluated with subject holding the first argument.
func conjoined(clauses [][]Literal, subject string) cspy.Constraint {
	description := fmt.Sprintf("jointly satisfies %d clauses with", len(clauses))
	return constraint.Predicate(description, func(a, b cspy.Value) bool {
		for _, clause := range clauses {
			if !clauseHolds(clause, subject, a, b) {
				return false
			}
		}
		return true
	})
}

func clauseHolds(clause []Literal, subject string, subjectValue, neighborValue cspy.Value) bool {
	for _, literal := range clause {
		value := neighborValue
		if literal.Variable == subject {
			value = subjectValue
		}
		if value == wantedValue(literal) {
			return true
		}
	}
	return false
}

// literalValue spells a variable's value the way DIMACS spells the
// literal: the variable itself for true, with a leading minus for
// false.
func literalValue(variable string, negated bool) cspy.Value {
	if negated {
		return cspy.Value("-" + variable)
	}
	return cspy.Value(variable)
}

func wantedValue(literal Literal) cspy.Value {
	return literalValue(literal.Variable, literal.Negated)
}

// Truthy reports whether a value produced by this source stands for
// true.
func Truthy(value cspy.Value) bool {
	return len(value) > 0 && value[0] != '-'
}

// narrow intersects a domain with a single required value. Conflicting
// unit clauses leave the domain empty, which makes the model
// unsatisfiable.
func narrow(domain []cspy.Value, keep cspy.Value) []cspy.Value {
	if slices.Contains(domain, keep) {
		return []cspy.Value{keep}
	}
	return nil
}
