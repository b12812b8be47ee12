package sat

import (
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/constraint-framework/cspy/pkg/cspy"
)

// selection is one (variable, value) choice, the unit the encoding
// assigns a literal to.
type selection struct {
	variable cspy.Identifier
	value    cspy.Value
}

// litMapping performs translation between a constraint model and the
// variables that appear in the SAT formula: one literal per candidate
// (variable, value) pair.
type litMapping struct {
	model *cspy.Model
	lits  map[selection]z.Lit
	top   z.Var
}

func newLitMapping(model *cspy.Model) *litMapping {
	return &litMapping{
		model: model,
		lits:  make(map[selection]z.Lit),
	}
}

// LitOf returns the positive literal standing for "variable takes
// value", allocating it on first use.
func (d *litMapping) LitOf(variable cspy.Identifier, value cspy.Value) z.Lit {
	s := selection{variable: variable, value: value}
	if m, ok := d.lits[s]; ok {
		return m
	}
	d.top++
	m := d.top.Pos()
	d.lits[s] = m
	return m
}

// AddClauses teaches the model to the solver: an at-least-one clause
// over each variable's domain, and a conflict clause forbidding each
// incompatible value pair of every arc. A variable with an empty domain
// contributes an empty clause, making the formula trivially
// unsatisfiable.
func (d *litMapping) AddClauses(g inter.Adder) {
	for _, variable := range d.model.Variables() {
		for _, value := range d.model.Domain(variable) {
			g.Add(d.LitOf(variable, value))
		}
		g.Add(z.LitNull)
	}
	for _, arc := range d.model.Arcs() {
		for _, subjectValue := range d.model.Domain(arc.Subject) {
			for _, neighborValue := range d.model.Domain(arc.Neighbor) {
				if arc.Constraint.Compatible(subjectValue, neighborValue) {
					continue
				}
				g.Add(d.LitOf(arc.Subject, subjectValue).Not())
				g.Add(d.LitOf(arc.Neighbor, neighborValue).Not())
				g.Add(z.LitNull)
			}
		}
	}
}

// Selection reads a satisfying assignment back out of the solver,
// taking the first true value in domain order for each variable. The
// encoding carries no at-most-one clauses, so the solver may mark
// several values true for one variable; every marked value is
// compatible with every marked value of every neighbor, so the first
// one is as good as any.
func (d *litMapping) Selection(g inter.S) cspy.Assignment {
	assignment := make(cspy.Assignment, len(d.model.Variables()))
	for _, variable := range d.model.Variables() {
		for _, value := range d.model.Domain(variable) {
			if g.Value(d.LitOf(variable, value)) {
				assignment[variable] = value
				break
			}
		}
	}
	return assignment
}
