package sat

import (
	"context"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"

	"github.com/constraint-framework/cspy/pkg/cspy"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Solver decides satisfiability of a constraint model by translating it
// to CNF and handing it to a SAT solver. It shares nothing with the
// backtracking engine beyond the model, which makes it an independent
// check on that engine's answers.
type Solver interface {
	Solve(context.Context) (cspy.Assignment, error)
}

type solver struct {
	g      inter.S
	litMap *litMapping
}

func (s *solver) Solve(_ context.Context) (cspy.Assignment, error) {
	s.litMap.AddClauses(s.g)
	switch s.g.Solve() {
	case satisfiable:
		return s.litMap.Selection(s.g), nil
	case unsatisfiable:
		return nil, cspy.ErrNotSatisfiable
	}
	return nil, fmt.Errorf("sat solver decided neither satisfiable nor unsatisfiable")
}

func NewSolver(options ...Option) (Solver, error) {
	s := solver{g: gini.New()}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *solver) error

func WithModel(model *cspy.Model) Option {
	return func(s *solver) error {
		s.litMap = newLitMapping(model)
		return nil
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.litMap == nil {
			s.litMap = newLitMapping(cspy.NewModel())
		}
		return nil
	},
}
