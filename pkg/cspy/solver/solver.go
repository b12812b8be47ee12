package solver

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/constraint-framework/cspy/internal/logger"
	"github.com/constraint-framework/cspy/internal/solver"
	"github.com/constraint-framework/cspy/pkg/cspy"
	"github.com/constraint-framework/cspy/pkg/cspy/input"
)

// ErrIncomplete is returned by Solve when its Context is cancelled
// before the search finds a solution or exhausts the search space.
var ErrIncomplete = solver.ErrIncomplete

// Solution is returned by the Solver when the search executed
// successfully. A successful execution of the solver can still end in
// an error when no assignment satisfies every constraint.
type Solution struct {
	err        error
	assignment cspy.Assignment
	attempts   int
	model      *cspy.Model
}

// Error returns the search error in case the problem is unsatisfiable.
// On successful resolution, it will return nil.
func (s *Solution) Error() error {
	return s.err
}

// Assignment returns the complete assignment found by the solver, or
// nil when there is none.
func (s *Solution) Assignment() cspy.Assignment {
	return s.assignment
}

// Value returns the value the solution assigns to the given variable.
func (s *Solution) Value(variable cspy.Identifier) (cspy.Value, bool) {
	value, ok := s.assignment[variable]
	return value, ok
}

// Attempts returns the number of assignment attempts the search made,
// counting every value tried on every variable.
func (s *Solution) Attempts() int {
	return s.attempts
}

// Model returns the model the solver worked on. Note: This is only
// present if the AddModelToSolution option is passed in to the Solve
// call that generated the solution.
func (s *Solution) Model() *cspy.Model {
	return s.model
}

type solutionOptions struct {
	addModelToSolution bool
}

func (s *solutionOptions) apply(options ...SolveOption) *solutionOptions {
	for _, applyOption := range options {
		applyOption(s)
	}
	return s
}

func defaultSolutionOptions() *solutionOptions {
	return &solutionOptions{
		addModelToSolution: false,
	}
}

type SolveOption func(solutionOptions *solutionOptions)

// AddModelToSolution is a Solve option that instructs the solver to
// include the solved model in the Solution it produces
func AddModelToSolution() SolveOption {
	return func(solutionOptions *solutionOptions) {
		solutionOptions.addModelToSolution = true
	}
}

// CspySolver is a simple solver implementation that takes a problem
// source and search options to produce a Solution (or an error when
// the search could not run)
type CspySolver struct {
	problemSource input.ProblemSource
	tracer        cspy.Tracer
	logger        zerolog.Logger
	useMRV        bool
	useLCV        bool
	useAC3        bool
}

func NewCspySolver(problemSource input.ProblemSource, options ...Option) (*CspySolver, error) {
	s := CspySolver{
		problemSource: problemSource,
		logger:        logger.Logger(),
	}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *CspySolver) error

func WithTracer(t cspy.Tracer) Option {
	return func(s *CspySolver) error {
		s.tracer = t
		return nil
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *CspySolver) error {
		s.logger = logger
		return nil
	}
}

// WithMRV enables minimum-remaining-values variable selection.
func WithMRV(use bool) Option {
	return func(s *CspySolver) error {
		s.useMRV = use
		return nil
	}
}

// WithLCV enables least-constraining-value ordering.
func WithLCV(use bool) Option {
	return func(s *CspySolver) error {
		s.useLCV = use
		return nil
	}
}

// WithAC3 enables a single arc-consistency pass at the start of every
// search call.
func WithAC3(use bool) Option {
	return func(s *CspySolver) error {
		s.useAC3 = use
		return nil
	}
}

var defaults = []Option{
	func(s *CspySolver) error {
		if s.tracer == nil {
			s.tracer = solver.DefaultTracer{}
		}
		return nil
	},
}

func (s CspySolver) Solve(ctx context.Context, options ...SolveOption) (*Solution, error) {
	solutionOpts := defaultSolutionOptions().apply(options...)

	model, err := s.problemSource.GetProblem(ctx)
	if err != nil {
		return nil, err
	}

	engine, err := solver.NewSolver(
		solver.WithModel(model),
		solver.WithTracer(s.tracer),
		solver.WithLogger(s.logger),
		solver.WithMRV(s.useMRV),
		solver.WithLCV(s.useLCV),
		solver.WithAC3(s.useAC3),
	)
	if err != nil {
		return nil, err
	}

	assignment, err := engine.Solve(ctx)
	if err != nil && !errors.Is(err, cspy.ErrNotSatisfiable) {
		return nil, err
	}

	solution := &Solution{
		assignment: assignment,
		attempts:   model.Attempts(),
	}
	if err != nil {
		solution.err = err
	}
	if solutionOpts.addModelToSolution {
		solution.model = model
	}
	return solution, nil
}
