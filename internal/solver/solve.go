package solver

import (
	"context"
	"errors"
	"maps"

	"github.com/rs/zerolog"

	"github.com/constraint-framework/cspy/pkg/cspy"
)

var ErrIncomplete = errors.New("cancelled before a solution could be found")

type Solver interface {
	Solve(context.Context) (cspy.Assignment, error)
}

type solver struct {
	model  *cspy.Model
	tracer cspy.Tracer
	logger zerolog.Logger
	useMRV bool
	useLCV bool
	useAC3 bool
}

// Solve runs backtracking search over the model and returns the first
// complete assignment found, as a copy owned by the caller. When the
// search space is exhausted without a solution it returns
// cspy.ErrNotSatisfiable; when the provided Context is cancelled first
// it returns ErrIncomplete and the model is restored to its pre-search
// state.
func (s *solver) Solve(ctx context.Context) (cspy.Assignment, error) {
	s.logger.Debug().
		Int("variables", len(s.model.Variables())).
		Int("arcs", len(s.model.Arcs())).
		Bool("mrv", s.useMRV).
		Bool("lcv", s.useLCV).
		Bool("ac3", s.useAC3).
		Msg("starting search")

	found, err := s.search(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		s.logger.Debug().Int("attempts", s.model.Attempts()).Msg("search space exhausted")
		return nil, cspy.ErrNotSatisfiable
	}
	s.logger.Debug().Int("attempts", s.model.Attempts()).Msg("solution found")
	return maps.Clone(s.model.Assignment()), nil
}

func NewSolver(options ...Option) (Solver, error) {
	s := solver{logger: zerolog.Nop()}
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
		s.model = model
		return nil
	}
}

func WithTracer(t cspy.Tracer) Option {
	return func(s *solver) error {
		s.tracer = t
		return nil
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *solver) error {
		s.logger = logger
		return nil
	}
}

// WithMRV enables minimum-remaining-values variable selection: the
// unassigned variable with the smallest current domain is tried first,
// earliest-registered winning ties.
func WithMRV(use bool) Option {
	return func(s *solver) error {
		s.useMRV = use
		return nil
	}
}

// WithLCV enables least-constraining-value ordering: candidate values
// are tried in ascending order of how many unassigned neighbors still
// hold the value in their domains.
func WithLCV(use bool) Option {
	return func(s *solver) error {
		s.useLCV = use
		return nil
	}
}

// WithAC3 enables a single arc-consistency pass over all registered
// arcs at the start of every search call. The pass does not re-enqueue
// arcs when a domain shrinks, so it prunes less than full AC-3; it
// stops early when it empties a domain.
func WithAC3(use bool) Option {
	return func(s *solver) error {
		s.useAC3 = use
		return nil
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.model == nil {
			s.model = cspy.NewModel()
		}
		return nil
	},
	func(s *solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
}
