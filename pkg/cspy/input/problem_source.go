package input

import (
	"context"

	"github.com/constraint-framework/cspy/pkg/cspy"
)

// ProblemSource builds a constraint model from wherever problems come
// from: a file on disk, a generator, a remote catalog.
type ProblemSource interface {
	GetProblem(ctx context.Context) (*cspy.Model, error)
}

var _ ProblemSource = &StaticProblemSource{}

type StaticProblemSource struct {
	model *cspy.Model
}

func (s *StaticProblemSource) GetProblem(_ context.Context) (*cspy.Model, error) {
	return s.model, nil
}

func NewStaticProblemSource(model *cspy.Model) *StaticProblemSource {
	return &StaticProblemSource{model: model}
}
