package solver

import (
	"fmt"
	"io"
	"sort"

	"github.com/constraint-framework/cspy/pkg/cspy"
)

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ cspy.SearchPosition) {
}

// LoggingTracer writes every rejected candidate to Writer: the
// assignments in effect, sorted by variable for stable output, followed
// by the arcs the candidate violated.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p cspy.SearchPosition) {
	assignment := p.Assignment()
	variables := make([]string, 0, len(assignment))
	for variable := range assignment {
		variables = append(variables, string(variable))
	}
	sort.Strings(variables)

	fmt.Fprintf(t.Writer, "---\nAssignments:\n")
	for _, variable := range variables {
		fmt.Fprintf(t.Writer, "- %s = %s\n", variable, assignment[cspy.Identifier(variable)])
	}
	fmt.Fprintf(t.Writer, "Conflict:\n")
	for _, arc := range p.Conflicts() {
		fmt.Fprintf(t.Writer, "- %s\n", arc)
	}
}
