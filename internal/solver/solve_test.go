package solver

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/constraint-framework/cspy/pkg/cspy"
	"github.com/constraint-framework/cspy/pkg/cspy/constraint"
)

// coloring builds a model whose variables are related by NotEqual arcs
// along the given directed edges. Most search behavior can be expressed
// as a small coloring instance.
func coloring(t *testing.T, order []cspy.Identifier, domains map[cspy.Identifier][]cspy.Value, edges [][2]cspy.Identifier) *cspy.Model {
	t.Helper()
	model := cspy.NewModel()
	for _, v := range order {
		if err := model.AddVariable(v, domains[v]); err != nil {
			t.Fatalf("failed to add variable %q: %s", v, err)
		}
	}
	for _, edge := range edges {
		if err := model.AddConstraint(constraint.NotEqual(), edge[0], edge[1]); err != nil {
			t.Fatalf("failed to add constraint %s != %s: %s", edge[0], edge[1], err)
		}
	}
	return model
}

func TestSolve(t *testing.T) {
	red := cspy.Value("red")
	green := cspy.Value("green")
	blue := cspy.Value("blue")

	type tc struct {
		Name       string
		Order      []cspy.Identifier
		Domains    map[cspy.Identifier][]cspy.Value
		Edges      [][2]cspy.Identifier
		Options    []Option
		Assignment cspy.Assignment
		Attempts   int
		Error      error
	}

	for _, tt := range []tc{
		{
			Name:       "empty model is already solved",
			Assignment: cspy.Assignment{},
		},
		{
			Name:       "single variable takes its first value",
			Order:      []cspy.Identifier{"a"},
			Domains:    map[cspy.Identifier][]cspy.Value{"a": {red, green}},
			Assignment: cspy.Assignment{"a": red},
			Attempts:   1,
		},
		{
			Name:  "static order follows registration and domain order",
			Order: []cspy.Identifier{"a", "b"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green},
				"b": {red, green},
			},
			Edges:      [][2]cspy.Identifier{{"a", "b"}, {"b", "a"}},
			Assignment: cspy.Assignment{"a": red, "b": green},
			Attempts:   2,
		},
		{
			Name:  "forward checking forces a backtrack",
			Order: []cspy.Identifier{"a", "b"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green},
				"b": {red},
			},
			Edges:      [][2]cspy.Identifier{{"a", "b"}, {"b", "a"}},
			Assignment: cspy.Assignment{"a": green, "b": red},
			Attempts:   3,
		},
		{
			Name:  "minimum remaining values assigns the tightest variable first",
			Order: []cspy.Identifier{"a", "b"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green},
				"b": {red},
			},
			Edges:      [][2]cspy.Identifier{{"a", "b"}, {"b", "a"}},
			Options:    []Option{WithMRV(true)},
			Assignment: cspy.Assignment{"a": green, "b": red},
			Attempts:   2,
		},
		{
			Name:  "most constraining value first pays for it",
			Order: []cspy.Identifier{"a", "b", "c"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {green, red},
				"b": {green, blue},
				"c": {green},
			},
			Edges:      [][2]cspy.Identifier{{"a", "b"}, {"b", "a"}, {"a", "c"}, {"c", "a"}},
			Assignment: cspy.Assignment{"a": red, "b": blue, "c": green},
			Attempts:   5,
		},
		{
			Name:  "least constraining value avoids the backtrack",
			Order: []cspy.Identifier{"a", "b", "c"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {green, red},
				"b": {green, blue},
				"c": {green},
			},
			Edges:      [][2]cspy.Identifier{{"a", "b"}, {"b", "a"}, {"a", "c"}, {"c", "a"}},
			Options:    []Option{WithLCV(true)},
			Assignment: cspy.Assignment{"a": red, "b": green, "c": green},
			Attempts:   3,
		},
		{
			Name:  "doomed value is attempted without arc consistency",
			Order: []cspy.Identifier{"a", "b"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green},
				"b": {red},
			},
			Edges:      [][2]cspy.Identifier{{"a", "b"}},
			Assignment: cspy.Assignment{"a": green, "b": red},
			Attempts:   3,
		},
		{
			Name:  "arc consistency prunes the doomed value up front",
			Order: []cspy.Identifier{"a", "b"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green},
				"b": {red},
			},
			Edges:      [][2]cspy.Identifier{{"a", "b"}},
			Options:    []Option{WithAC3(true)},
			Assignment: cspy.Assignment{"a": green, "b": red},
			Attempts:   2,
		},
		{
			Name:  "single pass does not revisit earlier arcs",
			Order: []cspy.Identifier{"a", "b", "c"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red},
				"b": {red, green},
				"c": {red, green, blue},
			},
			Edges:      [][2]cspy.Identifier{{"c", "b"}, {"b", "a"}},
			Options:    []Option{WithAC3(true)},
			Assignment: cspy.Assignment{"a": red, "b": green, "c": red},
			Attempts:   3,
		},
		{
			Name:  "triangle with three colors",
			Order: []cspy.Identifier{"a", "b", "c"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green, blue},
				"b": {red, green, blue},
				"c": {red, green, blue},
			},
			Edges: [][2]cspy.Identifier{
				{"a", "b"}, {"b", "a"},
				{"a", "c"}, {"c", "a"},
				{"b", "c"}, {"c", "b"},
			},
			Assignment: cspy.Assignment{"a": red, "b": green, "c": blue},
			Attempts:   3,
		},
		{
			Name:  "triangle with two colors is not satisfiable",
			Order: []cspy.Identifier{"a", "b", "c"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green},
				"b": {red, green},
				"c": {red, green},
			},
			Edges: [][2]cspy.Identifier{
				{"a", "b"}, {"b", "a"},
				{"a", "c"}, {"c", "a"},
				{"b", "c"}, {"c", "b"},
			},
			Attempts: 4,
			Error:    cspy.ErrNotSatisfiable,
		},
		{
			Name:  "all heuristics together still find the triangle solution",
			Order: []cspy.Identifier{"a", "b", "c"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green, blue},
				"b": {red, green, blue},
				"c": {red, green, blue},
			},
			Edges: [][2]cspy.Identifier{
				{"a", "b"}, {"b", "a"},
				{"a", "c"}, {"c", "a"},
				{"b", "c"}, {"c", "b"},
			},
			Options:    []Option{WithMRV(true), WithLCV(true), WithAC3(true)},
			Assignment: cspy.Assignment{"a": red, "b": green, "c": blue},
			Attempts:   3,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert := assert.New(t)

			var traces bytes.Buffer
			model := coloring(t, tt.Order, tt.Domains, tt.Edges)
			options := append([]Option{
				WithModel(model),
				WithTracer(LoggingTracer{Writer: &traces}),
			}, tt.Options...)

			s, err := NewSolver(options...)
			if err != nil {
				t.Fatalf("failed to initialize solver: %s", err)
			}

			assignment, err := s.Solve(context.Background())

			if tt.Error != nil {
				assert.Nil(assignment)
				assert.ErrorIs(err, tt.Error)
			} else {
				assert.NoError(err)
				assert.Equal(tt.Assignment, assignment)
			}
			assert.Equal(tt.Attempts, model.Attempts())

			if t.Failed() {
				t.Logf("\n%s", traces.String())
			}
		})
	}
}

// Heuristic combinations the search can run under. The first four
// leave arc consistency off.
var heuristicCombinations = []struct {
	Name    string
	Options []Option
}{
	{Name: "static"},
	{Name: "mrv", Options: []Option{WithMRV(true)}},
	{Name: "lcv", Options: []Option{WithLCV(true)}},
	{Name: "mrv+lcv", Options: []Option{WithMRV(true), WithLCV(true)}},
	{Name: "ac3", Options: []Option{WithAC3(true)}},
	{Name: "mrv+ac3", Options: []Option{WithMRV(true), WithAC3(true)}},
	{Name: "lcv+ac3", Options: []Option{WithLCV(true), WithAC3(true)}},
	{Name: "mrv+lcv+ac3", Options: []Option{WithMRV(true), WithLCV(true), WithAC3(true)}},
}

// Every heuristic combination reaches the status enumeration gives for
// these instances. The satisfiable rows stay clear of value-less
// frames, whose arc reductions outlive the branch.
func TestSolveOutcomeAcrossHeuristics(t *testing.T) {
	red := cspy.Value("red")
	green := cspy.Value("green")
	blue := cspy.Value("blue")

	for _, tt := range []struct {
		Name     string
		Order    []cspy.Identifier
		Domains  map[cspy.Identifier][]cspy.Value
		Edges    [][2]cspy.Identifier
		Solvable bool
	}{
		{
			Name:  "three colored triangle",
			Order: []cspy.Identifier{"a", "b", "c"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green, blue},
				"b": {red, green, blue},
				"c": {red, green, blue},
			},
			Edges: [][2]cspy.Identifier{
				{"a", "b"}, {"b", "a"},
				{"a", "c"}, {"c", "a"},
				{"b", "c"}, {"c", "b"},
			},
			Solvable: true,
		},
		{
			Name:  "two colored triangle",
			Order: []cspy.Identifier{"a", "b", "c"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green},
				"b": {red, green},
				"c": {red, green},
			},
			Edges: [][2]cspy.Identifier{
				{"a", "b"}, {"b", "a"},
				{"a", "c"}, {"c", "a"},
				{"b", "c"}, {"c", "b"},
			},
		},
		{
			Name:  "two colored square",
			Order: []cspy.Identifier{"a", "b", "c", "d"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green},
				"b": {red, green},
				"c": {red, green},
				"d": {red, green},
			},
			Edges: [][2]cspy.Identifier{
				{"a", "b"}, {"b", "a"},
				{"b", "c"}, {"c", "b"},
				{"c", "d"}, {"d", "c"},
				{"d", "a"}, {"a", "d"},
			},
			Solvable: true,
		},
		{
			Name:  "two colored pentagon",
			Order: []cspy.Identifier{"a", "b", "c", "d", "e"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red, green},
				"b": {red, green},
				"c": {red, green},
				"d": {red, green},
				"e": {red, green},
			},
			Edges: [][2]cspy.Identifier{
				{"a", "b"}, {"b", "a"},
				{"b", "c"}, {"c", "b"},
				{"c", "d"}, {"d", "c"},
				{"d", "e"}, {"e", "d"},
				{"e", "a"}, {"a", "e"},
			},
		},
		{
			Name:  "chain anchored by a singleton",
			Order: []cspy.Identifier{"a", "b", "c"},
			Domains: map[cspy.Identifier][]cspy.Value{
				"a": {red},
				"b": {red, green},
				"c": {red, green},
			},
			Edges: [][2]cspy.Identifier{
				{"a", "b"}, {"b", "a"},
				{"b", "c"}, {"c", "b"},
			},
			Solvable: true,
		},
	} {
		for _, combination := range heuristicCombinations {
			t.Run(tt.Name+"/"+combination.Name, func(t *testing.T) {
				assert := assert.New(t)

				model := coloring(t, tt.Order, tt.Domains, tt.Edges)
				s, err := NewSolver(append([]Option{WithModel(model)}, combination.Options...)...)
				if err != nil {
					t.Fatalf("failed to initialize solver: %s", err)
				}

				assignment, err := s.Solve(context.Background())
				if !tt.Solvable {
					assert.ErrorIs(err, cspy.ErrNotSatisfiable)
					return
				}

				assert.NoError(err)
				assert.Len(assignment, len(tt.Order))
				for _, arc := range model.Arcs() {
					assert.True(
						arc.Constraint.Compatible(assignment[arc.Subject], assignment[arc.Neighbor]),
						"%s broken by %s=%s and %s=%s",
						arc, arc.Subject, assignment[arc.Subject], arc.Neighbor, assignment[arc.Neighbor],
					)
				}
			})
		}
	}
}

func TestSolveDefaults(t *testing.T) {
	assert := assert.New(t)

	s, err := NewSolver()
	assert.NoError(err)

	assignment, err := s.Solve(context.Background())
	assert.NoError(err)
	assert.Equal(cspy.Assignment{}, assignment)
}

func TestSolveReturnsACopy(t *testing.T) {
	assert := assert.New(t)

	model := cspy.NewModel()
	assert.NoError(model.AddVariable("a", []cspy.Value{"red"}))

	s, err := NewSolver(WithModel(model))
	assert.NoError(err)

	assignment, err := s.Solve(context.Background())
	assert.NoError(err)

	assignment["a"] = "blue"
	assert.Equal(cspy.Value("red"), model.Assignment()["a"])
}

func TestSolveRestoresModelWhenUnsatisfiable(t *testing.T) {
	assert := assert.New(t)

	red := cspy.Value("red")
	green := cspy.Value("green")
	model := coloring(t,
		[]cspy.Identifier{"a", "b", "c"},
		map[cspy.Identifier][]cspy.Value{
			"a": {red, green},
			"b": {red, green},
			"c": {red, green},
		},
		[][2]cspy.Identifier{
			{"a", "b"}, {"b", "a"},
			{"a", "c"}, {"c", "a"},
			{"b", "c"}, {"c", "b"},
		},
	)

	s, err := NewSolver(WithModel(model))
	assert.NoError(err)

	_, err = s.Solve(context.Background())
	assert.ErrorIs(err, cspy.ErrNotSatisfiable)

	assert.Empty(model.Assignment())
	assert.ElementsMatch([]cspy.Identifier{"a", "b", "c"}, model.Unassigned())
	for _, v := range model.Variables() {
		assert.ElementsMatch([]cspy.Value{red, green}, model.Domain(v), "domain of %q", v)
	}
}

// A frame that runs out of values before attempting any keeps its arc
// reductions. The wiped domain below is still empty after the search.
func TestSolveKeepsReductionsWhenNoValueIsTried(t *testing.T) {
	assert := assert.New(t)

	model := coloring(t,
		[]cspy.Identifier{"a", "b"},
		map[cspy.Identifier][]cspy.Value{
			"a": {"red"},
			"b": {"red"},
		},
		[][2]cspy.Identifier{{"a", "b"}},
	)

	s, err := NewSolver(WithModel(model), WithAC3(true))
	assert.NoError(err)

	_, err = s.Solve(context.Background())
	assert.ErrorIs(err, cspy.ErrNotSatisfiable)
	assert.Empty(model.Domain("a"))
	assert.Equal([]cspy.Value{"red"}, model.Domain("b"))
}

func TestSolveCancelledContext(t *testing.T) {
	assert := assert.New(t)

	red := cspy.Value("red")
	green := cspy.Value("green")
	model := coloring(t,
		[]cspy.Identifier{"a", "b", "c"},
		map[cspy.Identifier][]cspy.Value{
			"a": {red},
			"b": {red, green},
			"c": {red, green, "blue"},
		},
		[][2]cspy.Identifier{{"b", "a"}, {"c", "b"}},
	)

	s, err := NewSolver(WithModel(model), WithAC3(true))
	assert.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assignment, err := s.Solve(ctx)
	assert.Nil(assignment)
	assert.ErrorIs(err, ErrIncomplete)

	// Reductions made before the cancellation was noticed are undone.
	assert.Empty(model.Assignment())
	assert.ElementsMatch([]cspy.Value{red, green}, model.Domain("b"))
	assert.ElementsMatch([]cspy.Value{red, green, "blue"}, model.Domain("c"))
}

func TestSolveIsDeterministic(t *testing.T) {
	assert := assert.New(t)

	build := func() *cspy.Model {
		return coloring(t,
			[]cspy.Identifier{"a", "b", "c", "d"},
			map[cspy.Identifier][]cspy.Value{
				"a": {"red", "green", "blue"},
				"b": {"red", "green", "blue"},
				"c": {"red", "green", "blue"},
				"d": {"red", "green", "blue"},
			},
			[][2]cspy.Identifier{
				{"a", "b"}, {"b", "a"},
				{"b", "c"}, {"c", "b"},
				{"c", "d"}, {"d", "c"},
				{"d", "a"}, {"a", "d"},
			},
		)
	}

	for _, options := range [][]Option{
		nil,
		{WithMRV(true), WithLCV(true), WithAC3(true)},
	} {
		first := build()
		s, err := NewSolver(append([]Option{WithModel(first)}, options...)...)
		assert.NoError(err)
		want, err := s.Solve(context.Background())
		assert.NoError(err)

		second := build()
		s, err = NewSolver(append([]Option{WithModel(second)}, options...)...)
		assert.NoError(err)
		got, err := s.Solve(context.Background())
		assert.NoError(err)

		assert.Equal(want, got)
		assert.Equal(first.Attempts(), second.Attempts())
	}
}
