package engine

import (
	"fmt"
	"sort"

	"github.com/hashicorp/terraform/dag"

	engineerrors "github.com/pipeflow/pipeflow/internal/errors"
)

// basicEdge mirrors the teacher's config/config_graph.go edge type: a
// minimal dag.Edge carrying only its source and target vertex.
type basicEdge struct {
	S, T dag.Vertex
}

func (e *basicEdge) Hashcode() interface{} { return fmt.Sprintf("%v->%v", e.S, e.T) }
func (e *basicEdge) Source() dag.Vertex    { return e.S }
func (e *basicEdge) Target() dag.Vertex    { return e.T }

// stepVertex wraps a step index as a dag.Vertex.
type stepVertex int

// DAG is the step dependency graph (C3): an edge runs from a step to
// each of its children, so Ancestors(s) are everything s (transitively)
// depends on and Descendants(s) are everything that (transitively)
// depends on s. Built once per ParseTree and memoized (spec §3).
type DAG struct {
	graph dag.AcyclicGraph
}

// buildDAG constructs the acyclic graph over tree's steps and rejects
// it if it contains a cycle or a self-reference, grounded on
// config/config_graph.go's evaluatorGlobals.graph Add/Connect sequence.
// A workflow may have any number of root steps, so the graph's
// single-root Validate check is not used.
func buildDAG(tree *ParseTree) (*DAG, error) {
	g := dag.AcyclicGraph{}

	for i := range tree.Steps {
		g.Add(stepVertex(i))
	}

	for i, s := range tree.Steps {
		for _, child := range s.Children {
			if child == i {
				return nil, engineerrors.WithStackTrace(cycleChainError(tree, []int{i, i}))
			}
			g.Connect(&basicEdge{S: stepVertex(i), T: stepVertex(child)})
		}
	}

	if len(g.Cycles()) > 0 {
		return nil, engineerrors.WithStackTrace(CycleDetectedFromGraph(tree, g))
	}

	return &DAG{graph: g}, nil
}

// dagOf lazily builds and memoizes the ParseTree's DAG.
func (t *ParseTree) dagOf() (*DAG, error) {
	t.dagOnce.Do(func() {
		t.dag, t.dagErr = buildDAG(t)
	})

	return t.dag, t.dagErr
}

// Ancestors returns every step index that step i (transitively) depends
// on, i.e. every step that must run before i. The dag package names its
// walks for edges that point from dependent to dependency, the reverse
// of this graph's parent-to-child edges, so its Descendents walk yields
// this graph's ancestors.
func (d *DAG) Ancestors(i int) ([]int, error) {
	set, err := d.graph.Descendents(stepVertex(i))
	if err != nil {
		return nil, engineerrors.WithStackTrace(err)
	}

	return vertexSetToInts(set), nil
}

// Descendants returns every step index that (transitively) depends on
// step i (the dag package's Ancestors walk, see Ancestors above).
func (d *DAG) Descendants(i int) ([]int, error) {
	set, err := d.graph.Ancestors(stepVertex(i))
	if err != nil {
		return nil, engineerrors.WithStackTrace(err)
	}

	return vertexSetToInts(set), nil
}

func vertexSetToInts(set dag.Set) []int {
	out := make([]int, 0, set.Len())
	for _, v := range set.List() {
		out = append(out, int(v.(stepVertex)))
	}

	sort.Ints(out)
	return out
}

// CycleDetectedFromGraph renders the first cycle the graph reports as a
// CycleDetected error, sharing cycleChainError's rendering with the
// recursive expander's on-the-fly check (spec §9's "both paths should
// share a single cycle-reporting helper").
func CycleDetectedFromGraph(tree *ParseTree, g dag.AcyclicGraph) error {
	cycles := g.Cycles()
	if len(cycles) == 0 {
		return engineerrors.CycleDetected{}
	}

	chain := make([]int, 0, len(cycles[0])+1)
	for _, v := range cycles[0] {
		chain = append(chain, int(v.(stepVertex)))
	}

	if len(chain) > 0 {
		chain = append(chain, chain[0])
	}

	return cycleChainError(tree, chain)
}
