// Package engine implements the step selection engine: given a parse
// tree of steps and a list of user target expressions, it computes the
// ordered list of step indices that must run (spec §1–§4).
package engine

import (
	"strings"
	"sync"

	"github.com/zclconf/go-cty/cty"

	"github.com/pipeflow/pipeflow/internal/fsadapter"
	"github.com/pipeflow/pipeflow/internal/memo"
)

// RawStep is the input contract from the parser (spec §6): a step as
// declared, before C1 has computed its parent/child edges or dir.
type RawStep struct {
	RawOutputs []string
	RawInputs  []string
	OutputTags []string
	InputTags  []string
	Method     string

	// Extra carries handler-specific options the parser decoded but the
	// engine does not interpret (spec §3: "an options bag recognizing
	// at least method"); opaque to selection, forwarded for the
	// executor's handler dispatch. cty.NilVal if the step declared none.
	Extra cty.Value
}

// Step is a RawStep enriched by the Index Builder (C1) and Step
// Directory Namer (C2). Outputs/Inputs mirror RawOutputs/RawInputs
// value-for-value today (template expansion, which would make them
// diverge, is an explicit non-goal) but are kept as distinct fields per
// the external interface in spec §6.
type Step struct {
	RawStep

	Outputs []string
	Inputs  []string

	// NormOutputs/NormInputs are the canonical absolute forms used to
	// resolve parent/child edges (spec §3's "normalized inputs/outputs").
	NormOutputs []string
	NormInputs  []string

	Parents  []int
	Children []int

	Dir string
}

// String renders a step as its comma-joined outputs, the representation
// spec §4.6/§6 use in cycle error messages.
func (s Step) String() string {
	if len(s.RawOutputs) > 0 {
		return strings.Join(s.RawOutputs, ",")
	}

	return strings.Join(s.Outputs, ",")
}

// ParseTree is the ordered sequence of steps plus the auxiliary lookup
// maps C1 builds, and the lazily-constructed, memoized DAG over it
// (spec §3 "Lifecycles").
type ParseTree struct {
	Steps []Step

	OutputMapLookup       map[string][]int
	OutputMapLookupRegexp map[string][]int
	OutputTagsMap         map[string][]int
	InputTagsMap          map[string][]int
	MethodMap             map[string][]int
	NormalizedOutputMap   map[string][]int
	NormalizedInputMap    map[string][]int

	fs fsadapter.Filesystem

	dagOnce sync.Once
	dag     *DAG
	dagErr  error

	descendantsCache *memo.Cache[[]int]
}
