package engine

import (
	"sort"

	multierror "github.com/hashicorp/go-multierror"

	engineerrors "github.com/pipeflow/pipeflow/internal/errors"
)

// epsilon is the "insert before earliest dependent" tiebreaker (spec
// §4.7, §9): acceptable up to ~10^6 steps per the original design note.
const epsilon = 1e-7

// SelectedStep is a merged, positioned selection result (spec §3).
type SelectedStep struct {
	Index     int
	Build     BuildQualifier
	MatchType MatchType
	Pos       float64

	insertOrder int
}

// Merge is the Merger (C7): folds expanded steps into a position-
// ordered, conflict-free selection.
func Merge(tree *ParseTree, expanded []ExpandedStep) ([]SelectedStep, error) {
	m := map[int]*SelectedStep{}
	pos := 0
	seq := 0

	for _, e := range expanded {
		if e.Build == Exclude {
			delete(m, e.Index)
			pos++
			continue
		}

		if existing, ok := m[e.Index]; ok {
			if existing.Build == Forced || e.Build == Forced {
				existing.Build = Forced
			} else {
				existing.Build = Timestamped
			}

			existing.MatchType = higherPrecedence(existing.MatchType, e.MatchType)
			continue
		}

		deps, err := AllDownDescendants(tree, e.Index)
		if err != nil {
			return nil, err
		}

		newPos := float64(pos)
		minDepPos, found := minPosAmong(m, deps)
		if found {
			newPos = minDepPos - epsilon
		}

		m[e.Index] = &SelectedStep{
			Index:       e.Index,
			Build:       e.Build,
			MatchType:   e.MatchType,
			Pos:         newPos,
			insertOrder: seq,
		}
		seq++
		pos++
	}

	result := make([]SelectedStep, 0, len(m))
	for _, s := range m {
		result = append(result, *s)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Pos != result[j].Pos {
			return result[i].Pos < result[j].Pos
		}
		return result[i].insertOrder < result[j].insertOrder
	})

	if err := checkOutputConflicts(tree, result); err != nil {
		return nil, err
	}

	return result, nil
}

// higherPrecedence picks method over tag over output, per spec §4.7
// step 2's "first of (method, tag, output)" rule.
func higherPrecedence(a, b MatchType) MatchType {
	if a == MatchMethod || b == MatchMethod {
		return MatchMethod
	}
	if a == MatchTag || b == MatchTag {
		return MatchTag
	}
	return MatchOutput
}

func minPosAmong(m map[int]*SelectedStep, indices []int) (float64, bool) {
	found := false
	min := 0.0

	for _, idx := range indices {
		s, ok := m[idx]
		if !ok {
			continue
		}

		if !found || s.Pos < min {
			min = s.Pos
			found = true
		}
	}

	return min, found
}

// checkOutputConflicts verifies that no two selected steps produce the
// same normalized output (spec §3 invariant, §4.7 final check).
func checkOutputConflicts(tree *ParseTree, result []SelectedStep) error {
	seenBy := map[string]int{}
	var merr *multierror.Error
	var duplicates []string
	reported := map[string]bool{}

	for _, s := range result {
		for _, out := range tree.Steps[s.Index].Outputs {
			norm, err := tree.fs.Normalize(out)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}

			if _, ok := seenBy[norm]; ok {
				if !reported[norm] {
					duplicates = append(duplicates, norm)
					reported[norm] = true
				}
				continue
			}

			seenBy[norm] = s.Index
		}
	}

	if merr.ErrorOrNil() != nil {
		return engineerrors.WithStackTrace(merr)
	}

	if len(duplicates) > 0 {
		return engineerrors.WithStackTrace(engineerrors.OutputConflict{Duplicates: duplicates})
	}

	return nil
}
