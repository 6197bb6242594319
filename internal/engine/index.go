package engine

import (
	"github.com/pipeflow/pipeflow/internal/fsadapter"
	"github.com/pipeflow/pipeflow/internal/memo"
)

// BuildIndex is the Index Builder (C1): from a raw step list, compute
// the auxiliary lookup maps and annotate every step with its
// parents/children (spec §4.1).
func BuildIndex(raw []RawStep, fs fsadapter.Filesystem) (*ParseTree, error) {
	steps := make([]Step, len(raw))
	for i, r := range raw {
		steps[i] = Step{
			RawStep: r,
			Outputs: r.RawOutputs,
			Inputs:  r.RawInputs,
		}
	}

	for i := range steps {
		normOut, err := normalizeAll(fs, steps[i].Outputs)
		if err != nil {
			return nil, err
		}

		normIn, err := normalizeAll(fs, steps[i].Inputs)
		if err != nil {
			return nil, err
		}

		steps[i].NormOutputs = normOut
		steps[i].NormInputs = normIn
	}

	tree := &ParseTree{
		Steps:            steps,
		fs:               fs,
		descendantsCache: memo.New[[]int](),
	}

	tree.InputTagsMap = reverseMultimap(steps, func(s Step) []string { return s.InputTags })
	tree.OutputTagsMap = reverseMultimap(steps, func(s Step) []string { return s.OutputTags })
	tree.MethodMap = reverseMultimap(steps, func(s Step) []string {
		if s.Method == "" {
			return nil
		}
		return []string{s.Method}
	})
	tree.NormalizedInputMap = reverseMultimap(steps, func(s Step) []string { return s.NormInputs })
	tree.NormalizedOutputMap = reverseMultimap(steps, func(s Step) []string { return s.NormOutputs })

	rawOutputsMap := reverseMultimap(steps, func(s Step) []string { return s.RawOutputs })
	slashCleanRawOutputsMap := reverseMultimap(steps, func(s Step) []string {
		return slashCleanAll(fs, s.RawOutputs)
	})
	outputsMap := reverseMultimap(steps, func(s Step) []string { return s.Outputs })
	slashCleanOutputsMap := reverseMultimap(steps, func(s Step) []string {
		return slashCleanAll(fs, s.Outputs)
	})

	tree.OutputMapLookupRegexp = mergeDistinct(rawOutputsMap, slashCleanRawOutputsMap, outputsMap, slashCleanOutputsMap)
	tree.OutputMapLookup = mergeDistinct(tree.OutputMapLookupRegexp, tree.NormalizedOutputMap)

	for i := range steps {
		steps[i].Parents = resolveParents(tree, steps[i])
		steps[i].Children = resolveChildren(tree, steps[i])
	}
	tree.Steps = steps

	return tree, nil
}

func resolveParents(tree *ParseTree, s Step) []int {
	var parents []int

	for _, in := range s.NormInputs {
		parents = unionDistinctInts(parents, tree.NormalizedOutputMap[in])
	}

	for _, t := range s.InputTags {
		parents = unionDistinctInts(parents, tree.OutputTagsMap[t])
	}

	return parents
}

func resolveChildren(tree *ParseTree, s Step) []int {
	var children []int

	for _, out := range s.NormOutputs {
		children = unionDistinctInts(children, tree.NormalizedInputMap[out])
	}

	for _, t := range s.OutputTags {
		children = unionDistinctInts(children, tree.InputTagsMap[t])
	}

	return children
}

func normalizeAll(fs fsadapter.Filesystem, paths []string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		n, err := fs.Normalize(p)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func slashCleanAll(fs fsadapter.Filesystem, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = fs.SlashClean(p)
	}
	return out
}

// reverseMultimap computes { k -> [i | k in f(steps[i])] }, each value
// list deduplicated preserving first appearance (spec §4.1).
func reverseMultimap(steps []Step, f func(Step) []string) map[string][]int {
	result := map[string][]int{}
	seen := map[string]map[int]bool{}

	for i, s := range steps {
		for _, k := range f(s) {
			if k == "" {
				continue
			}

			if seen[k] == nil {
				seen[k] = map[int]bool{}
			}

			if !seen[k][i] {
				seen[k][i] = true
				result[k] = append(result[k], i)
			}
		}
	}

	return result
}

// mergeDistinct unions per-key lists preserving first appearance across
// maps, left to right (spec §4.1 "Merge-distinct").
func mergeDistinct(maps ...map[string][]int) map[string][]int {
	result := map[string][]int{}

	for _, m := range maps {
		for k, ids := range m {
			existing := result[k]
			seen := map[int]bool{}
			for _, e := range existing {
				seen[e] = true
			}

			for _, id := range ids {
				if !seen[id] {
					existing = append(existing, id)
					seen[id] = true
				}
			}

			result[k] = existing
		}
	}

	return result
}

// unionDistinctInts appends the elements of add to base that are not
// already present, preserving first-appearance order.
func unionDistinctInts(base []int, add []int) []int {
	seen := map[int]bool{}
	for _, b := range base {
		seen[b] = true
	}

	for _, a := range add {
		if !seen[a] {
			seen[a] = true
			base = append(base, a)
		}
	}

	return base
}
