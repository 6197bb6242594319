package engine

import (
	engineerrors "github.com/pipeflow/pipeflow/internal/errors"
)

// ExpandedStep is a step selected by expansion, carrying the build
// qualifier inherited from its originating match and a match-type that
// is only meaningful for the originating index (spec §4.8 step 3).
type ExpandedStep struct {
	Index     int
	Build     BuildQualifier
	MatchType MatchType
}

// Expand is the Expander (C6): it returns the step indices reachable
// from index under tree, optionally restricted to validSet (spec
// §4.6). A nil validSet means unrestricted. The up/down case walks the
// recursive, order-preserving variant rather than the DAG's Set-based
// Ancestors/Descendants, so the result comes back in the spec's
// descendants-first/self-last (down) or roots-first/self-last (up)
// sequence instead of an arbitrary set order, and a cycle the one-time
// DAG validation missed (or hasn't run yet) is still caught here, on
// the fly, with a human-readable chain (spec §4.3).
func Expand(tree *ParseTree, index int, mode TreeQualifier, validSet map[int]bool) ([]int, error) {
	switch mode {
	case TreeOnly:
		if validSet != nil && !validSet[index] {
			return nil, nil
		}
		return []int{index}, nil

	default: // TreeNil (treated as up) or TreeUp or TreeDown
		down := mode == TreeDown

		set, err := expandOrderPreserving(tree, index, down, nil)
		if err != nil {
			return nil, err
		}

		if validSet == nil {
			return set, nil
		}

		if !validSet[index] {
			return nil, nil
		}

		filtered := make([]int, 0, len(set))
		for _, i := range set {
			if validSet[i] {
				filtered = append(filtered, i)
			}
		}

		return filtered, nil
	}
}

// ExpandMatches runs Expand over every match, inheriting Build from the
// match and downgrading MatchType to MatchOutput for every non-
// originating step (spec §4.8 step 3).
func ExpandMatches(tree *ParseTree, matches []Match) ([]ExpandedStep, error) {
	var out []ExpandedStep

	for _, m := range matches {
		// An exclusion removes exactly the step(s) matched, never their
		// ancestors/descendants (spec §8's "excludes exactly the step
		// matched by X"): force tree-mode Only regardless of qualifier.
		mode := m.Tree
		if m.Build == Exclude {
			mode = TreeOnly
		}

		indices, err := Expand(tree, m.Index, mode, nil)
		if err != nil {
			return nil, err
		}

		for _, idx := range indices {
			mt := MatchOutput
			if idx == m.Index {
				mt = m.MatchType
			}

			out = append(out, ExpandedStep{Index: idx, Build: m.Build, MatchType: mt})
		}
	}

	return out, nil
}

// AllDownDescendants returns descendants(index) ∪ {index}, memoized per
// parse tree then per index (spec §4.7's two-level memoization).
func AllDownDescendants(tree *ParseTree, index int) ([]int, error) {
	key := descendantsCacheKey(index)

	return tree.descendantsCache.GetOrCompute(key, func() ([]int, error) {
		d, err := tree.dagOf()
		if err != nil {
			return nil, err
		}

		desc, err := d.Descendants(index)
		if err != nil {
			return nil, err
		}

		return append(desc, index), nil
	})
}

func descendantsCacheKey(index int) string {
	return "descendants:" + itoa(index)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}

	neg := i < 0
	if neg {
		i = -i
	}

	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}

	if neg {
		pos--
		buf[pos] = '-'
	}

	return string(buf[pos:])
}

// expandOrderPreserving walks parent/child adjacency recursively,
// detecting cycles via the in-progress chain, and is Expand's
// implementation for the up/down case (spec §4.6's recursive,
// order-preserving variant).
func expandOrderPreserving(tree *ParseTree, index int, down bool, chain []int) ([]int, error) {
	for _, c := range chain {
		if c == index {
			return nil, engineerrors.WithStackTrace(cycleChainError(tree, append(chain, index)))
		}
	}

	chain = append(append([]int(nil), chain...), index)

	adj := tree.Steps[index].Children
	if !down {
		adj = tree.Steps[index].Parents
	}

	var result []int

	if down {
		for _, child := range adj {
			sub, err := expandOrderPreserving(tree, child, down, chain)
			if err != nil {
				return nil, err
			}
			result = append(result, sub...)
		}
		result = append(result, index)
	} else {
		for _, parent := range adj {
			sub, err := expandOrderPreserving(tree, parent, down, chain)
			if err != nil {
				return nil, err
			}
			result = append(sub, result...)
		}
		result = append(result, index)
	}

	return result, nil
}

func cycleChainError(tree *ParseTree, chain []int) error {
	strs := make([]string, len(chain))
	for i, idx := range chain {
		strs[i] = tree.Steps[idx].String()
	}

	return engineerrors.CycleDetected{Chain: strs}
}
