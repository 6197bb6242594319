package engine

import (
	"regexp"
	"sort"

	engineerrors "github.com/pipeflow/pipeflow/internal/errors"
)

// Match is a single resolved target occurrence: a step index carrying
// the build qualifier and match-type that will feed into C6 (spec §4.8
// step 2).
type Match struct {
	Index     int
	Build     BuildQualifier
	Tree      TreeQualifier
	MatchType MatchType
}

// MatchTarget is the Target Matcher (C5): resolves a parsed target to
// the step indices it selects, in declaration order.
func MatchTarget(tree *ParseTree, t Target) ([]Match, error) {
	literalMap, regexMap := lookupMaps(tree, t.MatchType)

	all := t.MatchType == MatchOutput && t.Dots && !t.Regex

	var indices []int

	switch {
	case all:
		indices = make([]int, len(tree.Steps))
		for i := range tree.Steps {
			indices[i] = i
		}

	case !t.Regex && !t.Dots:
		indices = literalLookup(tree, t, literalMap)

	default:
		var err error
		indices, err = regexLookup(regexMap, t)
		if err != nil {
			return nil, err
		}
	}

	if len(indices) == 0 {
		return nil, engineerrors.WithStackTrace(engineerrors.TargetNotFound{Name: t.Name})
	}

	matches := make([]Match, len(indices))
	for i, idx := range indices {
		matches[i] = Match{Index: idx, Build: t.Build, Tree: t.Tree, MatchType: t.MatchType}
	}

	return matches, nil
}

// MatchTargets resolves every parsed target in order, preserving the
// caller's target order across the flattened match list (spec §4.8).
func MatchTargets(tree *ParseTree, targets []Target) ([]Match, error) {
	var all []Match

	for _, t := range targets {
		m, err := MatchTarget(tree, t)
		if err != nil {
			return nil, err
		}

		all = append(all, m...)
	}

	return all, nil
}

func lookupMaps(tree *ParseTree, mt MatchType) (literal, regex map[string][]int) {
	switch mt {
	case MatchTag:
		return tree.OutputTagsMap, tree.OutputTagsMap
	case MatchMethod:
		return tree.MethodMap, tree.MethodMap
	default:
		return tree.OutputMapLookup, tree.OutputMapLookupRegexp
	}
}

func literalLookup(tree *ParseTree, t Target, literalMap map[string][]int) []int {
	if t.MatchType != MatchOutput {
		return append([]int(nil), literalMap[t.Name]...)
	}

	var result []int
	seen := map[int]bool{}

	add := func(ids []int) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				result = append(result, id)
			}
		}
	}

	add(literalMap[t.Name])
	add(literalMap[tree.fs.SlashClean(t.Name)])

	if normalized, err := tree.fs.Normalize(t.Name); err == nil {
		add(literalMap[normalized])
	}

	return result
}

func regexLookup(regexMap map[string][]int, t Target) ([]int, error) {
	matchAll := t.Dots

	var re *regexp.Regexp
	if !matchAll {
		compiled, err := regexp.Compile(t.Name)
		if err != nil {
			return nil, engineerrors.WithStackTrace(engineerrors.InvalidRegex{Pattern: t.Name, Cause: err})
		}
		re = compiled
	}

	var keys []string
	for k := range regexMap {
		keys = append(keys, k)
	}

	seen := map[int]bool{}
	var result []int

	for _, k := range keys {
		if !matchAll && !re.MatchString(k) {
			continue
		}

		for _, idx := range regexMap[k] {
			if !seen[idx] {
				seen[idx] = true
				result = append(result, idx)
			}
		}
	}

	sort.Ints(result)
	return result, nil
}
