package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTargetQualifiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Target
	}{
		{"c", Target{Name: "c", Build: Timestamped, Tree: TreeNil, MatchType: MatchOutput}},
		{"+c", Target{Name: "c", Build: Forced, Tree: TreeNil, MatchType: MatchOutput}},
		{"-b", Target{Name: "b", Build: Exclude, Tree: TreeNil, MatchType: MatchOutput}},
		{"^a", Target{Name: "a", Build: Timestamped, Tree: TreeDown, MatchType: MatchOutput}},
		{"=b", Target{Name: "b", Build: Timestamped, Tree: TreeOnly, MatchType: MatchOutput}},
		{"%x", Target{Name: "x", Build: Timestamped, Tree: TreeNil, MatchType: MatchTag}},
		{"^%x", Target{Name: "x", Build: Timestamped, Tree: TreeDown, MatchType: MatchTag}},
		{"transform()", Target{Name: "transform", Build: Timestamped, Tree: TreeNil, MatchType: MatchMethod}},
		{"...", Target{Name: "...", Build: Timestamped, Tree: TreeNil, MatchType: MatchOutput, Dots: true}},
		{"@foo.*", Target{Name: "foo.*", Build: Timestamped, Tree: TreeNil, MatchType: MatchOutput, Regex: true}},
	}

	for _, c := range cases {
		got := ParseTarget(c.in)
		assert.Equal(t, c.want, got, "parsing %q", c.in)
	}
}
