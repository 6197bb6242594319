package engine

import (
	"fmt"
	"strings"

	engineerrors "github.com/pipeflow/pipeflow/internal/errors"
	"github.com/pipeflow/pipeflow/internal/fsadapter"
)

// MaxPathLength bounds a step's working directory path, grounded on the
// teacher's MAX_TERRAFORM_CMD_VAR_LENGTH-style sanity constants
// (util/file.go idiom) rather than any platform limit.
const MaxPathLength = 200

// AssignDirs is the Step Directory Namer (C2): it derives a filesystem
// directory name for every step from its outputs and output tags,
// truncating to fit root and disambiguating collisions with a ".N"
// suffix in declaration order (spec §4.2).
func AssignDirs(steps []Step, root string, fs fsadapter.Filesystem) error {
	absRoot, err := fs.AbsolutePath(root)
	if err != nil {
		return engineerrors.WithStackTrace(err)
	}

	if len(absRoot) >= MaxPathLength {
		return engineerrors.NewWorkflowDirTooLong(absRoot)
	}

	budget := MaxPathLength - len(absRoot) - 1 // -1 for the path separator

	truncated := make([]string, len(steps))
	groups := map[string][]int{}

	for i := range steps {
		base := stepBaseName(steps[i])
		if budget > 0 && len(base) > budget {
			base = base[:budget]
		}

		truncated[i] = base
		groups[base] = append(groups[base], i)
	}

	for _, members := range groups {
		if len(members) == 1 {
			i := members[0]
			steps[i].Dir = fs.SlashClean(absRoot + "/" + truncated[i])
			continue
		}

		for n, i := range members {
			name := fmt.Sprintf("%s.%d", truncated[i], n)
			steps[i].Dir = fs.SlashClean(absRoot + "/" + name)
		}
	}

	return nil
}

// stepBaseName derives the unsuffixed directory name from a step's raw
// outputs and output tags joined by comma, falling back to its method
// name when it declares neither (spec §4.2).
func stepBaseName(s Step) string {
	parts := append(append([]string(nil), s.RawOutputs...), s.OutputTags...)
	if len(parts) > 0 {
		for i, p := range parts {
			parts[i] = sanitizeDirName(p)
		}
		return strings.Join(parts, ",")
	}

	if s.Method != "" {
		return sanitizeDirName(s.Method)
	}

	return "step"
}

// sanitizeDirName replaces path separators so a single output path
// component becomes a flat directory name.
func sanitizeDirName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '/' || r == '\\' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}

	return string(out)
}
