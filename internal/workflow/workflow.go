// Package workflow is the Workflow File Loader (C0): it decodes HCL
// workflow files into the engine's RawStep contract. Grounded on
// cli/commands/catalog/config.go's hclparse.NewParser + gohcl.DecodeBody
// pipeline, generalized from a single catalog block to many repeated
// step blocks spread across one or more files.
package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	engineerrors "github.com/pipeflow/pipeflow/internal/errors"
	"github.com/pipeflow/pipeflow/internal/engine"
)

// stepOptions is the options sub-block recognizing the method
// annotation the engine keys its method-map on (spec §3).
type stepOptions struct {
	Method *string    `hcl:"method,attr"`
	Extra  *cty.Value `hcl:"extra,optional"`
}

// stepBlock is a single `step "label" { ... }` block.
type stepBlock struct {
	Label string `hcl:"label,label"`

	Outputs    []string     `hcl:"outputs,optional"`
	Inputs     []string     `hcl:"inputs,optional"`
	OutputTags []string     `hcl:"output_tags,optional"`
	InputTags  []string     `hcl:"input_tags,optional"`
	Options    *stepOptions `hcl:"options,block"`
}

// fileSchema is the top-level schema of a single workflow file: a
// repeated step block, nothing else.
type fileSchema struct {
	Steps []stepBlock `hcl:"step,block"`
}

// LoadFile decodes a single HCL workflow file into raw steps, in the
// declaration order they appear in the file.
func LoadFile(path string) ([]engine.RawStep, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, engineerrors.WithStackTrace(err)
	}

	parser := hclparse.NewParser()

	hclFile, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, engineerrors.WithStackTrace(fmt.Errorf("workflow file error: %s", diags.Error()))
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &schema); diags.HasErrors() {
		return nil, engineerrors.WithStackTrace(fmt.Errorf("workflow file error: %s", diags.Error()))
	}

	steps := make([]engine.RawStep, len(schema.Steps))
	for i, b := range schema.Steps {
		method := ""
		extra := cty.NilVal
		if b.Options != nil {
			if b.Options.Method != nil {
				method = *b.Options.Method
			}
			if b.Options.Extra != nil {
				extra = *b.Options.Extra
			}
		}

		// outputs defaults to [label] when omitted: the block label is
		// the common case's implicit single output (spec §4.0).
		outputs := b.Outputs
		if len(outputs) == 0 {
			outputs = []string{b.Label}
		}

		steps[i] = engine.RawStep{
			RawOutputs: outputs,
			RawInputs:  b.Inputs,
			OutputTags: b.OutputTags,
			InputTags:  b.InputTags,
			Method:     method,
			Extra:      extra,
		}
	}

	return steps, nil
}

// LoadDir decodes every "*.hcl" file directly inside dir (subdirectories
// are not searched), in lexical filename order, concatenating their
// steps so declaration order is deterministic across a multi-file
// workflow.
func LoadDir(dir string) ([]engine.RawStep, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, engineerrors.WithStackTrace(err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) == ".hcl" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var all []engine.RawStep
	for _, name := range names {
		steps, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		all = append(all, steps...)
	}

	return all, nil
}

// ParseHCL mirrors the teacher's config.ParseHCL wrapper, exposed here
// for callers that already hold file bytes (e.g. tests, or a string
// target passed on stdin).
func ParseHCL(parser *hclparse.Parser, src []byte, path string) (*hcl.File, hcl.Diagnostics) {
	return parser.ParseHCL(src, path)
}
