// Package cli wires pipeflow's urfave/cli/v2 commands (C9): "select"
// prints the ordered step list a set of targets resolves to, "graph"
// renders the parse tree's dependency graph as Graphviz dot, in the
// style of configstack's WriteDot helper.
package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/pipeflow/pipeflow/internal/engine"
	"github.com/pipeflow/pipeflow/internal/fsadapter"
	"github.com/pipeflow/pipeflow/internal/log"
	"github.com/pipeflow/pipeflow/internal/options"
	"github.com/pipeflow/pipeflow/internal/workflow"
)

// NewApp builds the pipeflow CLI application.
func NewApp(version string) *cli.App {
	return &cli.App{
		Name:    "pipeflow",
		Usage:   "select and inspect steps in a data-processing workflow",
		Version: version,
		Flags:   options.Flags(),
		Commands: []*cli.Command{
			selectCommand(),
			graphCommand(),
		},
	}
}

func selectCommand() *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "print the ordered list of steps the given targets resolve to",
		ArgsUsage: "<target> [target...]",
		Action: func(c *cli.Context) error {
			opts, tree, err := loadTree(c)
			if err != nil {
				return err
			}

			logger := log.New(c.App.ErrWriter, opts.LogLevel)

			selected, err := engine.SelectSteps(tree, c.Args().Slice())
			if err != nil {
				return err
			}

			logger.Infof("selected %d step(s)", len(selected))

			for _, s := range selected {
				step := tree.Steps[s.Index]
				fmt.Fprintln(c.App.Writer, step.String())

				if !step.Extra.IsNull() {
					logger.WithStep(step.String()).Debugf("extra options: %s", step.Extra.GoString())
				}
			}

			return nil
		},
	}
}

func graphCommand() *cli.Command {
	return &cli.Command{
		Name:  "graph",
		Usage: "render the workflow's dependency graph as Graphviz dot",
		Action: func(c *cli.Context) error {
			_, tree, err := loadTree(c)
			if err != nil {
				return err
			}

			return WriteDot(c.App.Writer, tree)
		},
	}
}

func loadTree(c *cli.Context) (*options.EngineOptions, *engine.ParseTree, error) {
	opts, err := options.Load(c)
	if err != nil {
		return nil, nil, err
	}

	fs, err := fsadapter.New(c.Context, opts.Backend, opts.Remote)
	if err != nil {
		return nil, nil, err
	}

	raw, err := workflow.LoadDir(opts.WorkflowDir)
	if err != nil {
		return nil, nil, err
	}

	tree, err := engine.BuildIndex(raw, fs)
	if err != nil {
		return nil, nil, err
	}

	if err := engine.AssignDirs(tree.Steps, opts.TmpDir, fs); err != nil {
		return nil, nil, err
	}

	return opts, tree, nil
}

// WriteDot renders tree as a Graphviz digraph, one node per step and
// one edge per dependency relation, grounded on configstack's WriteDot
// (graphviz_test.go).
func WriteDot(w io.Writer, tree *engine.ParseTree) error {
	if _, err := fmt.Fprintln(w, "digraph {"); err != nil {
		return err
	}

	for _, s := range tree.Steps {
		if _, err := fmt.Fprintf(w, "\t%q ;\n", s.String()); err != nil {
			return err
		}

		// An edge points from a step to each step it depends on, mirroring
		// configstack.WriteDot's "module -> dependency" convention.
		for _, parent := range s.Parents {
			if _, err := fmt.Fprintf(w, "\t%q -> %q;\n", s.String(), tree.Steps[parent].String()); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
