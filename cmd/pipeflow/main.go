// Command pipeflow is the executable entry point wiring the CLI (C9)
// to the selection engine.
package main

import (
	"fmt"
	"os"

	pipeflowcli "github.com/pipeflow/pipeflow/internal/cli"
	engineerrors "github.com/pipeflow/pipeflow/internal/errors"
)

// version is overridden at release build time via -ldflags.
var version = "dev"

func main() {
	var exitErr error

	defer engineerrors.Recover(func(cause error) {
		fmt.Fprintln(os.Stderr, cause)
		os.Exit(1)
	})

	app := pipeflowcli.NewApp(version)

	if err := app.Run(os.Args); err != nil {
		exitErr = err
	}

	if exitErr != nil {
		fmt.Fprintln(os.Stderr, exitErr)
		os.Exit(1)
	}
}
