// Package options holds the engine's run-time configuration (C10): the
// few knobs the selection engine and its collaborators read, resolved
// from CLI flags with PIPEFLOW_*-prefixed environment fallbacks.
package options

import (
	"github.com/urfave/cli/v2"

	"github.com/pipeflow/pipeflow/internal/fsadapter"
	"github.com/pipeflow/pipeflow/internal/log"
)

// EngineOptions is the "global options singleton" spec §9 says should
// become an explicit parameter rather than process-wide state.
type EngineOptions struct {
	// WorkflowDir is where *.hcl workflow files are loaded from.
	WorkflowDir string

	// TmpDir is the root C2 derives step directories under.
	TmpDir string

	// Backend selects the filesystem collaborator implementation.
	Backend fsadapter.BackendKind

	// Remote carries the bucket/container identifiers the s3 and
	// azureblob backends validate reachability against at construction.
	Remote fsadapter.RemoteOptions

	LogLevel log.Level
}

const (
	FlagWorkflowDir         = "workflow-dir"
	FlagTmpDir              = "tmpdir"
	FlagBackend             = "backend"
	FlagLogLevel            = "log-level"
	FlagS3Bucket            = "s3-bucket"
	FlagAzureStorageAccount = "azure-storage-account"
	FlagAzureContainer      = "azure-container"
)

// Flags returns the CLI flag set every pipeflow command shares.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagWorkflowDir,
			Usage:   "directory containing workflow (*.hcl) files",
			Value:   ".",
			EnvVars: []string{"PIPEFLOW_WORKFLOW_DIR"},
		},
		&cli.StringFlag{
			Name:    FlagTmpDir,
			Usage:   "root directory step working directories are created under",
			Value:   "/tmp/pipeflow",
			EnvVars: []string{"PIPEFLOW_TMPDIR"},
		},
		&cli.StringFlag{
			Name:    FlagBackend,
			Usage:   "filesystem backend: local, s3, or azureblob",
			Value:   string(fsadapter.Local),
			EnvVars: []string{"PIPEFLOW_BACKEND"},
		},
		&cli.StringFlag{
			Name:    FlagLogLevel,
			Usage:   "log level: debug, info, warn, error",
			Value:   "info",
			EnvVars: []string{"PIPEFLOW_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    FlagS3Bucket,
			Usage:   "s3 bucket to validate reachability against (backend=s3)",
			EnvVars: []string{"PIPEFLOW_S3_BUCKET"},
		},
		&cli.StringFlag{
			Name:    FlagAzureStorageAccount,
			Usage:   "azure storage account to connect to (backend=azureblob)",
			EnvVars: []string{"PIPEFLOW_AZURE_STORAGE_ACCOUNT"},
		},
		&cli.StringFlag{
			Name:    FlagAzureContainer,
			Usage:   "azure container to validate reachability against (backend=azureblob)",
			EnvVars: []string{"PIPEFLOW_AZURE_CONTAINER"},
		},
	}
}

// Load resolves EngineOptions from a populated cli.Context (spec §9's
// suggested replacement for the global options singleton).
func Load(c *cli.Context) (*EngineOptions, error) {
	level, err := log.ParseLevel(c.String(FlagLogLevel))
	if err != nil {
		return nil, err
	}

	return &EngineOptions{
		WorkflowDir: c.String(FlagWorkflowDir),
		TmpDir:      c.String(FlagTmpDir),
		Backend:     fsadapter.BackendKind(c.String(FlagBackend)),
		Remote: fsadapter.RemoteOptions{
			S3Bucket:            c.String(FlagS3Bucket),
			AzureStorageAccount: c.String(FlagAzureStorageAccount),
			AzureContainer:      c.String(FlagAzureContainer),
		},
		LogLevel: level,
	}, nil
}
