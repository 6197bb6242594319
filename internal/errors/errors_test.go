package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWorkflowDirTooLongMessage(t *testing.T) {
	t.Parallel()

	err := NewWorkflowDirTooLong("/very/long/path")
	assert.Equal(t, "workflow directory name /very/long/path is too long.", err.Error())
}

func TestCycleDetectedMessage(t *testing.T) {
	t.Parallel()

	err := CycleDetected{Chain: []string{"a", "b", "a"}}
	assert.Equal(t, "cycle dependency detected: a -> b -> a", err.Error())
}

func TestOutputConflictMessage(t *testing.T) {
	t.Parallel()

	err := OutputConflict{Duplicates: []string{"x", "y"}}
	assert.Equal(t, "duplicated outputs: x, y", err.Error())
}

func TestTargetNotFoundMessage(t *testing.T) {
	t.Parallel()

	err := TargetNotFound{Name: "foo"}
	assert.Equal(t, "target not found: foo", err.Error())
}

func TestUnwrapPeelsStackTrace(t *testing.T) {
	t.Parallel()

	cause := TargetNotFound{Name: "foo"}
	wrapped := WithStackTrace(cause)

	assert.Equal(t, cause, Unwrap(wrapped))
}
