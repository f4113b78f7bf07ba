// Package eval implements the merge-conflict evaluation pipeline: it
// replays a merge scenario with a candidate tool, extracts the conflicting
// files, and diffs the tool's output against the base version and the
// accepted programmer merge. It also provides the outcome reconciliation
// and cost-tradeoff scoring used by the aggregate report.
package eval

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Runner executes an external program and captures its output streams.
// A non-zero exit status is not treated as an error: merge tools and diff
// tools signal their results through output, not exit codes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = nil
	}
	return outBuf.String(), errBuf.String(), err
}
