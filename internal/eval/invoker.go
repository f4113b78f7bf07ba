package eval

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/kilupskalvis/mergebench/internal/models"
)

// ToolInvoker runs a merge tool against a prepared repository.
type ToolInvoker interface {
	Invoke(ctx context.Context, tool models.Tool, repoRoot, leftBranch, rightBranch string) (string, error)
}

// Invoker resolves merge tools to wrapper scripts by convention:
// <ToolsDir>/<tool>.sh. A new tool is added by dropping in a script, not by
// changing this code.
type Invoker struct {
	ToolsDir string
	Runner   Runner
}

// Invoke runs the tool's script with (repoRoot, leftBranch, rightBranch)
// and returns its stdout verbatim. The script's exit code is deliberately
// not interpreted; only the console output matters to the caller.
func (inv *Invoker) Invoke(ctx context.Context, tool models.Tool, repoRoot, leftBranch, rightBranch string) (string, error) {
	script := filepath.Join(inv.ToolsDir, tool.ScriptName())
	stdout, _, err := inv.Runner.Run(ctx, script, repoRoot, leftBranch, rightBranch)
	if err != nil {
		return "", fmt.Errorf("failed to run merge tool '%s': %w", tool, err)
	}
	return stdout, nil
}
