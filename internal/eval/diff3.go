package eval

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/go-diff/diff"

	"github.com/kilupskalvis/mergebench/internal/models"
)

// missingFileDiagnostic is the diff3 stderr text that signals the base
// version of the file does not exist. Matching the tool's own diagnostic
// keeps the fallback decision co-located with the failure, at the cost of
// being sensitive to the installed diff3's message text.
const missingFileDiagnostic = "No such file or directory"

// FileComparator computes the diff of one conflicting file.
type FileComparator interface {
	Compare(ctx context.Context, basePath, attemptPath, mergedPath string) (*models.DiffRecord, error)
}

// Comparator runs diff3 over (base, tool output, programmer merge). When
// the base file is missing — both branches added the file independently, so
// there is no ancestor version — it falls back to a plain two-way unified
// diff of tool output vs programmer merge.
type Comparator struct {
	Runner Runner
	Logger zerolog.Logger
}

// Compare returns a DiffRecord with Mode, Text and Hunks populated; the
// caller attaches the scenario, tool and file identity.
func (c *Comparator) Compare(ctx context.Context, basePath, attemptPath, mergedPath string) (*models.DiffRecord, error) {
	stdout, stderr, err := c.Runner.Run(ctx, "diff3", basePath, attemptPath, mergedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to run diff3: %w", err)
	}

	if strings.Contains(stderr, missingFileDiagnostic) {
		return c.compareTwoWay(ctx, attemptPath, mergedPath)
	}
	if stderr != "" {
		c.Logger.Warn().Str("base", basePath).Str("diagnostic", strings.TrimSpace(stderr)).Msg("diff3 reported a diagnostic")
	}

	return &models.DiffRecord{Mode: models.DiffThreeWay, Text: stdout}, nil
}

func (c *Comparator) compareTwoWay(ctx context.Context, attemptPath, mergedPath string) (*models.DiffRecord, error) {
	stdout, stderr, err := c.Runner.Run(ctx, "diff", "-u", attemptPath, mergedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to run diff: %w", err)
	}
	if stderr != "" {
		c.Logger.Warn().Str("attempt", attemptPath).Str("diagnostic", strings.TrimSpace(stderr)).Msg("diff reported a diagnostic")
	}

	rec := &models.DiffRecord{Mode: models.DiffTwoWay, Text: stdout}
	rec.Hunks = countHunks(stdout)
	return rec, nil
}

// countHunks parses a unified diff and returns its hunk count, or 0 if the
// text is empty or not parseable as a unified diff.
func countHunks(unified string) int {
	if strings.TrimSpace(unified) == "" {
		return 0
	}
	fd, err := diff.ParseFileDiff([]byte(unified))
	if err != nil {
		return 0
	}
	return len(fd.Hunks)
}
