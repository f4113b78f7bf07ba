package eval

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilupskalvis/mergebench/internal/models"
)

// RecordWriter persists diff records.
type RecordWriter interface {
	Write(rec *models.DiffRecord) (string, error)
}

// Writer stores each diff record at a deterministic path keyed by
// (scenario, tool, file):
//
//	<OutputRoot>/<scenario>/<tool>/diff_<basename-without-extension>.txt
//
// Re-running an evaluation overwrites the artifact, so the set of files for
// a (scenario, tool) pair is always consistent with the latest run.
type Writer struct {
	OutputRoot string
}

// Write persists the record and returns the path it was written to.
func (w *Writer) Write(rec *models.DiffRecord) (string, error) {
	base := filepath.Base(filepath.FromSlash(rec.File))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	path := filepath.Join(w.OutputRoot, rec.ScenarioID, rec.Tool.String(), "diff_"+base+".txt")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create diff output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(rec.Text), 0644); err != nil {
		return "", fmt.Errorf("failed to write diff artifact: %w", err)
	}
	return path, nil
}
