package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kilupskalvis/mergebench/internal/models"
)

// ImportResultCSV loads the external collaborator's result table into the
// store. The table has one row per merge scenario with the commit tuple
// columns plus, for each merge tool, a state column named after the tool, a
// `<tool>_merge_fingerprint` column and an optional `<tool>_run_time`
// column. Returns the number of scenarios and outcomes imported.
func (s *Store) ImportResultCSV(r io.Reader) (int, int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read result table header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"idx", "repository", "base", "left", "right", "merge"} {
		if _, ok := col[required]; !ok {
			return 0, 0, fmt.Errorf("result table is missing column '%s'", required)
		}
	}

	field := func(row []string, name string) string {
		if i, ok := col[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	scenarios, outcomes := 0, 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return scenarios, outcomes, fmt.Errorf("failed to read result table row: %w", err)
		}

		sc := &models.Scenario{
			ID:         field(row, "idx"),
			Repository: field(row, "repository"),
			BaseSHA:    field(row, "base"),
			LeftSHA:    field(row, "left"),
			RightSHA:   field(row, "right"),
			MergeSHA:   field(row, "merge"),
			BranchName: field(row, "branch_name"),
		}
		if err := s.UpsertScenario(sc); err != nil {
			return scenarios, outcomes, fmt.Errorf("failed to import scenario '%s': %w", sc.ID, err)
		}
		scenarios++

		for _, tool := range models.AllTools() {
			state := field(row, tool.String())
			if state == "" {
				continue
			}
			runTime, _ := strconv.ParseFloat(field(row, tool.String()+"_run_time"), 64)
			o := &models.Outcome{
				ScenarioID:  sc.ID,
				Tool:        tool,
				State:       models.State(state),
				Fingerprint: field(row, tool.String()+"_merge_fingerprint"),
				RunTime:     runTime,
			}
			if err := s.UpsertOutcome(o); err != nil {
				return scenarios, outcomes, fmt.Errorf("failed to import outcome for '%s'/%s: %w", sc.ID, tool, err)
			}
			outcomes++
		}
	}
	return scenarios, outcomes, nil
}
