package eval

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kilupskalvis/mergebench/internal/models"
)

// fingerprintExempt lists tools excluded from the fingerprint consistency
// check: their merge output can be byte-identical to another tool's while
// the recorded outcome legitimately differs (adjacency handling and import
// reordering happen outside the merged content, and gitmerge_resolve's
// results are known to diverge).
var fingerprintExempt = map[models.Tool]bool{
	models.GitMergeResolve:               true,
	models.GitMergeOrtAdjacent:           true,
	models.GitMergeOrtImports:            true,
	models.GitMergeOrtImportsIgnorespace: true,
}

// Inconsistency is one scenario where two tools produced the same merge
// fingerprint but a different recorded outcome — a measurement defect in
// the harness that produced the result table.
type Inconsistency struct {
	ScenarioID  string
	ToolA       models.Tool
	ToolB       models.Tool
	StateA      models.State
	StateB      models.State
	Fingerprint string
}

// CheckFingerprintConsistency verifies that for every scenario and every
// non-exempt tool pair, equal merge fingerprints imply equal outcomes.
// Every offending row is logged before the error is returned; callers
// treat the error as fatal.
func CheckFingerprintConsistency(outcomes map[string]map[models.Tool]models.Outcome, tools []models.Tool, logger zerolog.Logger) error {
	var found []Inconsistency
	for scenarioID, byTool := range outcomes {
		for i, toolA := range tools {
			if fingerprintExempt[toolA] {
				continue
			}
			for _, toolB := range tools[i+1:] {
				if fingerprintExempt[toolB] {
					continue
				}
				a, okA := byTool[toolA]
				b, okB := byTool[toolB]
				if !okA || !okB {
					continue
				}
				if a.Fingerprint == "" || a.Fingerprint != b.Fingerprint {
					continue
				}
				if a.State != b.State {
					found = append(found, Inconsistency{
						ScenarioID:  scenarioID,
						ToolA:       toolA,
						ToolB:       toolB,
						StateA:      a.State,
						StateB:      b.State,
						Fingerprint: a.Fingerprint,
					})
				}
			}
		}
	}

	for _, inc := range found {
		logger.Error().
			Str("scenario", inc.ScenarioID).
			Str("tool_a", inc.ToolA.String()).
			Str("tool_b", inc.ToolB.String()).
			Str("state_a", inc.StateA.String()).
			Str("state_b", inc.StateB.String()).
			Str("fingerprint", inc.Fingerprint).
			Msg("identical merge fingerprint with differing outcome")
	}
	if len(found) > 0 {
		return fmt.Errorf("fingerprint consistency check failed in %d cases", len(found))
	}
	return nil
}
