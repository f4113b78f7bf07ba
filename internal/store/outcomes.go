package store

import (
	"database/sql"

	"github.com/kilupskalvis/mergebench/internal/models"
)

// UpsertOutcome inserts or replaces one (scenario, tool) outcome row.
func (s *Store) UpsertOutcome(o *models.Outcome) error {
	_, err := s.db.Exec(`
		INSERT INTO outcomes (scenario_id, tool, state, fingerprint, run_time)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(scenario_id, tool) DO UPDATE SET
			state = excluded.state,
			fingerprint = excluded.fingerprint,
			run_time = excluded.run_time`,
		o.ScenarioID, string(o.Tool), string(o.State),
		sql.NullString{String: o.Fingerprint, Valid: o.Fingerprint != ""},
		o.RunTime,
	)
	return err
}

// OutcomesForScenario returns the outcomes of one scenario keyed by tool.
func (s *Store) OutcomesForScenario(scenarioID string) (map[models.Tool]models.Outcome, error) {
	rows, err := s.db.Query(`
		SELECT scenario_id, tool, state, fingerprint, run_time
		FROM outcomes WHERE scenario_id = ?`, scenarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOutcomeMap(rows)
}

// AllOutcomes returns every outcome row keyed by scenario then tool.
func (s *Store) AllOutcomes() (map[string]map[models.Tool]models.Outcome, error) {
	rows, err := s.db.Query(`
		SELECT scenario_id, tool, state, fingerprint, run_time
		FROM outcomes ORDER BY scenario_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all := make(map[string]map[models.Tool]models.Outcome)
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		byTool, ok := all[o.ScenarioID]
		if !ok {
			byTool = make(map[models.Tool]models.Outcome)
			all[o.ScenarioID] = byTool
		}
		byTool[o.Tool] = o
	}
	return all, rows.Err()
}

// RunTimes returns the recorded run times of a tool across all scenarios,
// skipping rows that were not timed.
func (s *Store) RunTimes(tool models.Tool) ([]float64, error) {
	rows, err := s.db.Query(`
		SELECT run_time FROM outcomes WHERE tool = ? AND run_time > 0`, string(tool))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []float64
	for rows.Next() {
		var t float64
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func scanOutcome(rows *sql.Rows) (models.Outcome, error) {
	var o models.Outcome
	var tool, state string
	var fingerprint sql.NullString

	if err := rows.Scan(&o.ScenarioID, &tool, &state, &fingerprint, &o.RunTime); err != nil {
		return o, err
	}
	o.Tool = models.Tool(tool)
	o.State = models.State(state)
	if fingerprint.Valid {
		o.Fingerprint = fingerprint.String
	}
	return o, nil
}

func scanOutcomeMap(rows *sql.Rows) (map[models.Tool]models.Outcome, error) {
	byTool := make(map[models.Tool]models.Outcome)
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		byTool[o.Tool] = o
	}
	return byTool, rows.Err()
}
