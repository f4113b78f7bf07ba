package store

import (
	"database/sql"
	"fmt"

	"github.com/kilupskalvis/mergebench/internal/models"
)

// UpsertScenario inserts or replaces a scenario row.
func (s *Store) UpsertScenario(sc *models.Scenario) error {
	_, err := s.db.Exec(`
		INSERT INTO scenarios (id, repository, base_sha, left_sha, right_sha, merge_sha, branch_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			repository = excluded.repository,
			base_sha = excluded.base_sha,
			left_sha = excluded.left_sha,
			right_sha = excluded.right_sha,
			merge_sha = excluded.merge_sha,
			branch_name = excluded.branch_name`,
		sc.ID, sc.Repository, sc.BaseSHA, sc.LeftSHA, sc.RightSHA, sc.MergeSHA, sc.BranchName,
	)
	return err
}

// GetScenario retrieves a scenario by ID
func (s *Store) GetScenario(id string) (*models.Scenario, error) {
	var sc models.Scenario
	var branchName sql.NullString

	err := s.db.QueryRow(`
		SELECT id, repository, base_sha, left_sha, right_sha, merge_sha, branch_name
		FROM scenarios WHERE id = ?`, id).Scan(
		&sc.ID, &sc.Repository, &sc.BaseSHA, &sc.LeftSHA, &sc.RightSHA, &sc.MergeSHA, &branchName,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scenario '%s' not found", id)
	}
	if err != nil {
		return nil, err
	}

	if branchName.Valid {
		sc.BranchName = branchName.String
	}
	return &sc, nil
}

// ListScenarios returns all scenarios ordered by ID.
func (s *Store) ListScenarios() ([]*models.Scenario, error) {
	rows, err := s.db.Query(`
		SELECT id, repository, base_sha, left_sha, right_sha, merge_sha, branch_name
		FROM scenarios ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []*models.Scenario
	for rows.Next() {
		var sc models.Scenario
		var branchName sql.NullString
		if err := rows.Scan(&sc.ID, &sc.Repository, &sc.BaseSHA, &sc.LeftSHA, &sc.RightSHA, &sc.MergeSHA, &branchName); err != nil {
			return nil, err
		}
		if branchName.Valid {
			sc.BranchName = branchName.String
		}
		scenarios = append(scenarios, &sc)
	}
	return scenarios, rows.Err()
}
