package eval

import (
	"errors"
	"fmt"

	"github.com/kilupskalvis/mergebench/internal/models"
)

// ErrInvalidStatePair is returned when Reconcile sees a state combination
// outside its precedence table. The input domain must be pre-filtered to
// exclude checkout-failure and not-tested states, so hitting this is a
// data-integrity bug, not a runtime condition.
var ErrInvalidStatePair = errors.New("invalid outcome state pair")

// Reconcile folds two outcome states into the better one. It is commutative
// and associative, so folding a set of tools' outcomes gives the same
// result in any order. Precedence, strictly:
//
//  1. any Tests_passed wins: one working tool makes the scenario solvable
//  2. else any Merge_failed: a hard merge failure outranks a soft one
//  3. else any Tests_failed
//  4. else both Tests_timedout
func Reconcile(a, b models.State) (models.State, error) {
	if a == models.TestsPassed || b == models.TestsPassed {
		return models.TestsPassed, nil
	}
	if a == models.MergeFailed || b == models.MergeFailed {
		return models.MergeFailed, nil
	}
	if a == models.TestsFailed || b == models.TestsFailed {
		return models.TestsFailed, nil
	}
	if a == models.TestsTimedout && b == models.TestsTimedout {
		return models.TestsTimedout, nil
	}
	return "", fmt.Errorf("%w: %s, %s", ErrInvalidStatePair, a, b)
}

// Oracle computes the best outcome achievable for a scenario across all
// tools: the synthetic baseline of always picking the best tool. The fold
// is seeded with Tests_failed, which is the identity for every valid input
// except Tests_timedout (where it correctly dominates).
func Oracle(states []models.State) (models.State, error) {
	for _, s := range states {
		if !validReconcileInput(s) {
			return "", fmt.Errorf("%w: %s is outside the reconciliation domain", ErrInvalidStatePair, s)
		}
	}

	result := models.TestsFailed
	for _, s := range states {
		var err error
		result, err = Reconcile(result, s)
		if err != nil {
			return "", err
		}
	}
	return result, nil
}

// validReconcileInput reports whether a state belongs to the pre-filtered
// reconciliation domain.
func validReconcileInput(s models.State) bool {
	switch s {
	case models.TestsPassed, models.MergeFailed, models.TestsFailed, models.TestsTimedout:
		return true
	}
	return false
}
