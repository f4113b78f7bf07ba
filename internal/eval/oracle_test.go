package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilupskalvis/mergebench/internal/models"
)

// validStates is the reconciliation input domain: undesirable states are
// filtered out before the oracle fold runs.
var validStates = []models.State{
	models.TestsPassed,
	models.MergeFailed,
	models.TestsFailed,
	models.TestsTimedout,
}

func TestReconcile_Precedence(t *testing.T) {
	tests := []struct {
		a, b, want models.State
	}{
		{models.TestsPassed, models.TestsPassed, models.TestsPassed},
		{models.TestsPassed, models.MergeFailed, models.TestsPassed},
		{models.TestsPassed, models.TestsFailed, models.TestsPassed},
		{models.TestsPassed, models.TestsTimedout, models.TestsPassed},
		{models.MergeFailed, models.MergeFailed, models.MergeFailed},
		{models.MergeFailed, models.TestsFailed, models.MergeFailed},
		{models.MergeFailed, models.TestsTimedout, models.MergeFailed},
		{models.TestsFailed, models.TestsFailed, models.TestsFailed},
		{models.TestsFailed, models.TestsTimedout, models.TestsFailed},
		{models.TestsTimedout, models.TestsTimedout, models.TestsTimedout},
	}

	for _, tt := range tests {
		got, err := Reconcile(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Reconcile(%s, %s)", tt.a, tt.b)
	}
}

func TestReconcile_PassedWinsOverAnything(t *testing.T) {
	for _, s := range validStates {
		got, err := Reconcile(models.TestsPassed, s)
		require.NoError(t, err)
		assert.Equal(t, models.TestsPassed, got)
	}
}

func TestReconcile_Commutative(t *testing.T) {
	for _, a := range validStates {
		for _, b := range validStates {
			ab, errAB := Reconcile(a, b)
			ba, errBA := Reconcile(b, a)
			require.NoError(t, errAB)
			require.NoError(t, errBA)
			assert.Equal(t, ab, ba, "Reconcile(%s, %s) vs Reconcile(%s, %s)", a, b, b, a)
		}
	}
}

func TestReconcile_Associative(t *testing.T) {
	for _, a := range validStates {
		for _, b := range validStates {
			for _, c := range validStates {
				ab, err := Reconcile(a, b)
				require.NoError(t, err)
				left, err := Reconcile(ab, c)
				require.NoError(t, err)

				bc, err := Reconcile(b, c)
				require.NoError(t, err)
				right, err := Reconcile(a, bc)
				require.NoError(t, err)

				assert.Equal(t, left, right, "fold order changed the result for (%s, %s, %s)", a, b, c)
			}
		}
	}
}

func TestReconcile_InvalidStates(t *testing.T) {
	_, err := Reconcile(models.GitCheckoutFailed, models.TestsTimedout)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatePair)

	_, err = Reconcile(models.TestsTimedout, models.NotTested)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatePair)
}

func TestOracle_BestToolWins(t *testing.T) {
	got, err := Oracle([]models.State{
		models.MergeFailed,
		models.TestsFailed,
		models.TestsPassed,
		models.TestsTimedout,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TestsPassed, got)
}

func TestOracle_AllTimedout(t *testing.T) {
	// The fold seed is Tests_failed, so an all-timeout scenario reports
	// Tests_failed: the oracle never claims a better outcome than any tool
	// achieved.
	got, err := Oracle([]models.State{models.TestsTimedout, models.TestsTimedout})
	require.NoError(t, err)
	assert.Equal(t, models.TestsFailed, got)
}

func TestOracle_MergeFailuresDominateTestFailures(t *testing.T) {
	got, err := Oracle([]models.State{models.TestsFailed, models.MergeFailed})
	require.NoError(t, err)
	assert.Equal(t, models.MergeFailed, got)
}

func TestOracle_Empty(t *testing.T) {
	got, err := Oracle(nil)
	require.NoError(t, err)
	assert.Equal(t, models.TestsFailed, got)
}

func TestOracle_InvalidStateAborts(t *testing.T) {
	_, err := Oracle([]models.State{models.TestsPassed, models.NotTested})
	assert.ErrorIs(t, err, ErrInvalidStatePair)
}
