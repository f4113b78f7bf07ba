package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilupskalvis/mergebench/internal/models"
)

func TestEffortReduction(t *testing.T) {
	// 60 correct, 10 incorrect, 30 unhandled out of 100. At k=1 the cost is
	// (30 + 10)/100, so the reduction is 0.6.
	c := Counts{Correct: 60, Incorrect: 10, Unhandled: 30}
	assert.InDelta(t, 0.6, EffortReduction(c, 1), 1e-9)
	assert.InDelta(t, 0.3, EffortReduction(c, 4), 1e-9)
}

func TestEffortReduction_MonotonicInCostFactor(t *testing.T) {
	c := Counts{Correct: 50, Incorrect: 5, Unhandled: 45}
	prev := EffortReduction(c, 1)
	for k := 1.5; k < 50; k += 0.5 {
		cur := EffortReduction(c, k)
		assert.LessOrEqual(t, cur, prev, "effort reduction increased at k=%v", k)
		prev = cur
	}
}

func TestEffortReduction_NoIncorrectIgnoresCostFactor(t *testing.T) {
	c := Counts{Correct: 70, Incorrect: 0, Unhandled: 30}
	base := EffortReduction(c, 1)
	for _, k := range []float64{1, 2, 10, 1000} {
		assert.Equal(t, base, EffortReduction(c, k))
	}
}

func TestEffortReduction_EmptyCounts(t *testing.T) {
	assert.Equal(t, 0.0, EffortReduction(Counts{}, 3))
}

func TestMaxCostIntersection(t *testing.T) {
	counts := []Counts{
		{Correct: 60, Incorrect: 10, Unhandled: 30}, // zero at k = 70/10 = 7
		{Correct: 80, Incorrect: 0, Unhandled: 20},  // never reaches zero
		{Correct: 45, Incorrect: 5, Unhandled: 50},  // zero at k = 50/5 = 10
	}
	assert.InDelta(t, 10, MaxCostIntersection(counts), 1e-9)
}

func TestMaxCostIntersection_AllPerfect(t *testing.T) {
	assert.Equal(t, 0.0, MaxCostIntersection([]Counts{{Correct: 10}}))
}

func TestCurve(t *testing.T) {
	c := Counts{Correct: 60, Incorrect: 10, Unhandled: 30}
	points := Curve(c, 7, 100)
	require.Len(t, points, 100)

	assert.InDelta(t, 1, points[0].CostFactor, 1e-9)
	assert.InDelta(t, 7, points[99].CostFactor, 1e-9)
	assert.InDelta(t, EffortReduction(c, 1), points[0].EffortReduction, 1e-9)
	// At the max intersection the curve reaches zero.
	assert.InDelta(t, 0, points[99].EffortReduction, 1e-9)
}

func TestCrossingPoint(t *testing.T) {
	// Tool A handles more merges but makes more mistakes; tool B is
	// conservative. A dominates at low cost factors, B past the crossing.
	a := Counts{Correct: 60, Incorrect: 10, Unhandled: 30}
	b := Counts{Correct: 50, Incorrect: 2, Unhandled: 48}

	k, ok := CrossingPoint(a, b)
	require.True(t, ok)

	assert.InDelta(t, EffortReduction(a, k), EffortReduction(b, k), 1e-9)
	assert.Greater(t, EffortReduction(a, k-1), EffortReduction(b, k-1))
	assert.Less(t, EffortReduction(a, k+1), EffortReduction(b, k+1))
}

func TestCrossingPoint_ParallelCurves(t *testing.T) {
	a := Counts{Correct: 60, Incorrect: 10, Unhandled: 30}
	_, ok := CrossingPoint(a, a)
	assert.False(t, ok)
}

func TestCrossingPoint_EmptyCounts(t *testing.T) {
	_, ok := CrossingPoint(Counts{}, Counts{Correct: 1})
	assert.False(t, ok)
}

func TestCountStates(t *testing.T) {
	c, err := CountStates([]models.State{
		models.TestsPassed,
		models.TestsPassed,
		models.TestsFailed,
		models.TestsTimedout,
		models.MergeFailed,
	})
	require.NoError(t, err)
	assert.Equal(t, Counts{Correct: 2, Incorrect: 2, Unhandled: 1}, c)
}

func TestCountStates_RejectsUnbucketedState(t *testing.T) {
	_, err := CountStates([]models.State{models.NotTested})
	assert.Error(t, err)
}
