package eval

import (
	"fmt"

	"github.com/kilupskalvis/mergebench/internal/models"
)

// Counts aggregates a tool's outcomes over a set of scenarios into the
// three mutually exclusive buckets of the cost model.
type Counts struct {
	Correct   int // tests passed: cost 0
	Incorrect int // tests failed or timed out: cost k per merge
	Unhandled int // merge failed or timed out: cost 1 per merge
}

// Total returns the number of scenarios behind the counts.
func (c Counts) Total() int {
	return c.Correct + c.Incorrect + c.Unhandled
}

// CountStates buckets a list of outcome states. Every state must fall into
// exactly one bucket; undesirable states are expected to have been filtered
// out beforehand.
func CountStates(states []models.State) (Counts, error) {
	var c Counts
	for _, s := range states {
		switch {
		case s.Correct():
			c.Correct++
		case s.Incorrect():
			c.Incorrect++
		case s.Unhandled():
			c.Unhandled++
		default:
			return Counts{}, fmt.Errorf("state %s fits no cost bucket", s)
		}
	}
	return c, nil
}

// EffortReduction scores a tool under the parameterized cost model: an
// unhandled merge costs one unit of human review, an incorrect merge costs
// costFactor units (it is discovered later), a correct merge costs nothing.
// The result is 1 minus the normalized cost; manual merging scores a
// constant 0.
func EffortReduction(c Counts, costFactor float64) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	score := float64(c.Unhandled) + float64(c.Incorrect)*costFactor
	return 1 - score/float64(total)
}

// MaxCostIntersection returns the largest cost factor at which any tool's
// effort reduction reaches zero: the right edge of the interesting plotting
// range. Tools with no incorrect merges never reach zero and are skipped.
func MaxCostIntersection(counts []Counts) float64 {
	maxK := 0.0
	for _, c := range counts {
		if c.Incorrect == 0 {
			continue
		}
		k := float64(c.Total()-c.Unhandled) / float64(c.Incorrect)
		if k > maxK {
			maxK = k
		}
	}
	return maxK
}

// CurvePoint is one sample of an effort-reduction curve.
type CurvePoint struct {
	CostFactor      float64
	EffortReduction float64
}

// Curve samples the effort-reduction curve at `samples` evenly spaced cost
// factors in [1, kmax].
func Curve(c Counts, kmax float64, samples int) []CurvePoint {
	if samples < 2 {
		samples = 2
	}
	points := make([]CurvePoint, samples)
	step := (kmax - 1) / float64(samples-1)
	for i := range points {
		k := 1 + step*float64(i)
		points[i] = CurvePoint{CostFactor: k, EffortReduction: EffortReduction(c, k)}
	}
	return points
}

// CrossingPoint returns the cost factor at which two tools' effort
// reduction curves intersect. The curves are lines in the cost factor, so
// the intersection is analytic; ok is false when the curves are parallel
// or either tool has no scenarios.
func CrossingPoint(a, b Counts) (k float64, ok bool) {
	na, nb := a.Total(), b.Total()
	if na == 0 || nb == 0 {
		return 0, false
	}
	// 1-(ua+ia*k)/na = 1-(ub+ib*k)/nb  solved for k
	slope := float64(a.Incorrect)/float64(na) - float64(b.Incorrect)/float64(nb)
	if slope == 0 {
		return 0, false
	}
	offset := float64(b.Unhandled)/float64(nb) - float64(a.Unhandled)/float64(na)
	return offset / slope, true
}
