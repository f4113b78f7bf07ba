package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateBuckets(t *testing.T) {
	assert.True(t, TestsPassed.Correct())

	assert.True(t, TestsFailed.Incorrect())
	assert.True(t, TestsTimedout.Incorrect())

	assert.True(t, MergeFailed.Unhandled())
	assert.True(t, MergeTimedout.Unhandled())

	// Every state falls into at most one cost bucket.
	for _, s := range []State{MergeFailed, MergeTimedout, GitCheckoutFailed, TestsPassed, TestsFailed, TestsTimedout, NotTested} {
		n := 0
		for _, in := range []bool{s.Correct(), s.Incorrect(), s.Unhandled()} {
			if in {
				n++
			}
		}
		assert.LessOrEqual(t, n, 1, "state %s is in %d buckets", s, n)
	}
}

func TestStateUndesirable(t *testing.T) {
	assert.True(t, GitCheckoutFailed.Undesirable())
	assert.True(t, NotTested.Undesirable())
	assert.True(t, MergeTimedout.Undesirable())

	assert.False(t, TestsPassed.Undesirable())
	assert.False(t, TestsFailed.Undesirable())
	assert.False(t, TestsTimedout.Undesirable())
	assert.False(t, MergeFailed.Undesirable())
}

func TestIsMainBranch(t *testing.T) {
	assert.True(t, IsMainBranch("main"))
	assert.True(t, IsMainBranch("master"))
	assert.True(t, IsMainBranch("refs/heads/main"))
	assert.False(t, IsMainBranch("feature/topic"))
	assert.False(t, IsMainBranch(""))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Gitmerge-ort", displayName("gitmerge_ort"))
	assert.Equal(t, "Spork", displayName("spork"))
	assert.Equal(t, "", displayName(""))
}
