package models

import "strings"

// State is the recorded outcome of running one merge tool on one merge
// scenario. Two families share the type: merge-level states (did the tool
// produce a merge at all) and test-level states (did the merged tree pass
// the project's test suite).
type State string

const (
	// Merge-level states.
	MergeFailed       State = "Merge_failed"
	MergeTimedout     State = "Merge_timedout"
	GitCheckoutFailed State = "Git_checkout_failed"

	// Test-level states.
	TestsPassed   State = "Tests_passed"
	TestsFailed   State = "Tests_failed"
	TestsTimedout State = "Tests_timedout"
	NotTested     State = "Not_tested"
)

func (s State) String() string {
	return string(s)
}

// Correct reports whether the state counts as a correct merge.
func (s State) Correct() bool {
	return s == TestsPassed
}

// Incorrect reports whether the state counts as an incorrect merge: the
// tool produced a merge, but the result does not pass tests.
func (s State) Incorrect() bool {
	return s == TestsFailed || s == TestsTimedout
}

// Unhandled reports whether the state counts as an unhandled merge: the
// tool left the conflict to a human.
func (s State) Unhandled() bool {
	return s == MergeFailed || s == MergeTimedout
}

// Undesirable reports whether the state reflects a harness problem rather
// than a tool outcome. Scenarios with an undesirable state for any tool are
// dropped before aggregation.
func (s State) Undesirable() bool {
	switch s {
	case GitCheckoutFailed, NotTested, MergeTimedout:
		return true
	}
	return false
}

// mainBranchNames are the branch names treated as the repository's main
// line of development in the main-vs-feature breakdown.
var mainBranchNames = map[string]bool{
	"main":              true,
	"refs/heads/main":   true,
	"master":            true,
	"refs/heads/master": true,
}

// IsMainBranch reports whether branchName names a main branch.
func IsMainBranch(branchName string) bool {
	return mainBranchNames[branchName]
}

// displayName derives a report name from an identifier: first letter upper,
// rest lower, underscores to hyphens.
func displayName(name string) string {
	name = strings.ReplaceAll(strings.ToLower(name), "_", "-")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
