package models

// Scenario identifies one merge under evaluation: a commit tuple from the
// result table. Immutable once loaded.
type Scenario struct {
	ID         string // "<repo-idx>-<merge-idx>"
	Repository string // e.g. "apache/commons-lang"
	BaseSHA    string
	LeftSHA    string
	RightSHA   string
	MergeSHA   string // the accepted programmer merge
	BranchName string
}

// Outcome is one (scenario, tool) result row, as recorded by the external
// test-running harness.
type Outcome struct {
	ScenarioID  string
	Tool        Tool
	State       State
	Fingerprint string  // content hash of the merged tree, empty if none
	RunTime     float64 // seconds the tool took, 0 if not timed
}
