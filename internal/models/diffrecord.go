package models

// DiffMode distinguishes the two comparison shapes a DiffRecord can hold.
type DiffMode string

const (
	// DiffThreeWay is the primary mode: diff3 of base, tool output and the
	// programmer merge.
	DiffThreeWay DiffMode = "three-way"
	// DiffTwoWay is the fallback when the file has no base version (added
	// independently on both sides): plain diff of tool output vs merge.
	DiffTwoWay DiffMode = "two-way"
)

// DiffRecord is the write-once result of comparing one conflicting file.
type DiffRecord struct {
	ScenarioID string
	Tool       Tool
	File       string // conflicting path, relative to the repo root
	Mode       DiffMode
	Text       string // raw diff output, written verbatim
	Hunks      int    // hunk count for two-way records, 0 for three-way
}
