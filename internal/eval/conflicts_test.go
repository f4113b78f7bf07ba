package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractConflicts(t *testing.T) {
	output := `Auto-merging src/A.txt
CONFLICT (content): Merge conflict in src/A.txt
Auto-merging src/B.txt
CONFLICT (add/add): Merge conflict in src/B.txt
Automatic merge failed; fix conflicts and then commit the result.
`
	assert.Equal(t, []string{"src/A.txt", "src/B.txt"}, ExtractConflicts(output))
}

func TestExtractConflicts_NoConflicts(t *testing.T) {
	output := `Auto-merging src/A.txt
Merge made by the 'ort' strategy.
`
	assert.Empty(t, ExtractConflicts(output))
}

func TestExtractConflicts_Empty(t *testing.T) {
	assert.Empty(t, ExtractConflicts(""))
}

func TestExtractConflicts_DuplicatesKept(t *testing.T) {
	// A file reported under several conflict kinds is kept once per report;
	// diffing it twice just overwrites the same artifact.
	output := `CONFLICT (content): Merge conflict in src/A.java
CONFLICT (modify/delete): Merge conflict in src/A.java
`
	assert.Equal(t, []string{"src/A.java", "src/A.java"}, ExtractConflicts(output))
}

func TestExtractConflicts_PathsWithSpaces(t *testing.T) {
	output := "CONFLICT (content): Merge conflict in docs/release notes.md\n"
	assert.Equal(t, []string{"docs/release notes.md"}, ExtractConflicts(output))
}
