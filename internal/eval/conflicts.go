package eval

import "regexp"

// conflictPattern is the sole integration contract with merge tool output:
// tools report each conflicting file on a line shaped like
//
//	CONFLICT (content): Merge conflict in src/main/java/Foo.java
//
// If a tool's output format ever changes, this parser is the only place
// that needs updating.
var conflictPattern = regexp.MustCompile(`CONFLICT \(.+\): Merge conflict in (.+)`)

// ExtractConflicts returns the conflicting file paths reported in a merge
// tool's console output, in order of first appearance. Paths are not
// de-duplicated: a file reported under multiple conflict kinds is diffed
// once per report, which is idempotent since the artifact is overwritten.
// An empty result means the tool produced a clean merge.
func ExtractConflicts(consoleOutput string) []string {
	matches := conflictPattern.FindAllStringSubmatch(consoleOutput, -1)
	var files []string
	for _, m := range matches {
		files = append(files, m[1])
	}
	return files
}
