package models

// Tool identifies one of the merge tools under evaluation. The set is
// closed: adding a tool means adding a constant here, a display name below,
// and a `<tool>.sh` script in the tools directory.
type Tool string

const (
	GitMergeOrt                   Tool = "gitmerge_ort"
	GitMergeOrtIgnorespace        Tool = "gitmerge_ort_ignorespace"
	GitMergeOrtAdjacent           Tool = "gitmerge_ort_adjacent"
	GitMergeOrtImports            Tool = "gitmerge_ort_imports"
	GitMergeOrtImportsIgnorespace Tool = "gitmerge_ort_imports_ignorespace"
	GitMergeRecursiveHistogram    Tool = "gitmerge_recursive_histogram"
	GitMergeRecursiveIgnorespace  Tool = "gitmerge_recursive_ignorespace"
	GitMergeRecursiveMinimal      Tool = "gitmerge_recursive_minimal"
	GitMergeRecursiveMyers        Tool = "gitmerge_recursive_myers"
	GitMergeRecursivePatience     Tool = "gitmerge_recursive_patience"
	GitMergeResolve               Tool = "gitmerge_resolve"
	GitHiresMerge                 Tool = "git_hires_merge"
	Spork                         Tool = "spork"
	IntelliMerge                  Tool = "intellimerge"
)

// AllTools lists every known merge tool in report order.
func AllTools() []Tool {
	return []Tool{
		GitMergeOrt,
		GitMergeOrtIgnorespace,
		GitMergeOrtAdjacent,
		GitMergeOrtImports,
		GitMergeOrtImportsIgnorespace,
		GitMergeRecursiveHistogram,
		GitMergeRecursiveIgnorespace,
		GitMergeRecursiveMinimal,
		GitMergeRecursiveMyers,
		GitMergeRecursivePatience,
		GitMergeResolve,
		GitHiresMerge,
		Spork,
		IntelliMerge,
	}
}

// ParseTool validates a tool name from user input.
func ParseTool(name string) (Tool, bool) {
	for _, t := range AllTools() {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

func (t Tool) String() string {
	return string(t)
}

// ScriptName returns the file name of the tool's wrapper script.
func (t Tool) ScriptName() string {
	return string(t) + ".sh"
}

// toolDisplayNames overrides the default name derivation for tools whose
// report names are not a simple capitalization.
var toolDisplayNames = map[Tool]string{
	GitMergeOrtAdjacent:           "Adjacent+ort",
	GitMergeOrtImports:            "Imports+ort",
	GitMergeOrtImportsIgnorespace: "Imports+ort-ignorespace",
	IntelliMerge:                  "IntelliMerge",
	GitHiresMerge:                 "Hires-Merge",
}

// DisplayName returns the human-readable name used in tables and plots.
func (t Tool) DisplayName() string {
	if name, ok := toolDisplayNames[t]; ok {
		return name
	}
	return displayName(string(t))
}

// ToolGroups returns the named subsets of tools for which reports are
// generated, keyed by the output subdirectory name.
func ToolGroups() map[string][]Tool {
	return map[string][]Tool{
		"all": AllTools(),
		"git": {
			GitMergeOrt,
			GitMergeOrtIgnorespace,
			GitMergeRecursiveHistogram,
			GitMergeRecursiveIgnorespace,
			GitMergeRecursiveMinimal,
			GitMergeRecursiveMyers,
			GitMergeRecursivePatience,
			GitMergeResolve,
		},
		"tools": {
			GitMergeOrt,
			GitMergeOrtIgnorespace,
			GitMergeOrtAdjacent,
			GitMergeOrtImports,
			GitMergeOrtImportsIgnorespace,
			GitHiresMerge,
			Spork,
			IntelliMerge,
		},
	}
}
