package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilupskalvis/mergebench/internal/eval"
)

func TestLatexDef(t *testing.T) {
	assert.Equal(t, "\\def\\reposTotal{26\\xspace}\n", LatexDef("reposTotal", 26))
	assert.Equal(t, "\\def\\mainPercent{42.5\\xspace}\n", LatexDef("mainPercent", 42.5))
}

func TestSummaryTable(t *testing.T) {
	out := SummaryTable([]Row{
		{Name: "Gitmerge-ort", Counts: eval.Counts{Correct: 60, Incorrect: 10, Unhandled: 30}},
		{Name: "Spork", Counts: eval.Counts{Correct: 45, Incorrect: 5, Unhandled: 50}},
	})

	assert.True(t, strings.HasPrefix(out, "% Do not edit."))
	assert.Contains(t, out, `\begin{tabular}{l|c c|c c|c c}`)
	assert.Contains(t, out, `Gitmerge-ort`)
	assert.Contains(t, out, `&    60 &  60\%`)
	assert.Contains(t, out, `&    30 &  30\%`)
	assert.Contains(t, out, `&    10 &  10\% \\`)
	assert.True(t, strings.HasSuffix(out, "\\end{tabular}\n"))
}

func TestSummaryTable_EmptyTotal(t *testing.T) {
	out := SummaryTable([]Row{{Name: "Spork"}})
	assert.Contains(t, out, `&     0 &   0\%`)
}

func TestMainFeatureTable(t *testing.T) {
	out := MainFeatureTable([]BreakdownRow{
		{
			Name:    "Spork",
			Main:    eval.Counts{Correct: 8, Incorrect: 1, Unhandled: 1},
			Feature: eval.Counts{Correct: 5, Incorrect: 2, Unhandled: 3},
		},
	})

	assert.Contains(t, out, "Main Branch")
	assert.Contains(t, out, "Other Branches")
	// Correct columns: 8/10 main, 5/10 feature.
	assert.Contains(t, out, `&     8 &  80\% &     5 &  50\%`)
	require.Equal(t, 1, strings.Count(out, "Spork"))
}

func TestRunTimeTable(t *testing.T) {
	out := RunTimeTable([]RunTimeRow{
		{Name: "IntelliMerge", Mean: 3.14159, Median: 42.42, Max: 123.6},
	})

	assert.Contains(t, out, "Run time (seconds)")
	assert.Contains(t, out, "& 3.14 & 42.4 & 124 \\\\")
}

func TestFormatRunTime(t *testing.T) {
	assert.Equal(t, "0.05", formatRunTime(0.05))
	assert.Equal(t, "9.99", formatRunTime(9.99))
	assert.Equal(t, "10.0", formatRunTime(10))
	assert.Equal(t, "99.9", formatRunTime(99.94))
	assert.Equal(t, "100", formatRunTime(100))
	assert.Equal(t, "124", formatRunTime(123.6))
}

func TestPercentRounds(t *testing.T) {
	assert.Equal(t, 33, percent(1, 3))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 0, percent(5, 0))
	assert.Equal(t, 100, percent(7, 7))
}
