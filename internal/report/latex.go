// Package report generates the aggregate evaluation outputs: LaTeX table
// fragments, macro definitions, and plot-ready CSV data. Rendering the
// fragments into a document is the paper build's job, not ours.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/kilupskalvis/mergebench/internal/eval"
)

// Row is one tool's aggregate counts, ready for table rendering.
type Row struct {
	Name   string
	Counts eval.Counts
}

// BreakdownRow splits one tool's counts by merge origin.
type BreakdownRow struct {
	Name    string
	Main    eval.Counts
	Feature eval.Counts
}

// RunTimeRow is one tool's run-time statistics in seconds.
type RunTimeRow struct {
	Name   string
	Mean   float64
	Median float64
	Max    float64
}

// LatexDef returns a LaTeX macro definition line.
func LatexDef(name string, value interface{}) string {
	return fmt.Sprintf("\\def\\%s{%v\\xspace}\n", name, value)
}

const generatedHeader = "% Do not edit.  This file is automatically generated.\n"

// SummaryTable renders the overall correct/unhandled/incorrect table.
func SummaryTable(rows []Row) string {
	var b strings.Builder
	b.WriteString(generatedHeader)
	b.WriteString(`\begin{tabular}{l|c c|c c|c c}
        Tool &
        \multicolumn{2}{c|}{Correct Merges} &
        \multicolumn{2}{c|}{Unhandled Merges} &
        \multicolumn{2}{c}{Incorrect Merges} \\
        & \# & \% & \# & \% & \# & \% \\
        \hline
`)
	for _, row := range rows {
		total := row.Counts.Total()
		fmt.Fprintf(&b, "%-32s", row.Name)
		fmt.Fprintf(&b, " & %5d & %3d\\%%", row.Counts.Correct, percent(row.Counts.Correct, total))
		fmt.Fprintf(&b, " & %5d & %3d\\%%", row.Counts.Unhandled, percent(row.Counts.Unhandled, total))
		fmt.Fprintf(&b, " & %5d & %3d\\%% \\\\\n", row.Counts.Incorrect, percent(row.Counts.Incorrect, total))
	}
	b.WriteString("\\end{tabular}\n")
	return b.String()
}

// MainFeatureTable renders the main-branch vs other-branches breakdown.
func MainFeatureTable(rows []BreakdownRow) string {
	var b strings.Builder
	b.WriteString(generatedHeader)
	b.WriteString(`\begin{tabular}{c|c c c c|c c c c|c c c c}
            Tool &
            \multicolumn{4}{c|}{Correct Merges} &
            \multicolumn{4}{c|}{Unhandled Merges} &
            \multicolumn{4}{c}{Incorrect Merges} \\
            &
            \multicolumn{2}{c}{Main Branch} &
            \multicolumn{2}{c|}{Other Branches} &
            \multicolumn{2}{c}{Main Branch} &
            \multicolumn{2}{c|}{Other Branches} &
            \multicolumn{2}{c}{Main Branch} &
            \multicolumn{2}{c}{Other Branches} \\
            \hline
            & \# & \% & \# & \% & \# & \% & \# & \% & \# & \% & \# & \% \\
`)
	for _, row := range rows {
		mainTotal := row.Main.Total()
		featureTotal := row.Feature.Total()
		fmt.Fprintf(&b, "            %-32s", row.Name)
		fmt.Fprintf(&b, " & %5d & %3d\\%%", row.Main.Correct, percent(row.Main.Correct, mainTotal))
		fmt.Fprintf(&b, " & %5d & %3d\\%%", row.Feature.Correct, percent(row.Feature.Correct, featureTotal))
		fmt.Fprintf(&b, " & %5d & %3d\\%%", row.Main.Unhandled, percent(row.Main.Unhandled, mainTotal))
		fmt.Fprintf(&b, " & %5d & %3d\\%%", row.Feature.Unhandled, percent(row.Feature.Unhandled, featureTotal))
		fmt.Fprintf(&b, " & %5d & %3d\\%%", row.Main.Incorrect, percent(row.Main.Incorrect, mainTotal))
		fmt.Fprintf(&b, " & %5d & %3d\\%% \\\\\n", row.Feature.Incorrect, percent(row.Feature.Incorrect, featureTotal))
	}
	b.WriteString("\\end{tabular}\n")
	return b.String()
}

// RunTimeTable renders the mean/median/max run-time table.
func RunTimeTable(rows []RunTimeRow) string {
	var b strings.Builder
	b.WriteString(generatedHeader)
	b.WriteString(`\begin{tabular}{c|c|c|c}
    & \multicolumn{3}{c}{Run time (seconds)} \\
    Tool & Mean & Median & Max \\
    \hline
`)
	for _, row := range rows {
		fmt.Fprintf(&b, "    %-32s", row.Name)
		for _, v := range []float64{row.Mean, row.Median, row.Max} {
			b.WriteString(" & " + formatRunTime(v))
		}
		b.WriteString(" \\\\\n")
	}
	b.WriteString("\\end{tabular}\n")
	return b.String()
}

// formatRunTime keeps roughly three significant digits: two decimals under
// ten seconds, one under a hundred, whole seconds beyond.
func formatRunTime(seconds float64) string {
	switch {
	case seconds < 10:
		return fmt.Sprintf("%0.2f", seconds)
	case seconds < 100:
		return fmt.Sprintf("%0.1f", seconds)
	default:
		return fmt.Sprintf("%d", int(math.Round(seconds)))
	}
}

func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}
