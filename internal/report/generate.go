package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/kilupskalvis/mergebench/internal/eval"
	"github.com/kilupskalvis/mergebench/internal/models"
	"github.com/kilupskalvis/mergebench/internal/store"
)

const oracleRowName = "Oracle tool"

// Generator produces the aggregate report from the results store: summary
// and breakdown tables, run-time statistics, cost-tradeoff curve data and
// the fingerprint difference matrix, per tool group.
type Generator struct {
	Store     *store.Store
	OutputDir string
	RunName   string // macro name prefix in defs.tex, default "combined"
	Samples   int    // cost curve sample count, default 1000
	Logger    zerolog.Logger
	Out       io.Writer // terminal summary destination, default os.Stdout
}

// Run generates every report artifact. Any contract violation — an
// unknown outcome state, a fingerprint inconsistency, aggregate counts
// that do not add up — aborts the whole run.
func (g *Generator) Run() error {
	if g.RunName == "" {
		g.RunName = "combined"
	}
	if g.Samples == 0 {
		g.Samples = 1000
	}
	if g.Out == nil {
		g.Out = os.Stdout
	}

	scenarios, err := g.Store.ListScenarios()
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("results store holds no scenarios; run 'mergebench import' first")
	}
	scenarioByID := make(map[string]*models.Scenario, len(scenarios))
	for _, sc := range scenarios {
		scenarioByID[sc.ID] = sc
	}

	all, err := g.Store.AllOutcomes()
	if err != nil {
		return err
	}

	// Drop scenarios with any undesirable state: those reflect harness
	// problems, not tool behavior.
	kept := make(map[string]map[models.Tool]models.Outcome, len(all))
	for id, byTool := range all {
		undesirable := false
		for _, o := range byTool {
			if o.State.Undesirable() {
				undesirable = true
				break
			}
		}
		if !undesirable {
			kept[id] = byTool
		}
	}
	g.Logger.Info().Int("scenarios", len(kept)).Int("dropped", len(all)-len(kept)).Msg("aggregating outcomes")

	oracle, err := g.computeOracle(kept)
	if err != nil {
		return err
	}

	for groupName, tools := range models.ToolGroups() {
		if err := g.generateGroup(groupName, tools, kept, oracle, scenarioByID); err != nil {
			return fmt.Errorf("report group '%s': %w", groupName, err)
		}
	}

	return g.writeDefs(kept, scenarioByID)
}

// computeOracle folds every scenario's per-tool states into the best
// achievable outcome.
func (g *Generator) computeOracle(kept map[string]map[models.Tool]models.Outcome) (map[string]models.State, error) {
	oracle := make(map[string]models.State, len(kept))
	for id, byTool := range kept {
		var states []models.State
		for _, tool := range models.AllTools() {
			if o, ok := byTool[tool]; ok {
				states = append(states, o.State)
			}
		}
		st, err := eval.Oracle(states)
		if err != nil {
			return nil, fmt.Errorf("scenario '%s': %w", id, err)
		}
		oracle[id] = st
	}
	return oracle, nil
}

func (g *Generator) generateGroup(groupName string, tools []models.Tool, kept map[string]map[models.Tool]models.Outcome, oracle map[string]models.State, scenarioByID map[string]*models.Scenario) error {
	tablesDir := filepath.Join(g.OutputDir, "tables", groupName)
	plotsDir := filepath.Join(g.OutputDir, "plots", groupName)
	for _, dir := range []string{tablesDir, plotsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := eval.CheckFingerprintConsistency(kept, tools, g.Logger); err != nil {
		return err
	}

	counts := make([]eval.Counts, len(tools))
	for i, tool := range tools {
		c, err := eval.CountStates(statesOf(kept, tool))
		if err != nil {
			return fmt.Errorf("tool %s: %w", tool, err)
		}
		if c.Total() != len(kept) {
			return fmt.Errorf("tool %s: aggregate counts cover %d of %d scenarios", tool, c.Total(), len(kept))
		}
		counts[i] = c
	}

	oracleStates := make([]models.State, 0, len(oracle))
	for _, st := range oracle {
		oracleStates = append(oracleStates, st)
	}
	oracleCounts, err := eval.CountStates(oracleStates)
	if err != nil {
		return fmt.Errorf("oracle: %w", err)
	}

	rows := make([]Row, len(tools))
	for i, tool := range tools {
		rows[i] = Row{Name: tool.DisplayName(), Counts: counts[i]}
	}
	withOracle := append(append([]Row{}, rows...), Row{Name: oracleRowName, Counts: oracleCounts})

	if err := writeText(filepath.Join(tablesDir, "table_summary.tex"), SummaryTable(rows)); err != nil {
		return err
	}
	if err := writeText(filepath.Join(tablesDir, "table_summary_with_oracle.tex"), SummaryTable(withOracle)); err != nil {
		return err
	}

	if err := g.writeBreakdownTables(tablesDir, tools, kept, oracle, oracleCounts, scenarioByID); err != nil {
		return err
	}
	if err := g.writeRunTimeTable(tablesDir, tools); err != nil {
		return err
	}
	if err := g.writeCostCurves(plotsDir, tools, counts, oracleCounts); err != nil {
		return err
	}
	if err := g.writeFingerprintMatrix(plotsDir, tools, kept); err != nil {
		return err
	}

	g.printSummary(groupName, withOracle)
	return nil
}

// writeBreakdownTables splits counts by merge origin (main branch vs other
// branches) and writes the two breakdown tables.
func (g *Generator) writeBreakdownTables(tablesDir string, tools []models.Tool, kept map[string]map[models.Tool]models.Outcome, oracle map[string]models.State, oracleCounts eval.Counts, scenarioByID map[string]*models.Scenario) error {
	mainIDs := make(map[string]bool, len(kept))
	for id := range kept {
		sc, ok := scenarioByID[id]
		if !ok {
			return fmt.Errorf("outcome references unknown scenario '%s'", id)
		}
		mainIDs[id] = models.IsMainBranch(sc.BranchName)
	}

	split := func(states func(id string) (models.State, bool)) (eval.Counts, eval.Counts, error) {
		var mainStates, featureStates []models.State
		for id := range kept {
			st, ok := states(id)
			if !ok {
				continue
			}
			if mainIDs[id] {
				mainStates = append(mainStates, st)
			} else {
				featureStates = append(featureStates, st)
			}
		}
		mainCounts, err := eval.CountStates(mainStates)
		if err != nil {
			return eval.Counts{}, eval.Counts{}, err
		}
		featureCounts, err := eval.CountStates(featureStates)
		return mainCounts, featureCounts, err
	}

	rows := make([]BreakdownRow, 0, len(tools)+1)
	for _, tool := range tools {
		mainCounts, featureCounts, err := split(func(id string) (models.State, bool) {
			o, ok := kept[id][tool]
			return o.State, ok
		})
		if err != nil {
			return fmt.Errorf("tool %s: %w", tool, err)
		}
		rows = append(rows, BreakdownRow{Name: tool.DisplayName(), Main: mainCounts, Feature: featureCounts})
	}

	if err := writeText(filepath.Join(tablesDir, "table_feature_main_summary.tex"), MainFeatureTable(rows)); err != nil {
		return err
	}

	oracleMain, oracleFeature, err := split(func(id string) (models.State, bool) {
		st, ok := oracle[id]
		return st, ok
	})
	if err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	withOracle := append(append([]BreakdownRow{}, rows...), BreakdownRow{Name: oracleRowName, Main: oracleMain, Feature: oracleFeature})
	return writeText(filepath.Join(tablesDir, "table_main_feature_summary_oracle.tex"), MainFeatureTable(withOracle))
}

func (g *Generator) writeRunTimeTable(tablesDir string, tools []models.Tool) error {
	rows := make([]RunTimeRow, 0, len(tools))
	timed := false
	for _, tool := range tools {
		times, err := g.Store.RunTimes(tool)
		if err != nil {
			return err
		}
		if len(times) > 0 {
			timed = true
		}
		mean, median, max := summarize(times)
		rows = append(rows, RunTimeRow{Name: tool.DisplayName(), Mean: mean, Median: median, Max: max})
	}
	if !timed {
		return nil
	}
	return writeText(filepath.Join(tablesDir, "table_run_time.tex"), RunTimeTable(rows))
}

// writeCostCurves samples every tool's effort-reduction curve over
// [1, kmax], along with the constant-zero manual baseline and the oracle
// curve, as CSV for the plotting pipeline.
func (g *Generator) writeCostCurves(plotsDir string, tools []models.Tool, counts []eval.Counts, oracleCounts eval.Counts) error {
	kmax := eval.MaxCostIntersection(counts)
	if kmax < 1 {
		kmax = 1
	}

	curves := make([][]eval.CurvePoint, len(tools))
	for i := range tools {
		curves[i] = eval.Curve(counts[i], kmax, g.Samples)
	}
	oracleCurve := eval.Curve(oracleCounts, kmax, g.Samples)

	var b strings.Builder
	b.WriteString("cost_factor")
	for _, tool := range tools {
		b.WriteString("," + tool.String())
	}
	b.WriteString(",manual,oracle\n")
	for i := 0; i < g.Samples; i++ {
		fmt.Fprintf(&b, "%g", oracleCurve[i].CostFactor)
		for _, curve := range curves {
			fmt.Fprintf(&b, ",%g", curve[i].EffortReduction)
		}
		fmt.Fprintf(&b, ",0,%g\n", oracleCurve[i].EffortReduction)
	}
	return writeText(filepath.Join(plotsDir, "cost_curves.csv"), b.String())
}

// writeFingerprintMatrix counts, for every tool pair, the scenarios where
// the two tools produced different merge fingerprints and at least one of
// them actually produced a merge (correct or incorrect outcome).
func (g *Generator) writeFingerprintMatrix(plotsDir string, tools []models.Tool, kept map[string]map[models.Tool]models.Outcome) error {
	var b strings.Builder
	b.WriteString("tool")
	for _, tool := range tools {
		b.WriteString("," + tool.String())
	}
	b.WriteString("\n")

	for _, toolA := range tools {
		b.WriteString(toolA.String())
		for _, toolB := range tools {
			n := 0
			for _, byTool := range kept {
				a, okA := byTool[toolA]
				bOut, okB := byTool[toolB]
				if !okA || !okB {
					continue
				}
				if a.Fingerprint == bOut.Fingerprint {
					continue
				}
				if a.State.Correct() || a.State.Incorrect() || bOut.State.Correct() || bOut.State.Incorrect() {
					n++
				}
			}
			fmt.Fprintf(&b, ",%d", n)
		}
		b.WriteString("\n")
	}
	return writeText(filepath.Join(plotsDir, "fingerprint_matrix.csv"), b.String())
}

// printSummary renders the per-group counts as an aligned terminal table.
func (g *Generator) printSummary(groupName string, rows []Row) {
	bold := color.New(color.Bold)
	fmt.Fprintf(g.Out, "\n%s\n", bold.Sprintf("Results (%s)", groupName))
	fmt.Fprintf(g.Out, "%-32s %10s %10s %10s\n", "Merge Tool", "Correct", "Incorrect", "Unhandled")
	for _, row := range rows {
		fmt.Fprintf(g.Out, "%-32s %10d %10d %10d\n", row.Name, row.Counts.Correct, row.Counts.Incorrect, row.Counts.Unhandled)
	}
}

// writeDefs emits the dataset macros referenced by the paper.
func (g *Generator) writeDefs(kept map[string]map[models.Tool]models.Outcome, scenarioByID map[string]*models.Scenario) error {
	repos := make(map[string]bool)
	mainMerges := 0
	for id := range kept {
		sc := scenarioByID[id]
		repos[sc.Repository] = true
		if models.IsMainBranch(sc.BranchName) {
			mainMerges++
		}
	}
	total := len(kept)
	featureMerges := total - mainMerges

	count := func(tool models.Tool, match func(models.State) bool) int {
		n := 0
		for _, byTool := range kept {
			if o, ok := byTool[tool]; ok && match(o.State) {
				n++
			}
		}
		return n
	}

	prefix := camelCase(g.RunName)
	var b strings.Builder
	b.WriteString("% Dataset and sample numbers\n")
	b.WriteString(LatexDef(prefix+"ReposTotal", len(repos)))
	b.WriteString(LatexDef(prefix+"MergesTotal", total))
	b.WriteString(LatexDef(prefix+"MainBranchMerges", mainMerges))
	b.WriteString(LatexDef(prefix+"MainBranchMergesPercent", percent(mainMerges, total)))
	b.WriteString(LatexDef(prefix+"OtherBranchMerges", featureMerges))
	b.WriteString(LatexDef(prefix+"OtherBranchMergesPercent", percent(featureMerges, total)))

	b.WriteString("\n% Results\n")
	sporkCorrect := count(models.Spork, models.State.Correct)
	ortCorrect := count(models.GitMergeOrt, models.State.Correct)
	b.WriteString(LatexDef(prefix+"SporkOverOrtCorrect", sporkCorrect-ortCorrect))
	sporkIncorrect := count(models.Spork, models.State.Incorrect)
	ortIncorrect := count(models.GitMergeOrt, models.State.Incorrect)
	b.WriteString(LatexDef(prefix+"SporkOverOrtIncorrect", sporkIncorrect-ortIncorrect))

	if err := os.MkdirAll(g.OutputDir, 0755); err != nil {
		return err
	}
	return writeText(filepath.Join(g.OutputDir, "defs.tex"), b.String())
}

func statesOf(kept map[string]map[models.Tool]models.Outcome, tool models.Tool) []models.State {
	var states []models.State
	for _, byTool := range kept {
		if o, ok := byTool[tool]; ok {
			states = append(states, o.State)
		}
	}
	return states
}

func writeText(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// camelCase turns a run name like "combined_rerun" into "combinedRerun".
func camelCase(name string) string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
