package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilupskalvis/mergebench/internal/eval"
	"github.com/kilupskalvis/mergebench/internal/gitrepo"
	"github.com/kilupskalvis/mergebench/internal/models"
)

var analyzeTool string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <scenario-id>",
	Short: "Replay one merge scenario with a tool and diff its conflicts",
	Long: `Reproduce the merge of a scenario with the given tool, extract the files
it reports as conflicting, and write a three-way diff (base, tool output,
programmer merge) per conflicting file under the output directory.

Examples:
  mergebench analyze 12-42 --tool gitmerge_ort
  mergebench analyze 12-42 --tool spork -v`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTool, "tool", "", "Merge tool to evaluate (required)")
	analyzeCmd.MarkFlagRequired("tool")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext()
	defer c.Close()

	tool, ok := models.ParseTool(analyzeTool)
	if !ok {
		exitError("unknown merge tool '%s'", analyzeTool)
	}

	sc, err := c.Store.GetScenario(args[0])
	if err != nil {
		exitError("%v", err)
	}

	records, err := newPipeline(c).Analyze(ctx, tool, sc)
	if err != nil {
		exitError("%v", err)
	}

	printRecords(records)
}

// newPipeline wires the evaluation pipeline from the loaded configuration.
func newPipeline(c *cmdContext) *eval.Pipeline {
	runner := eval.NewRunner()
	manager := &gitrepo.Manager{
		Root:           c.Config.WorkspacesDir,
		CloneURLPrefix: c.Config.CloneURLPrefix,
		Logger:         c.Logger,
	}
	return &eval.Pipeline{
		Workspaces: eval.NewGitWorkspaces(manager),
		Invoker:    &eval.Invoker{ToolsDir: c.Config.ToolsDir, Runner: runner},
		Comparator: &eval.Comparator{Runner: runner, Logger: c.Logger},
		Writer:     &eval.Writer{OutputRoot: c.Config.OutputDir},
		Logger:     c.Logger,
	}
}

func printRecords(records []*models.DiffRecord) {
	if len(records) == 0 {
		color.New(color.FgGreen).Println("Clean merge: no conflicting files")
		return
	}

	yellow := color.New(color.FgYellow)
	yellow.Printf("%d conflicting file(s) diffed\n", len(records))
	for _, rec := range records {
		mode := ""
		if rec.Mode == models.DiffTwoWay {
			mode = " (no base version, two-way diff)"
		}
		fmt.Printf("  %s: %s%s\n", rec.Tool, rec.File, mode)
	}
}
