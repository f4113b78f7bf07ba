package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kilupskalvis/mergebench/internal/models"
)

var (
	compareToolA string
	compareToolB string
)

var compareCmd = &cobra.Command{
	Use:   "compare <scenario-id>",
	Short: "Evaluate two merge tools side by side on one scenario",
	Long: `Replay a merge scenario with two competing tools and diff both tools'
output for every file the first tool reports as conflicting. The base
version is located via 'git merge-base' of the two sides.

Examples:
  mergebench compare 12-42 --tool-a gitmerge_ort --tool-b spork`,
	Args: cobra.ExactArgs(1),
	Run:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareToolA, "tool-a", "", "First merge tool (required)")
	compareCmd.Flags().StringVar(&compareToolB, "tool-b", "", "Second merge tool (required)")
	compareCmd.MarkFlagRequired("tool-a")
	compareCmd.MarkFlagRequired("tool-b")
}

func runCompare(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext()
	defer c.Close()

	toolA, ok := models.ParseTool(compareToolA)
	if !ok {
		exitError("unknown merge tool '%s'", compareToolA)
	}
	toolB, ok := models.ParseTool(compareToolB)
	if !ok {
		exitError("unknown merge tool '%s'", compareToolB)
	}
	if toolA == toolB {
		exitError("cannot compare a tool against itself")
	}

	sc, err := c.Store.GetScenario(args[0])
	if err != nil {
		exitError("%v", err)
	}

	records, err := newPipeline(c).ComparePair(ctx, toolA, toolB, sc)
	if err != nil {
		exitError("%v", err)
	}

	printRecords(records)
}
