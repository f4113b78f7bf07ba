package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <result.csv>",
	Short: "Import a result table into the results store",
	Long: `Load the test harness's result table (one row per merge scenario, one
outcome and fingerprint column per merge tool) into the results database.
Re-importing replaces rows with the same scenario ID.`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func runImport(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	f, err := os.Open(args[0])
	if err != nil {
		exitError("failed to open result table: %v", err)
	}
	defer f.Close()

	scenarios, outcomes, err := c.Store.ImportResultCSV(f)
	if err != nil {
		exitError("%v", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("Imported %d scenarios (%d outcomes)\n", scenarios, outcomes)
}
