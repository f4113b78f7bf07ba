package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilupskalvis/mergebench/internal/config"
)

var initToolsDir string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a mergebench workspace in the current directory",
	Long: `Create a .mergebench directory with the default configuration and an
empty results database.

Examples:
  mergebench init                                # defaults
  mergebench init --tools-dir ./merge_tools      # custom tool script dir`,
	Args: cobra.NoArgs,
	Run:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initToolsDir, "tools-dir", "merge_tools", "Directory holding the merge tool scripts")
}

func runInit(cmd *cobra.Command, args []string) {
	cfg, err := config.Initialize(initToolsDir)
	if err != nil {
		exitError("%v", err)
	}

	green := color.New(color.FgGreen)
	green.Println("Initialized mergebench workspace")
	fmt.Printf("  config:     %s\n", cfg.Path())
	fmt.Printf("  tools:      %s\n", cfg.ToolsDir)
	fmt.Printf("  workspaces: %s\n", cfg.WorkspacesDir)
	fmt.Printf("  output:     %s\n", cfg.OutputDir)
}
