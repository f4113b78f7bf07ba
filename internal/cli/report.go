package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilupskalvis/mergebench/internal/report"
)

var reportRunName string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate aggregate tables, cost curves and the oracle baseline",
	Long: `Aggregate the imported outcomes into LaTeX table fragments, plot-ready
CSV data and macro definitions under the output directory. The oracle
baseline folds every scenario's outcomes into the best achievable result;
a fingerprint consistency violation or an invalid outcome state aborts the
whole run.`,
	Args: cobra.NoArgs,
	Run:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportRunName, "run-name", "combined", "Macro name prefix used in defs.tex")
}

func runReport(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	gen := &report.Generator{
		Store:     c.Store,
		OutputDir: c.Config.OutputDir,
		RunName:   reportRunName,
		Logger:    c.Logger,
	}
	if err := gen.Run(); err != nil {
		exitError("%v", err)
	}

	color.New(color.FgGreen).Printf("Report written to %s\n", c.Config.OutputDir)
}
