// Package main implements the wispc CLI.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wisp-lang/wispc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "wispc",
	Short: "MIR lowering and borrow-checking core for the wisp language",
	Long: "wispc lowers a resolved HIR program to MIR and borrow-checks it, standing in\n" +
		"for the backend half of a pipeline whose front end (parsing, name\n" +
		"resolution, type checking) is a fixed external contract.",
	PersistentPreRunE: applyColorMode,
}

func main() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().Int("jobs", 0, "maximum concurrent function checks (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 200, "maximum number of diagnostics to collect per run")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColorMode(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	}
	return nil
}

// pipelineFlags reads the jobs/max-diagnostics persistent flags a cobra
// subcommand inherits from the root command.
func pipelineFlags(cmd *cobra.Command) (jobs, maxDiagnostics int, err error) {
	jobs, err = cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return 0, 0, err
	}
	maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, 0, err
	}
	return jobs, maxDiagnostics, nil
}
