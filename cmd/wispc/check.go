package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wisp-lang/wispc/internal/pipeline"
	"github.com/wisp-lang/wispc/internal/scenarios"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Lower every built-in scenario to MIR and borrow-check it",
	Long: "check runs the full lowering and borrow-check pipeline over every program in\n" +
		"internal/scenarios, standing in for a real project's source tree until a\n" +
		"parser and name resolver exist upstream of this compiler core.",
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	jobs, maxDiagnostics, err := pipelineFlags(cmd)
	if err != nil {
		return err
	}

	okColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed, color.Bold)
	failed := false

	for _, s := range scenarios.Registry {
		prog := s.Build()
		results, err := pipeline.CheckProgram(cmd.Context(), prog, jobs)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		bag := pipeline.Diagnostics(results, prog.Defs, maxDiagnostics)
		if bag.Len() == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okColor.Sprint("ok"), s.Name)
			continue
		}
		failed = true
		for _, d := range bag.Items() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", errColor.Sprint(d.Code.ID()), s.Name, d.Message)
		}
	}
	if failed {
		return fmt.Errorf("borrow checking failed")
	}
	return nil
}
