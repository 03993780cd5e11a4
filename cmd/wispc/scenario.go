package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wisp-lang/wispc/internal/borrowck"
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/scenarios"
)

var scenarioListFlag bool

func init() {
	scenarioCmd.Flags().BoolVar(&scenarioListFlag, "list", false, "list available scenarios and exit")
}

var scenarioCmd = &cobra.Command{
	Use:   "scenario [name]",
	Short: "Run one of the borrow checker's named example programs",
	Long: "scenario builds and borrow-checks one of the example programs the borrow\n" +
		"checker's own test suite is built from, so its behavior on a known-good or\n" +
		"known-bad program can be inspected by hand.",
	Args: cobra.MaximumNArgs(1),
	RunE: runScenario,
}

func runScenario(cmd *cobra.Command, args []string) error {
	if scenarioListFlag || len(args) == 0 {
		for _, s := range scenarios.Registry {
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", s.Name, s.Description)
		}
		return nil
	}

	s, err := scenarios.Lookup(args[0])
	if err != nil {
		return err
	}
	prog := s.Build()
	mp := mir.LowerProgram(prog)
	fn := mp.Funcs[0]
	errs := borrowck.Check(fn, prog.Defs)

	okColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed, color.Bold)

	if len(errs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", s.Name, okColor.Sprint("no borrow errors"))
		return nil
	}
	for _, e := range errs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", s.Name, errColor.Sprint(e.Kind.String()), e.Message(fn, prog.Defs))
	}
	return nil
}
