package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wisp-lang/wispc/internal/version"
)

var versionTaglineColor = color.New(color.FgWhite, color.Italic)
var unknownColor = color.New(color.FgMagenta)

const versionTagline = "lowers what the front end already resolved"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show wispc build fingerprints",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "wispc %s — %s\n", version.String(), versionTaglineColor.Sprint(versionTagline))
		fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", valueOrUnknown(version.GitCommit))
		fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", valueOrUnknown(version.BuildDate))
		return nil
	},
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return unknownColor.Sprint("unknown")
	}
	return s
}
