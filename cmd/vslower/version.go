package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// buildVersion is overridden at link time with -ldflags
// "-X main.buildVersion=...", matching cmd/surge's version.go pattern.
var buildVersion = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the vslower build version",
	RunE: func(cmd *cobra.Command, args []string) error {
		useColor, err := resolveColor(cmd)
		if err != nil {
			return err
		}
		prev := color.NoColor
		defer func() { color.NoColor = prev }()
		color.NoColor = !useColor

		tag := color.New(color.FgCyan, color.Bold)
		fmt.Fprintf(cmd.OutOrStdout(), "vslower %s\n", tag.Sprint(buildVersion))
		return nil
	},
}
