package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/koukyosyumei/pydist/pkg/cliutil"
)

var argparserDist = &cobra.Command{
	Use:   "dist {[flags]|SUBCOMMAND...}",
	Short: "Build distributable artifacts",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserDist)
}

// Flags shared by the `dist` subcommands.

func distProjectDirFlag(flags *pflag.FlagSet) *string {
	return flags.String("project-dir", ".",
		"Read the project from `IN_DIRECTORY`")
}

func distDirFlag(flags *pflag.FlagSet) *string {
	return flags.String("dist-dir", "dist",
		"Write the built artifact in to `OUT_DIRECTORY`")
}
