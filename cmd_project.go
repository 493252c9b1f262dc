package main

import (
	"github.com/spf13/cobra"

	"github.com/koukyosyumei/pydist/pkg/cliutil"
)

var argparserProject = &cobra.Command{
	Use:   "project {[flags]|SUBCOMMAND...}",
	Short: "Inspect a project's packaging metadata",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserProject)
}
