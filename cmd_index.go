package main

import (
	"github.com/spf13/cobra"

	"github.com/koukyosyumei/pydist/pkg/cliutil"
)

var argparserIndex = &cobra.Command{
	Use:   "index {[flags]|SUBCOMMAND...}",
	Short: "Interact with a Python package index",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserIndex)
}
