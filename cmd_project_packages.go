package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/koukyosyumei/pydist/pkg/cliutil"
	"github.com/koukyosyumei/pydist/pkg/project"
)

func init() {
	var srcDir string
	cmd := &cobra.Command{
		Use:   "packages [flags]",
		Short: "List the importable packages under a source root",
		Long: "Discover the importable packages beneath a source root directory, the " +
			"way setuptools' find_packages() does: a directory is a package if it " +
			"and every ancestor up to the root contain an __init__.py file.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			pkgs, err := project.FindPackages(srcDir)
			if err != nil {
				return err
			}
			for _, pkg := range pkgs {
				fmt.Fprintln(os.Stdout, pkg)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&srcDir, "src-dir", "src",
		"Discover packages under `IN_DIRECTORY`")

	argparserProject.AddCommand(cmd)
}
