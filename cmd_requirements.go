package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/koukyosyumei/pydist/pkg/cliutil"
	"github.com/koukyosyumei/pydist/pkg/python/pip/requirements"
)

func init() {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "requirements [flags] [IN_REQUIREMENTS_FILE]",
		Short: "Print the dependency list read from a requirements file",
		Long: "Read a requirements file the way a setup.py's read_requirements() " +
			"would: one requirement specifier per line, in order, with only the " +
			"trailing line terminator removed.  Blank lines are preserved as empty " +
			"entries.  If the file cannot be opened, the build aborts; no partial " +
			"list is produced." +
			"\n\n" +
			"IN_REQUIREMENTS_FILE defaults to ./requirements.txt.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqsPath := requirements.DefaultFile
			if len(args) == 1 {
				reqsPath = args[0]
			}

			reqs, err := requirements.ReadFile(reqsPath)
			if err != nil {
				return err
			}

			if asYAML {
				bs, err := yaml.Marshal(reqs)
				if err != nil {
					return err
				}
				if _, err := os.Stdout.Write(bs); err != nil {
					return err
				}
				return nil
			}
			for _, req := range reqs {
				fmt.Fprintln(os.Stdout, req)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false,
		"Dump the list as a YAML sequence instead of raw lines")

	argparser.AddCommand(cmd)
}
