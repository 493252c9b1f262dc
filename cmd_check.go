package main

import (
	"path/filepath"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/koukyosyumei/pydist/pkg/cliutil"
	"github.com/koukyosyumei/pydist/pkg/project"
	"github.com/koukyosyumei/pydist/pkg/python"
)

func init() {
	var flags struct {
		ProjectDir  string
		Interpreter string
		Compile     bool
	}
	cmd := &cobra.Command{
		Use:   "check [flags]",
		Short: "Validate a project without building anything",
		Long: "Load and validate the project: the pydist.yml metadata, the PEP 440 " +
			"version, the console-script declarations, the requirements file, and " +
			"package discovery.  With --compile, additionally run the host Python's " +
			"compileall over the source tree to catch syntax errors before " +
			"packaging.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			proj, err := project.Load(flags.ProjectDir)
			if err != nil {
				return err
			}

			if flags.Compile {
				srcDir := filepath.Join(proj.RootDir, proj.Config.SrcDir)
				if err := python.CompileAll(ctx, flags.Interpreter, srcDir); err != nil {
					return err
				}
			}

			dlog.Infof(ctx, "ok: %s %s (%d packages, %d requirements)",
				proj.Config.Name, proj.Version.String(), len(proj.Packages), len(proj.Requires))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.ProjectDir, "project-dir", ".",
		"Read the project from `IN_DIRECTORY`")
	cmd.Flags().StringVar(&flags.Interpreter, "interpreter", "python3",
		"The Python interpreter to compile with")
	cmd.Flags().BoolVar(&flags.Compile, "compile", false,
		"Syntax-check the sources with the host Python's compileall")

	argparser.AddCommand(cmd)
}
