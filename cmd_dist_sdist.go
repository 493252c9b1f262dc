package main

import (
	"os"
	"path/filepath"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/koukyosyumei/pydist/pkg/cliutil"
	"github.com/koukyosyumei/pydist/pkg/project"
	"github.com/koukyosyumei/pydist/pkg/reproducible"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sdist [flags]",
		Short: "Build a source distribution",
		Long: "Build a {name}-{version}.tar.gz source distribution containing " +
			"PKG-INFO, the project file, the requirements file, and the sources of " +
			"every discovered package.  Timestamps are clamped to " +
			"SOURCE_DATE_EPOCH when it is set, so builds are reproducible.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			projectDir := cmd.Flag("project-dir").Value.String()
			distDir := cmd.Flag("dist-dir").Value.String()

			proj, err := project.Load(projectDir)
			if err != nil {
				return err
			}
			dist, err := proj.SourceDist()
			if err != nil {
				return err
			}
			content, err := dist.Build(reproducible.Now())
			if err != nil {
				return err
			}

			if err := os.MkdirAll(distDir, 0o777); err != nil {
				return err
			}
			outPath := filepath.Join(distDir, dist.Filename())
			if err := os.WriteFile(outPath, content, 0o666); err != nil {
				return err
			}
			dlog.Infof(ctx, "wrote %s", outPath)
			return nil
		},
	}
	distProjectDirFlag(cmd.Flags())
	distDirFlag(cmd.Flags())

	argparserDist.AddCommand(cmd)
}
