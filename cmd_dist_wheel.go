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
		Use:   "wheel [flags]",
		Short: "Build a pure-Python wheel",
		Long: "Build a {name}-{version}-py3-none-any.whl binary distribution: the " +
			"package sources at the archive root, plus a .dist-info directory with " +
			"METADATA, WHEEL, entry_points.txt (when console scripts are declared), " +
			"and a RECORD manifest with sha256 digests.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			projectDir := cmd.Flag("project-dir").Value.String()
			distDir := cmd.Flag("dist-dir").Value.String()

			proj, err := project.Load(projectDir)
			if err != nil {
				return err
			}
			dist, err := proj.Distribution()
			if err != nil {
				return err
			}
			filename, err := dist.Filename()
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
			outPath := filepath.Join(distDir, filename)
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
