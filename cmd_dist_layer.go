package main

import (
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/koukyosyumei/pydist/pkg/cliutil"
	"github.com/koukyosyumei/pydist/pkg/fsutil"
	"github.com/koukyosyumei/pydist/pkg/project"
	"github.com/koukyosyumei/pydist/pkg/reproducible"
)

func init() {
	var sitePackages string
	cmd := &cobra.Command{
		Use:   "layer [flags] >OUT_LAYERFILE",
		Short: "Stage the project in to a container-image layer",
		Long: "Build the project's wheel contents (sources plus the .dist-info " +
			"directory), stage them under a site-packages prefix, and write the " +
			"result to stdout as an uncompressed OCI layer tarball.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := cmd.Flag("project-dir").Value.String()

			proj, err := project.Load(projectDir)
			if err != nil {
				return err
			}
			dist, err := proj.Distribution()
			if err != nil {
				return err
			}
			clampTime := reproducible.Now()
			vfs, err := dist.VFS(clampTime)
			if err != nil {
				return err
			}

			prefix := path.Clean(sitePackages)
			refs := make([]fsutil.FileReference, 0, len(vfs))
			for _, file := range vfs {
				refs = append(refs, fsutil.WithPrefix(prefix, file))
			}

			layer, err := fsutil.LayerFromFileReferences(refs, clampTime)
			if err != nil {
				return err
			}
			if err := fsutil.WriteLayer(layer, os.Stdout); err != nil {
				return err
			}
			return nil
		},
	}
	distProjectDirFlag(cmd.Flags())
	cmd.Flags().StringVar(&sitePackages, "site-packages", "usr/lib/python3/site-packages",
		"Stage the project under `DIRECTORY` inside the layer")

	argparserDist.AddCommand(cmd)
}
