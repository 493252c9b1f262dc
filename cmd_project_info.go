package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/koukyosyumei/pydist/pkg/cliutil"
	"github.com/koukyosyumei/pydist/pkg/project"
)

func init() {
	var projectDir string
	cmd := &cobra.Command{
		Use:   "info [flags] >METADATA.yml",
		Short: "Dump the resolved package-metadata record",
		Long: "Resolve the full package-metadata record for a project (static fields " +
			"from pydist.yml, the dependency list read from the requirements file, " +
			"and the set of discovered packages), and dump it to stdout.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			proj, err := project.Load(projectDir)
			if err != nil {
				return err
			}

			record := struct {
				Name            string            `yaml:"name"`
				Version         string            `yaml:"version"`
				Description     string            `yaml:"description,omitempty"`
				Author          string            `yaml:"author,omitempty"`
				AuthorEmail     string            `yaml:"author_email,omitempty"`
				License         string            `yaml:"license,omitempty"`
				URL             string            `yaml:"url,omitempty"`
				InstallRequires []string          `yaml:"install_requires"`
				PackageDir      map[string]string `yaml:"package_dir"`
				Packages        []string          `yaml:"packages"`
				ConsoleScripts  map[string]string `yaml:"console_scripts,omitempty"`
			}{
				Name:            proj.Config.Name,
				Version:         proj.Version.String(),
				Description:     proj.Config.Description,
				Author:          proj.Config.Author,
				AuthorEmail:     proj.Config.AuthorEmail,
				License:         proj.Config.License,
				URL:             proj.Config.URL,
				InstallRequires: proj.Requires,
				PackageDir:      map[string]string{"": proj.Config.SrcDir},
				Packages:        proj.Packages,
				ConsoleScripts:  proj.Config.ConsoleScripts,
			}

			bs, err := yaml.Marshal(record)
			if err != nil {
				return err
			}
			if _, err := os.Stdout.Write(bs); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&projectDir, "project-dir", ".",
		"Read the project from `IN_DIRECTORY`")

	argparserProject.AddCommand(cmd)
}
