package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/koukyosyumei/pydist/pkg/cliutil"
	"github.com/koukyosyumei/pydist/pkg/python/pep440"
	"github.com/koukyosyumei/pydist/pkg/python/pep503"
	"github.com/koukyosyumei/pydist/pkg/python/pep592"
	"github.com/koukyosyumei/pydist/pkg/python/pip/requirements"
	"github.com/koukyosyumei/pydist/pkg/python/pypa/bdist"
	"github.com/koukyosyumei/pydist/pkg/python/pypa/simple_repo_api"
)

// sdistExtensions are the archive suffixes that a source distribution on an index may carry.
var sdistExtensions = []string{".tar.gz", ".tgz", ".tar.bz2", ".zip"}

// linkVersions extracts the distribution versions advertised by a package index page,
// from both wheel filenames and sdist filenames.  Files for other distributions (the
// index should not serve any) and unparsable filenames are skipped.
func linkVersions(distName string, links []pep503.FileLink) []pep440.Version {
	want := pep503.Normalize(distName)
	seen := make(map[string]struct{})
	var ret []pep440.Version
	add := func(name string, ver pep440.Version) {
		if pep503.Normalize(name) != want {
			return
		}
		if _, dup := seen[ver.String()]; dup {
			return
		}
		seen[ver.String()] = struct{}{}
		ret = append(ret, ver)
	}
	for _, link := range links {
		if strings.HasSuffix(link.Text, ".whl") {
			info, err := bdist.ParseFilename(link.Text)
			if err != nil {
				continue
			}
			add(info.Distribution, info.Version)
			continue
		}
		for _, ext := range sdistExtensions {
			base := strings.TrimSuffix(link.Text, ext)
			if base == link.Text {
				continue
			}
			sep := strings.LastIndex(base, "-")
			if sep < 0 {
				break
			}
			ver, err := pep440.ParseVersion(base[sep+1:])
			if err != nil {
				break
			}
			add(base[:sep], *ver)
			break
		}
	}
	return ret
}

func init() {
	var flags struct {
		ReqsFile    string
		IndexServer string
		Python      string
		Pre         bool
	}
	cmd := &cobra.Command{
		Use:   "check [flags]",
		Short: "Check that every requirement is available on an index",
		Long: "For every requirement in the requirements file, query the package " +
			"index for the distribution's files and report the best version that " +
			"satisfies the requirement's version specifier.  Yanked files are " +
			"skipped, and pre-releases are only considered with --pre.  This is an " +
			"availability check, not a dependency resolver: transitive dependencies " +
			"are not examined." +
			"\n\n" +
			"LIMITATION: environment markers are not evaluated; a requirement with " +
			"a marker is checked as if the marker were true.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			lines, err := requirements.ReadFile(flags.ReqsFile)
			if err != nil {
				return err
			}
			reqs, err := requirements.ParseLines(lines)
			if err != nil {
				return err
			}

			client := simple_repo_api.NewClient()
			client.BaseURL = flags.IndexServer
			if flags.Python != "" {
				pyVer, err := pep440.ParseVersion(flags.Python)
				if err != nil {
					return err
				}
				client.Python = pyVer
			}

			unsatisfied := 0
			for _, req := range reqs {
				if req.URL != "" {
					dlog.Infof(ctx, "%s: direct reference %q, not checked against the index",
						req.Name, req.URL)
					continue
				}
				links, err := client.ListPackageFiles(ctx, req.Name)
				if err != nil {
					return err
				}

				excluder := pep440.MultiExcluder{pep592.ExcludeYanked(links)}
				if !flags.Pre {
					excluder = append(excluder, pep440.ExcludePreReleases{})
				}
				best := req.Specifier.Select(linkVersions(req.Name, links), excluder)
				if best == nil {
					dlog.Errorf(ctx, "%s: no version on the index satisfies %q",
						req.Name, req.String())
					unsatisfied++
					continue
				}
				fmt.Fprintf(os.Stdout, "%s==%s\n", pep503.Normalize(req.Name), best)
			}
			if unsatisfied > 0 {
				return fmt.Errorf("%d requirement(s) cannot be satisfied by the index", unsatisfied)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.ReqsFile, "requirements", requirements.DefaultFile,
		"Read the dependency list from `IN_REQUIREMENTS_FILE`")
	cmd.Flags().StringVar(&flags.IndexServer, "index-server", pep503.PyPIBaseURL,
		"Query the index rooted at `URL`")
	cmd.Flags().StringVar(&flags.Python, "python", "",
		"Only consider files whose Requires-Python accepts `VERSION`")
	cmd.Flags().BoolVar(&flags.Pre, "pre", false,
		"Consider pre-release and development versions")

	argparserIndex.AddCommand(cmd)
}
