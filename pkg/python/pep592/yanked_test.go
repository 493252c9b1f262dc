package pep592_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koukyosyumei/pydist/pkg/python/pep440"
	"github.com/koukyosyumei/pydist/pkg/python/pep503"
	"github.com/koukyosyumei/pydist/pkg/python/pep592"
)

func fileLink(text string, yanked bool) pep503.FileLink {
	link := pep503.FileLink{}
	link.Text = text
	link.DataAttrs = map[string]string{}
	if yanked {
		link.DataAttrs["data-yanked"] = ""
	}
	return link
}

func version(t *testing.T, str string) pep440.Version {
	t.Helper()
	ver, err := pep440.ParseVersion(str)
	require.NoError(t, err)
	return *ver
}

func TestIsYanked(t *testing.T) {
	t.Parallel()
	assert.False(t, pep592.IsYanked(fileLink("my_tool-1.0-py3-none-any.whl", false)))
	assert.True(t, pep592.IsYanked(fileLink("my_tool-1.1-py3-none-any.whl", true)))
}

func TestExcludeYanked(t *testing.T) {
	t.Parallel()
	behavior := pep592.ExcludeYanked([]pep503.FileLink{
		fileLink("my_tool-1.0-py3-none-any.whl", false),
		fileLink("my_tool-1.1-py3-none-any.whl", true),
		fileLink("not-a-wheel.tar.gz", true), // unparsable filenames are ignored
	})
	assert.True(t, behavior.Allow(version(t, "1.0")))
	assert.False(t, behavior.Allow(version(t, "1.1")))
	assert.True(t, behavior.Allow(version(t, "2.0")))
}
