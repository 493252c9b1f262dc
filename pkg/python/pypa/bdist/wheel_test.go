// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

package bdist_test

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koukyosyumei/pydist/pkg/fsutil"
	"github.com/koukyosyumei/pydist/pkg/python"
	"github.com/koukyosyumei/pydist/pkg/python/pypa/bdist"
	"github.com/koukyosyumei/pydist/pkg/testutil"
)

func testDistribution(t *testing.T, clampTime time.Time) *bdist.Distribution {
	t.Helper()
	return &bdist.Distribution{
		Name:      "my-tool",
		Version:   version(t, "1.0"),
		Generator: "pydist",
		Metadata: []byte("" +
			"Metadata-Version: 2.1\n" +
			"Name: my-tool\n" +
			"Version: 1.0\n"),
		EntryPoints: []byte("" +
			"[console_scripts]\n" +
			"my-tool = mypkg.cli:main\n" +
			"\n"),
		Files: []fsutil.FileReference{
			fsutil.NewInMemFile("mypkg/__init__.py", 0o644, clampTime, []byte("")),
			fsutil.NewInMemFile("mypkg/cli.py", 0o644, clampTime, []byte("def main():\n    pass\n")),
		},
	}
}

func TestWheelFilename(t *testing.T) {
	t.Parallel()
	dist := testDistribution(t, time.Unix(0, 0))
	filename, err := dist.Filename()
	require.NoError(t, err)
	assert.Equal(t, "my_tool-1.0-py3-none-any.whl", filename)

	infoDir, err := dist.DistInfoDir()
	require.NoError(t, err)
	assert.Equal(t, "my_tool-1.0.dist-info", infoDir)
}

func TestWheelBuild(t *testing.T) {
	t.Parallel()
	clampTime := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	dist := testDistribution(t, clampTime)

	archive, err := dist.Build(clampTime)
	require.NoError(t, err)

	listing, err := testutil.DumpZipListing(archive)
	require.NoError(t, err)
	t.Log("\n" + listing)

	zipReader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)

	// importable files first, .dist-info members physically last
	names := make([]string, 0, len(zipReader.File))
	for _, member := range zipReader.File {
		names = append(names, member.Name)
	}
	assert.Equal(t, []string{
		"mypkg/__init__.py",
		"mypkg/cli.py",
		"my_tool-1.0.dist-info/METADATA",
		"my_tool-1.0.dist-info/RECORD",
		"my_tool-1.0.dist-info/WHEEL",
		"my_tool-1.0.dist-info/entry_points.txt",
	}, names)

	for _, member := range zipReader.File {
		assert.Equal(t, uint16((3<<8)|20), member.CreatorVersion, member.Name)
		attrs := python.ParseZIPExternalAttributes(member.ExternalAttrs)
		assert.Equal(t, "-rw-r--r--", attrs.UNIX.String(), member.Name)
		assert.True(t, clampTime.Equal(member.Modified), member.Name)
	}

	wheelFile, err := testutil.ZipMember(archive, "my_tool-1.0.dist-info/WHEEL")
	require.NoError(t, err)
	testutil.AssertEqualStrings(t, ""+
		"Wheel-Version: 1.0\n"+
		"Generator: pydist\n"+
		"Root-Is-Purelib: true\n"+
		"Tag: py3-none-any\n",
		string(wheelFile))
}

func TestWheelRecord(t *testing.T) {
	t.Parallel()
	clampTime := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	dist := testDistribution(t, clampTime)

	archive, err := dist.Build(clampTime)
	require.NoError(t, err)

	record, err := testutil.ZipMember(archive, "my_tool-1.0.dist-info/RECORD")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(record), "\r\n"), "RECORD rows are CRLF-terminated")

	rows, err := csv.NewReader(bytes.NewReader(record)).ReadAll()
	require.NoError(t, err)

	// every member is listed; RECORD's own row is last, with no digest
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"my_tool-1.0.dist-info/RECORD", "", ""}, rows[len(rows)-1])
	for _, row := range rows[:len(rows)-1] {
		require.Len(t, row, 3)
		content, err := testutil.ZipMember(archive, row[0])
		require.NoError(t, err)

		digest := sha256.Sum256(content)
		assert.Equal(t, "sha256="+base64.RawURLEncoding.EncodeToString(digest[:]), row[1], row[0])
		assert.Equal(t, strconv.Itoa(len(content)), row[2], row[0])
	}
}

func TestWheelShadowedDistInfo(t *testing.T) {
	t.Parallel()
	clampTime := time.Unix(0, 0)
	dist := testDistribution(t, clampTime)
	dist.Files = append(dist.Files,
		fsutil.NewInMemFile("my_tool-1.0.dist-info/METADATA", 0o644, clampTime, []byte("bogus")))

	_, err := dist.Build(clampTime)
	assert.Error(t, err)
}
