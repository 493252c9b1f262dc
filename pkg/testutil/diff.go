// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

// Package testutil has helpers for inspecting built distribution archives in
// tests.
package testutil

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
	"testing"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

//nolint:gochecknoglobals // Would be 'const'.
var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// DumpTarGz renders a gzip-compressed tarball (an sdist) as a string: each
// member's header and content, in archive order.
func DumpTarGz(archive []byte) (string, error) {
	gzReader, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return "", err
	}

	ret := new(strings.Builder)
	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
		fmt.Fprintf(ret, "tarHeader = %s", spewConfig.Sdump(header))
		content, err := io.ReadAll(tarReader)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(ret, "tarContent =%s", spewConfig.Sdump(content))
	}
	if err := gzReader.Close(); err != nil {
		return "", err
	}
	return ret.String(), nil
}

// DumpZipListing renders a ZIP archive (a wheel) as an ls-style listing, in
// archive order.
func DumpZipListing(archive []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return "", err
	}

	ret := new(strings.Builder)
	table := tabwriter.NewWriter(
		ret, // output
		0,   // minwidth
		1,   // tabwidth
		1,   // padding
		' ', // padchar
		0)   // flags
	for _, file := range zipReader.File {
		if _, err := fmt.Fprintln(table, strings.Join([]string{
			"",
			file.Mode().String(),
			fmt.Sprintf("% 10d", file.UncompressedSize64),
			file.Name,
		}, "\t")); err != nil {
			return "", err
		}
	}
	if err := table.Flush(); err != nil {
		return "", err
	}
	return ret.String(), nil
}

// ZipMember returns the content of the named member of a ZIP archive.
func ZipMember(archive []byte, name string) ([]byte, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, err
	}
	fh, err := zipReader.Open(name)
	if err != nil {
		return nil, err
	}
	content, err := io.ReadAll(fh)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	if err := fh.Close(); err != nil {
		return nil, err
	}
	return content, nil
}

// AssertEqualStrings compares two multi-line strings, reporting a unified
// diff on mismatch.
func AssertEqualStrings(t *testing.T, exp, act string) bool {
	t.Helper()
	if exp == act {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		FromDate: "",
		ToFile:   "Actual",
		ToDate:   "",
		Context:  1,
	})
	t.Errorf("diff:\n%s", diff)
	return false
}
