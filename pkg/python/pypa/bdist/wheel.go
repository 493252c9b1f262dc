// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

// Package bdist deals with binary distributions ("wheel" files).
//
// https://packaging.python.org/specifications/binary-distribution-format/
package bdist

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/koukyosyumei/pydist/pkg/fsutil"
	"github.com/koukyosyumei/pydist/pkg/python"
	"github.com/koukyosyumei/pydist/pkg/python/pep425"
	"github.com/koukyosyumei/pydist/pkg/python/pep440"
)

// A Distribution describes a wheel to be built.
type Distribution struct {
	Name    string
	Version pep440.Version

	// Tag is the wheel's compatibility tag; the zero value means
	// "py3-none-any".
	Tag pep425.Tag

	// Generator is the "Generator" value for the WHEEL file; the tool name
	// and optionally a version.
	Generator string

	// Metadata is the rendered core-metadata METADATA file.
	Metadata []byte

	// EntryPoints is the rendered entry_points.txt file; empty means the
	// file is omitted.
	EntryPoints []byte

	// Files are the importable files to place at the root of the archive.
	Files []fsutil.FileReference
}

func (dist *Distribution) tag() pep425.Tag {
	if dist.Tag == (pep425.Tag{}) {
		return pep425.Tag{Python: "py3", ABI: "none", Platform: "any"}
	}
	return dist.Tag
}

func (dist *Distribution) escapedName() string {
	return regexp.MustCompile("[-_.]+").ReplaceAllLiteralString(dist.Name, "_")
}

// DistInfoDir returns the name of the wheel's {distribution}-{version}.dist-info directory.
func (dist *Distribution) DistInfoDir() (string, error) {
	ver, err := dist.Version.Normalize()
	if err != nil {
		return "", err
	}
	return dist.escapedName() + "-" + ver.String() + ".dist-info", nil
}

// Filename returns the wheel's filename.
func (dist *Distribution) Filename() (string, error) {
	return GenerateFilename(FileNameData{
		Distribution:     dist.Name,
		Version:          dist.Version,
		CompatibilityTag: dist.tag(),
	})
}

func (dist *Distribution) wheelFile() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Wheel-Version: 1.0\n")
	fmt.Fprintf(&buf, "Generator: %s\n", dist.Generator)
	fmt.Fprintf(&buf, "Root-Is-Purelib: true\n")
	fmt.Fprintf(&buf, "Tag: %s\n", dist.tag())
	return buf.Bytes()
}

// recordFile renders the RECORD manifest: one "path,digest,size" CSV row per
// archive member, CRLF-terminated, with the digest spelled
// "sha256=urlsafe_b64encode_nopad(digest)".  RECORD itself is listed with an
// empty digest and size, since it cannot contain its own hash.
func recordFile(recordName string, vfs map[string]fsutil.FileReference) ([]byte, error) {
	files := make([]fsutil.FileReference, 0, len(vfs))
	for _, file := range vfs {
		files = append(files, file)
	}
	fsutil.SortFileReferences(files)

	var buf bytes.Buffer
	table := csv.NewWriter(&buf)
	table.UseCRLF = true
	for _, file := range files {
		fh, err := file.Open()
		if err != nil {
			return nil, err
		}
		hasher := sha256.New()
		size, err := io.Copy(hasher, fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		if err := fh.Close(); err != nil {
			return nil, err
		}
		digest := "sha256=" + base64.RawURLEncoding.EncodeToString(hasher.Sum(nil))
		if err := table.Write([]string{file.FullName(), digest, strconv.FormatInt(size, 10)}); err != nil {
			return nil, err
		}
	}
	if err := table.Write([]string{recordName, "", ""}); err != nil {
		return nil, err
	}
	table.Flush()
	if err := table.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// VFS assembles the wheel's contents as a virtual filesystem: the
// distribution's files at the root, plus the generated .dist-info members.
// Timestamps are clamped to clampTime.
func (dist *Distribution) VFS(clampTime time.Time) (map[string]fsutil.FileReference, error) {
	infoDir, err := dist.DistInfoDir()
	if err != nil {
		return nil, err
	}

	vfs := make(map[string]fsutil.FileReference, len(dist.Files)+4)
	for _, file := range dist.Files {
		name := path.Clean(file.FullName())
		if strings.HasPrefix(name, infoDir+"/") {
			return nil, fmt.Errorf("file would shadow %s: %q", infoDir, name)
		}
		vfs[name] = file
	}

	vfs[path.Join(infoDir, "METADATA")] = fsutil.NewInMemFile(
		path.Join(infoDir, "METADATA"), 0o644, clampTime, dist.Metadata)
	vfs[path.Join(infoDir, "WHEEL")] = fsutil.NewInMemFile(
		path.Join(infoDir, "WHEEL"), 0o644, clampTime, dist.wheelFile())
	if len(dist.EntryPoints) > 0 {
		vfs[path.Join(infoDir, "entry_points.txt")] = fsutil.NewInMemFile(
			path.Join(infoDir, "entry_points.txt"), 0o644, clampTime, dist.EntryPoints)
	}

	recordName := path.Join(infoDir, "RECORD")
	record, err := recordFile(recordName, vfs)
	if err != nil {
		return nil, err
	}
	vfs[recordName] = fsutil.NewInMemFile(recordName, 0o644, clampTime, record)

	return vfs, nil
}

// Build serializes the wheel to a ZIP archive.  The .dist-info members are
// placed physically at the end of the archive, as the format recommends, and
// all timestamps are clamped to clampTime.
func (dist *Distribution) Build(clampTime time.Time) ([]byte, error) {
	infoDir, err := dist.DistInfoDir()
	if err != nil {
		return nil, err
	}
	vfs, err := dist.VFS(clampTime)
	if err != nil {
		return nil, err
	}

	files := make([]fsutil.FileReference, 0, len(vfs))
	for _, file := range vfs {
		files = append(files, file)
	}
	fsutil.SortFileReferences(files)
	// dist-info last
	var main, info []fsutil.FileReference //nolint:prealloc // partitioning
	for _, file := range files {
		if strings.HasPrefix(file.FullName(), infoDir+"/") {
			info = append(info, file)
			continue
		}
		main = append(main, file)
	}

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)
	for _, file := range append(main, info...) {
		modTime := file.ModTime()
		if modTime.After(clampTime) {
			modTime = clampTime
		}
		header := &zip.FileHeader{
			Name:     file.FullName(),
			Method:   zip.Deflate,
			Modified: modTime,
		}
		// "version made by: UNIX", so that the UNIX mode bits in the
		// external attributes are honored
		header.CreatorVersion = (3 << 8) | 20
		header.ExternalAttrs = python.ZIPExternalAttributes{
			UNIX: python.ModeFromGo(file.Mode()),
		}.Raw()

		w, err := zipWriter.CreateHeader(header)
		if err != nil {
			return nil, err
		}
		fh, err := file.Open()
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(w, fh); err != nil {
			_ = fh.Close()
			return nil, err
		}
		if err := fh.Close(); err != nil {
			return nil, err
		}
	}
	if err := zipWriter.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
