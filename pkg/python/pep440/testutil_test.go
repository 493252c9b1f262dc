// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

package pep440_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/koukyosyumei/pydist/pkg/python/pep440"
)

func intPtr(x int) *int {
	return &x
}

func mustParseVersion(t *testing.T, str string) pep440.Version {
	t.Helper()
	ver, err := pep440.ParseVersion(str)
	require.NoError(t, err)
	require.NotNil(t, ver)
	return *ver
}
