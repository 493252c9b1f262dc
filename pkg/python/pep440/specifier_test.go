// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

package pep440_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/koukyosyumei/pydist/pkg/python/pep440"
	"github.com/koukyosyumei/pydist/pkg/testutil"
)

func TestParseSpecifier(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		InStr  string
		OutVal pep440.Specifier
		OutErr string
	}{
		"empty":       {"", pep440.Specifier{}, ""},
		"whitespace":  {"  ", pep440.Specifier{}, ""},
		"emptycommas": {", ,", pep440.Specifier{}, ""},
		"eq":          {"==1.0", pep440.Specifier{{CmpOp: pep440.CmpOpStrictMatch, Version: mustParseVersion(t, "1.0")}}, ""},
		"missing-op":  {"1.0", nil, `pep440.ParseSpecifier: invalid comparison operator: "1.0"`},
		"1seg-ok":     {"==1", pep440.Specifier{{CmpOp: pep440.CmpOpStrictMatch, Version: mustParseVersion(t, "1")}}, ""},
		"arbitrary":   {"=== 1.0+downstream1", pep440.Specifier{{CmpOp: pep440.CmpOpArbitrary, Arbitrary: "1.0+downstream1"}}, ""},
		"arbitrary-empty": {"===", nil, `pep440.ParseSpecifier: expected a version after ===`},
		"1seg-bad":    {"~=1", nil, `pep440.ParseSpecifier: at least 2 release segments required in ~= specifier clauses`},
		"bad-dev":     {"==1.0dev.*", nil, `pep440.ParseSpecifier: dev-part not permitted in prefix == specifier clauses`},
		"bad-loc":     {"==1.0+loc.*", nil, `pep440.ParseSpecifier: local-part not permitted in prefix == specifier clauses`},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			val, err := pep440.ParseSpecifier(tc.InStr)
			assert.Equal(t, tc.OutVal, val)
			if tc.OutErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.OutErr)
			}
		})
	}
}

func TestSpecifierString(t *testing.T) {
	t.Parallel()
	testcases := []string{
		"~=2.2",
		"==1.1.post1",
		"==1.1.*",
		"!=1.1.*",
		"<=2.0,>=1.0",
		"<2.0",
		">1.7",
		"===1.0+downstream1",
	}
	for _, tcStr := range testcases {
		tcStr := tcStr
		t.Run(tcStr, func(t *testing.T) {
			t.Parallel()
			spec, err := pep440.ParseSpecifier(tcStr)
			require.NoError(t, err)
			assert.Equal(t, tcStr, spec.String())
		})
	}
}

func TestEquivalentSpecifiers(t *testing.T) {
	t.Parallel()
	pairs := [][2]string{
		{"~= 2.2", ">= 2.2, == 2.*"},
		{"~= 1.4.5", ">= 1.4.5, == 1.4.*"},
		{"~= 2.2.post3", ">= 2.2.post3, == 2.*"},
		{"~= 1.4.5a4", ">= 1.4.5a4, == 1.4.*"},
		{"~= 2.2.0", ">= 2.2.0, == 2.2.*"},
		{"~= 1.4.5.0", ">= 1.4.5.0, == 1.4.5.*"},
	}
	staticInputs := []pep440.Version{
		{
			PublicVersion: pep440.PublicVersion{
				Release: []int{2, 2654, 2662, 1281, 1226},
				Pre:     &pep440.PreRelease{L: "rc", N: 2647},
			},
		},
		{
			PublicVersion: pep440.PublicVersion{
				Release: []int{2, 418, 849},
				Post:    intPtr(2328),
				Dev:     intPtr(109),
			},
			Local: []intstr.IntOrString{
				intstr.FromInt(830),
				intstr.FromString("je4kz"),
				intstr.FromInt(2083),
			},
		},
	}

	statics := make([][]interface{}, len(staticInputs))
	for i := range statics {
		statics[i] = []interface{}{staticInputs[i]}
	}
	for i, pair := range pairs {
		pair := pair
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Parallel()
			a, err := pep440.ParseSpecifier(pair[0])
			require.NoError(t, err)
			b, err := pep440.ParseSpecifier(pair[1])
			require.NoError(t, err)
			testutil.QuickCheckEqual(t, a.Match, b.Match, testutil.QuickConfig{}, statics...)
		})
	}
}

func TestSpecifiers(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		InVer    string
		InSpec   string
		OutMatch bool
	}{
		{"1.1.post1", "== 1.1", false},
		{"1.1.post1", "== 1.1.post1", true},
		{"1.1.post1", "== 1.1.*", true},

		{"1.1a1", "== 1.1", false},
		{"1.1a1", "== 1.1a1", true},
		{"1.1a1", "== 1.1.*", true},

		{"1.1", "== 1.1", true},
		{"1.1", "== 1.1.0", true},
		{"1.1", "== 1.1.dev1", false},
		{"1.1", "== 1.1a1", false},
		{"1.1", "== 1.1.post1", false},
		{"1.1", "== 1.1.*", true},

		{"1.1.post1", "!= 1.1", true},
		{"1.1.post1", "!= 1.1.post1", false},
		{"1.1.post1", "!= 1.1.*", false},

		{"1.7.2", "> 1.7", true},
		{"1.7a1", "< 1.7", true},

		{"1!1.2", "== 1.*", false},
		{"1.2", "== 1.*", true},
		{"1.2", "== 1!1.*", false},
		{"1.0", "<= 2.0", true},
		{"1.1rc0", "== 1.1rc.*", true},
		{"1.1rc1", "== 1.1rc.*", false},
		{"1.1post0", "== 1.1post.*", true},
		{"1.1post1", "== 1.1post.*", false},
		{"1rc1", "", true},

		{"1.0+downstream1", "=== 1.0+downstream1", true},
		{"1.0", "=== 1.0.0", false},
		{"1.1RC1", "=== 1.1rc1", true},
	}
	for i, tc := range testcases {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Parallel()

			t.Logf("checking: (%s %s) => %v", tc.InVer, tc.InSpec, tc.OutMatch)

			ver, err := pep440.ParseVersion(tc.InVer)
			require.NoError(t, err)
			require.NotNil(t, ver)

			spec, err := pep440.ParseSpecifier(tc.InSpec)
			require.NoError(t, err)

			require.Equal(t, tc.OutMatch, spec.Match(*ver))
		})
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()
	versions := func(strs ...string) []pep440.Version {
		vers := make([]pep440.Version, 0, len(strs))
		for _, str := range strs {
			vers = append(vers, mustParseVersion(t, str))
		}
		return vers
	}
	testcases := map[string]struct {
		InSpec      string
		InChoices   []pep440.Version
		InExclusion pep440.ExclusionBehavior
		Out         string // empty for nil
	}{
		"newest": {
			InSpec:    ">=1.0",
			InChoices: versions("1.0", "1.2", "1.1"),
			Out:       "1.2",
		},
		"none-match": {
			InSpec:    ">=2.0",
			InChoices: versions("1.0", "1.2"),
			Out:       "",
		},
		"prefer-allowed": {
			InSpec:      ">=1.0",
			InChoices:   versions("1.0", "2.0rc1"),
			InExclusion: pep440.ExcludePreReleases{},
			Out:         "1.0",
		},
		"excluded-fallback": {
			InSpec:      ">=1.0",
			InChoices:   versions("2.0rc1"),
			InExclusion: pep440.ExcludePreReleases{},
			Out:         "2.0rc1",
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			spec, err := pep440.ParseSpecifier(tc.InSpec)
			require.NoError(t, err)
			sel := spec.Select(tc.InChoices, tc.InExclusion)
			if tc.Out == "" {
				assert.Nil(t, sel)
			} else {
				require.NotNil(t, sel)
				assert.Equal(t, tc.Out, sel.String())
			}
		})
	}
}
