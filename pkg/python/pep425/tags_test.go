package pep425_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koukyosyumei/pydist/pkg/python/pep425"
)

func TestParseTag(t *testing.T) {
	t.Parallel()
	tag, err := pep425.ParseTag("py3-none-any")
	require.NoError(t, err)
	assert.Equal(t, &pep425.Tag{Python: "py3", ABI: "none", Platform: "any"}, tag)
	assert.Equal(t, "py3-none-any", tag.String())

	_, err = pep425.ParseTag("py3-none")
	assert.EqualError(t, err, `pep425.ParseTag: invalid tag: "py3-none"`)
}

func TestDecompress(t *testing.T) {
	t.Parallel()
	tag := pep425.Tag{Python: "py2.py3", ABI: "none", Platform: "any"}
	assert.Equal(t, []pep425.Tag{
		{Python: "py2", ABI: "none", Platform: "any"},
		{Python: "py3", ABI: "none", Platform: "any"},
	}, tag.Decompress())
}

func TestIntersect(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		A, B pep425.Tag
		Out  bool
	}{
		"identical": {
			A:   pep425.Tag{Python: "py3", ABI: "none", Platform: "any"},
			B:   pep425.Tag{Python: "py3", ABI: "none", Platform: "any"},
			Out: true,
		},
		"compressed": {
			A:   pep425.Tag{Python: "py2.py3", ABI: "none", Platform: "any"},
			B:   pep425.Tag{Python: "py3", ABI: "none", Platform: "any"},
			Out: true,
		},
		"disjoint": {
			A:   pep425.Tag{Python: "py2", ABI: "none", Platform: "any"},
			B:   pep425.Tag{Python: "py3", ABI: "none", Platform: "any"},
			Out: false,
		},
		"platform-mismatch": {
			A:   pep425.Tag{Python: "py3", ABI: "none", Platform: "manylinux1_x86_64"},
			B:   pep425.Tag{Python: "py3", ABI: "none", Platform: "any"},
			Out: false,
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.Out, pep425.Intersect([]pep425.Tag{tc.A}, []pep425.Tag{tc.B}))
		})
	}
}
