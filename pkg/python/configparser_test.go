package python_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koukyosyumei/pydist/pkg/python"
)

func TestConfigParse(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Input  string
		OutVal python.Config
		OutErr string
	}{
		"simple": {
			Input: "[section]\nkey = value\n",
			OutVal: python.Config{
				"section": {"key": "value"},
			},
		},
		"colon-delimiter": {
			Input: "[section]\nkey: value\n",
			OutVal: python.Config{
				"section": {"key": "value"},
			},
		},
		"continuation-lines": {
			Input: "[section]\nkey = line1\n\tline2\n",
			OutVal: python.Config{
				"section": {"key": "line1\nline2"},
			},
		},
		"comments": {
			Input: "# leading comment\n[section]\n; another\nkey = value\n",
			OutVal: python.Config{
				"section": {"key": "value"},
			},
		},
		"lowercased-options": {
			Input: "[Section]\nKey = value\n",
			OutVal: python.Config{
				"Section": {"key": "value"},
			},
		},
		"no-section": {
			Input:  "key = value\n",
			OutErr: "line 1: no section header",
		},
		"no-delimiter": {
			Input:  "[section]\nkey value\n",
			OutErr: `line 2: invalid line: "key value"`,
		},
		"duplicate-section": {
			Input:  "[section]\n[section]\n",
			OutErr: `line 2: duplicate section name "section"`,
		},
		"duplicate-option": {
			Input:  "[section]\nkey = a\nkey = b\n",
			OutErr: `line 3: duplicate option name "key"`,
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			val, err := python.NewConfigParser().Parse(strings.NewReader(tc.Input))
			if tc.OutErr != "" {
				assert.EqualError(t, err, tc.OutErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.OutVal, val)
		})
	}
}

func TestConfigWrite(t *testing.T) {
	t.Parallel()
	config := python.Config{
		"b": {"z": "1", "a": "2"},
		"a": {"multi": "line1\nline2"},
	}
	var out strings.Builder
	require.NoError(t, config.Write(&out))
	assert.Equal(t, ""+
		"[a]\n"+
		"multi = line1\n"+
		"\tline2\n"+
		"\n"+
		"[b]\n"+
		"a = 2\n"+
		"z = 1\n"+
		"\n",
		out.String())

	// and it parses back
	parsed, err := python.NewConfigParser().Parse(strings.NewReader(out.String()))
	require.NoError(t, err)
	assert.Equal(t, config, parsed)
}
