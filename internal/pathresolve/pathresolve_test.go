package pathresolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRelative(t *testing.T) {
	cases := []struct {
		name     string
		fromFile string
		spec     string
		want     string
	}{
		{"sibling", "src/index.js", "./utils/helper", "src/utils/helper"},
		{"parent", "src/services/dataService.js", "../utils/helper", "src/utils/helper"},
		{"same dir dotted", "src/index.js", "./dataService", "src/dataService"},
		{"root level", "index.js", "./helper", "helper"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveRelative(tc.fromFile, tc.spec)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveRelativeIdempotentUnderNormalization(t *testing.T) {
	got := ResolveRelative("src/a/b.ts", "../c/d")
	assert.Equal(t, normalizeResult(got), got)
}

func TestResolvePythonDotted(t *testing.T) {
	cases := []struct {
		name     string
		fromFile string
		dotted   string
		want     string
	}{
		{"single segment", "pkg/mod.py", ".sibling", "pkg/sibling"},
		{"multi segment", "pkg/mod.py", ".sub.helper", "pkg/sub/helper"},
		{"bare dot", "pkg/mod.py", ".", "pkg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolvePythonDotted(tc.fromFile, tc.dotted)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtensionVariantsWithExtension(t *testing.T) {
	got := ExtensionVariants("src/helper.ts")
	require.Equal(t, []string{"src/helper.ts"}, got)
}

func TestExtensionVariantsOrdering(t *testing.T) {
	got := ExtensionVariants("src/helper")
	require.Equal(t, "src/helper", got[0])
	require.Equal(t, "src/helper.ts", got[1])
	require.Equal(t, "src/helper.js", got[2])
	require.Contains(t, got, "src/helper/index.ts")

	tsIdx, jsIdx := -1, -1
	for i, v := range got {
		if v == "src/helper.ts" {
			tsIdx = i
		}
		if v == "src/helper.js" {
			jsIdx = i
		}
	}
	require.Less(t, tsIdx, jsIdx)
}
