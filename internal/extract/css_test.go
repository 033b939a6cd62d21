package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCSS_RelativeImportResolves(t *testing.T) {
	idx := NewIndex(fileNodes("styles/main.scss", "styles/vars.scss"))
	content := `@import "./vars";`

	deps := ExtractCSS("styles/main.scss", content, idx)
	require.Len(t, deps, 1)
	assert.Equal(t, "styles/vars.scss", deps[0].To)
}

func TestExtractCSS_AbsoluteURLSkipped(t *testing.T) {
	idx := NewIndex(fileNodes("styles/main.css"))
	content := `@import url("https://fonts.googleapis.com/css?family=Roboto");`

	deps := ExtractCSS("styles/main.css", content, idx)
	assert.Empty(t, deps)
}
