package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layermap/internal/model"
)

func TestExtractPHP_IncludeResolves(t *testing.T) {
	idx := NewIndex(fileNodes("src/index.php", "src/config.php"))
	content := `require_once("./config.php");`

	deps := ExtractPHP("src/index.php", content, idx)
	require.Len(t, deps, 1)
	assert.Equal(t, "src/config.php", deps[0].To)
	assert.Equal(t, model.KindInclude, deps[0].Kind)
}

func TestExtractPHP_UnresolvableIncludeYieldsNoEdge(t *testing.T) {
	idx := NewIndex(fileNodes("src/index.php"))
	content := `include("../missing.php");`

	deps := ExtractPHP("src/index.php", content, idx)
	assert.Empty(t, deps)
}
