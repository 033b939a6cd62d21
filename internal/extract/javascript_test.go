package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layermap/internal/model"
)

func TestExtractJavaScript_RelativeImportResolves(t *testing.T) {
	idx := NewIndex(fileNodes("src/app.ts", "src/utils.ts"))
	content := `import { helper } from "./utils";`

	deps := ExtractJavaScript("src/app.ts", content, idx)
	require.Len(t, deps, 1)
	assert.Equal(t, "src/utils.ts", deps[0].To)
	assert.Equal(t, model.KindImport, deps[0].Kind)
}

func TestExtractJavaScript_BareSpecifierIsExternal(t *testing.T) {
	idx := NewIndex(fileNodes("src/app.ts"))
	content := `import React from "react";`

	deps := ExtractJavaScript("src/app.ts", content, idx)
	require.Len(t, deps, 1)
	assert.Equal(t, "[External] react", deps[0].To)
}

func TestExtractJavaScript_UnresolvableRelativeImportIsMissing(t *testing.T) {
	idx := NewIndex(fileNodes("src/app.ts"))
	content := `import { gone } from "./nowhere";`

	deps := ExtractJavaScript("src/app.ts", content, idx)
	require.Len(t, deps, 1)
	assert.Equal(t, "[Missing] src/nowhere", deps[0].To)
}

func TestExtractJavaScript_RequireAndDynamicImport(t *testing.T) {
	idx := NewIndex(fileNodes("src/app.js", "src/lazy.js"))
	content := "const lazy = require('./lazy');\nimport('./lazy').then(() => {});"

	deps := ExtractJavaScript("src/app.js", content, idx)
	require.Len(t, deps, 1)
	assert.Equal(t, "src/lazy.js", deps[0].To)
}

func fileNodes(paths ...string) []*model.FileNode {
	out := make([]*model.FileNode, 0, len(paths))
	for _, p := range paths {
		out = append(out, &model.FileNode{Path: p})
	}
	return out
}
