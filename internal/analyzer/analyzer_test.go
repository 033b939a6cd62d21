package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layermap/internal/hostadapter"
	"layermap/internal/model"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestAnalyze_EndToEndSmallWorkspace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.js", `import { helper } from "./helper";
import React from "react";
function main() { helper(); }
`)
	writeFile(t, root, "src/helper.js", `export function helper() { return 1; }
const DB_HOST = "db.internal.example.com";
`)
	writeFile(t, root, "src/components/Button.jsx", `export class Button {}`)

	a := New(Config{})
	proj, err := a.Analyze(context.Background(), root, hostadapter.Noop{})
	require.NoError(t, err)

	assert.Equal(t, root, proj.RootPath)
	assert.NotEmpty(t, proj.RunID)
	assert.Len(t, proj.Files, 3)

	var sawImport, sawExternal, sawDatabase bool
	for _, d := range proj.Dependencies {
		switch {
		case d.To == "src/helper.js":
			sawImport = true
		case d.To == "[External] react":
			sawExternal = true
		case d.Kind == model.KindDatabase:
			sawDatabase = true
		}
	}
	assert.True(t, sawImport, "expected a resolved relative import edge")
	assert.True(t, sawExternal, "expected an external package marker")
	assert.True(t, sawDatabase, "expected a database marker from DB_HOST")

	require.Contains(t, proj.Layers[model.LayerPresentation], "src/components/Button.jsx")
}

func TestAnalyze_RootFailureReturnsEmptyStructureAndError(t *testing.T) {
	a := New(Config{})
	proj, err := a.Analyze(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"), hostadapter.Noop{})
	require.Error(t, err)
	assert.Equal(t, model.ProjectStats{FilesByType: map[model.TypeTag]int{}}, proj.Stats)
}
