package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJava_ImportMatchesClassByName(t *testing.T) {
	idx := NewIndex(fileNodes("src/com/app/Main.java", "src/com/app/model/User.java"))
	content := "package com.app;\nimport com.app.model.User;\n"

	deps := ExtractJava("src/com/app/Main.java", content, idx)
	require.Len(t, deps, 1)
	assert.Equal(t, "src/com/app/model/User.java", deps[0].To)
}

func TestExtractJava_WildcardImportSkipped(t *testing.T) {
	idx := NewIndex(fileNodes("src/com/app/Main.java"))
	content := "import com.app.model.*;\n"

	deps := ExtractJava("src/com/app/Main.java", content, idx)
	assert.Empty(t, deps)
}

func TestExtractJava_AmbiguousNameMatchesAllCandidates(t *testing.T) {
	idx := NewIndex(fileNodes(
		"src/com/app/Main.java",
		"src/com/a/Helper.java",
		"src/com/b/Helper.java",
	))
	content := "import com.whatever.Helper;\n"

	deps := ExtractJava("src/com/app/Main.java", content, idx)
	assert.Len(t, deps, 2)
}
