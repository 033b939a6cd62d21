package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layermap/internal/model"
)

func sampleProject() model.ProjectStructure {
	return model.ProjectStructure{
		RootPath: "/workspace/app",
		Files: []*model.FileNode{
			{Path: "a.js"},
			{Path: "b.js"},
			{Path: "c.js"},
		},
		Dependencies: []model.Dependency{
			{From: "a.js", To: "b.js", Kind: model.KindImport},
			{From: "b.js", To: "c.js", Kind: model.KindImport},
			{From: "c.js", To: "a.js", Kind: model.KindImport},
			{From: "a.js", To: "[External] react", Kind: model.KindImport},
			{From: "a.js", To: "[Missing] ./ghost", Kind: model.KindImport},
			{From: "b.js", To: "[DB:postgres]", Kind: model.KindDatabase},
		},
		Cycles: []model.Cycle{{Nodes: []string{"a.js", "b.js", "c.js"}}},
	}
}

func TestGenerateDOT_HighlightsCycleEdgesAndMarkers(t *testing.T) {
	dot := GenerateDOT(sampleProject())

	assert.True(t, strings.Contains(dot, "digraph dependencies"))
	assert.True(t, strings.Contains(dot, `"a.js" -> "b.js" [color="red", penwidth=3.0, label="cycle"]`))
	assert.True(t, strings.Contains(dot, `"[External] react"`))
	assert.True(t, strings.Contains(dot, `"[DB:postgres]"`))
}

func TestGenerateDOT_NonCycleProjectEdgeIsGreen(t *testing.T) {
	proj := sampleProject()
	proj.Cycles = nil
	dot := GenerateDOT(proj)
	assert.True(t, strings.Contains(dot, `"a.js" -> "b.js" [color="forestgreen"`))
}

func TestGenerateMermaid_EmitsFlowchartWithCycleEdge(t *testing.T) {
	mermaid := GenerateMermaid(sampleProject())
	assert.True(t, strings.HasPrefix(mermaid, "flowchart LR"))
	assert.True(t, strings.Contains(mermaid, "==>|cycle|"))
	assert.True(t, strings.Contains(mermaid, "classDef cycle"))
}

func TestGenerateMermaid_AggregatesExternalsPastThreshold(t *testing.T) {
	proj := sampleProject()
	for i := 0; i < aggregateThreshold+1; i++ {
		proj.Dependencies = append(proj.Dependencies, model.Dependency{
			From: "a.js",
			To:   "[External] pkg" + string(rune('a'+i)),
			Kind: model.KindImport,
		})
	}
	mermaid := GenerateMermaid(proj)
	assert.True(t, strings.Contains(mermaid, "external packages"))
}

func TestGenerateJSON_RoundTrips(t *testing.T) {
	raw, err := GenerateJSON(sampleProject())
	require.NoError(t, err)

	var decoded model.ProjectStructure
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "/workspace/app", decoded.RootPath)
	assert.Len(t, decoded.Files, 3)
	assert.Len(t, decoded.Cycles, 1)
}
