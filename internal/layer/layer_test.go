package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layermap/internal/model"
)

func TestAssignOne_FirstMatchWins(t *testing.T) {
	a := NewDefault()
	assert.Equal(t, model.LayerPresentation, a.AssignOne("src/components/Button.tsx"))
	assert.Equal(t, model.LayerBusiness, a.AssignOne("src/services/OrderService.go"))
	assert.Equal(t, model.LayerData, a.AssignOne("src/models/User.go"))
	assert.Equal(t, model.LayerUtils, a.AssignOne("src/utils/strings.go"))
	assert.Equal(t, model.LayerConfig, a.AssignOne("config/app.toml"))
}

func TestAssignOne_CaseInsensitive(t *testing.T) {
	a := NewDefault()
	assert.Equal(t, model.LayerData, a.AssignOne("src/Models/User.java"))
}

func TestAssignOne_UnmatchedBackendExtensionFallsBackToBusiness(t *testing.T) {
	a := NewDefault()
	assert.Equal(t, model.LayerBusiness, a.AssignOne("src/weird/Quux.go"))
	assert.Equal(t, model.LayerBusiness, a.AssignOne("src/weird/Quux.py"))
}

func TestAssignOne_UnmatchedOtherExtensionFallsBackToUtils(t *testing.T) {
	a := NewDefault()
	assert.Equal(t, model.LayerUtils, a.AssignOne("src/weird/Quux.txt"))
	// Scenario S1: index.js matches no cascade step and has no backend
	// extension, so it falls back to utils rather than business.
	assert.Equal(t, model.LayerUtils, a.AssignOne("src/index.js"))
}

func TestAssign_PartitionsEveryLayer(t *testing.T) {
	a := NewDefault()
	lm := a.Assign([]string{
		"src/components/Button.tsx",
		"src/services/OrderService.go",
		"src/models/User.go",
		"src/utils/strings.go",
		"config/app.toml",
	})

	require.Len(t, lm, 5)
	assert.Equal(t, []string{"src/components/Button.tsx"}, lm[model.LayerPresentation])
	assert.Equal(t, []string{"src/services/OrderService.go"}, lm[model.LayerBusiness])
	assert.Equal(t, []string{"src/models/User.go"}, lm[model.LayerData])
	assert.Equal(t, []string{"src/utils/strings.go"}, lm[model.LayerUtils])
	assert.Equal(t, []string{"config/app.toml"}, lm[model.LayerConfig])
}

func TestNew_ExtraPatternsExtendRatherThanReplace(t *testing.T) {
	a := New(map[model.Layer][]string{
		model.LayerPresentation: {"*.custom"},
	})
	assert.Equal(t, model.LayerPresentation, a.AssignOne("anything.custom"))
	assert.Equal(t, model.LayerPresentation, a.AssignOne("src/components/Button.tsx"))
}
