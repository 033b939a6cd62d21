package report

import (
	"encoding/json"

	"layermap/internal/model"
)

// GenerateJSON renders proj as indented JSON, the always-available export
// format since model.ProjectStructure already carries full encoding/json
// tags.
func GenerateJSON(proj model.ProjectStructure) ([]byte, error) {
	return json.MarshalIndent(proj, "", "  ")
}
