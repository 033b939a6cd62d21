package extract

import (
	"regexp"

	"layermap/internal/model"
	"layermap/internal/pathresolve"
)

// Go recognizes single-quoted and grouped import blocks; only relative
// ("./" or "../" prefixed) paths resolve to an edge. Grounded on the
// teacher's internal/engine/resolver/drivers/go_resolver.go module-root
// arithmetic, narrowed here to the local relative-import case the
// specification covers (this engine does not resolve go.mod module paths).
var goImportLineRe = regexp.MustCompile(`"(\.\.?/[^"]*)"`)

// ExtractGo implements Extractor for .go files.
func ExtractGo(path, content string, idx *Index) []model.Dependency {
	var deps []model.Dependency
	for _, m := range goImportLineRe.FindAllStringSubmatch(content, -1) {
		spec := m[1]
		resolved := pathresolve.ResolveRelative(path, spec)
		for _, candidate := range pathresolve.ExtensionVariants(resolved) {
			if idx.Exists(candidate) {
				deps = append(deps, model.Dependency{From: path, To: candidate, Kind: model.KindImport})
				break
			}
		}
	}
	return dedupe(deps)
}
