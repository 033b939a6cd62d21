package extract

import (
	"regexp"

	"layermap/internal/model"
	"layermap/internal/pathresolve"
)

// PHP recognizes include/require (and their _once variants) whose string
// argument contains "./" or "../"; emits include edges only when the
// resolved target exists in the project.
var phpIncludeRe = regexp.MustCompile(`(?i)\b(?:include|require)(?:_once)?\s*\(?\s*['"]([^'"]*\.\.?/[^'"]*)['"]`)

// ExtractPHP implements Extractor for .php files.
func ExtractPHP(path, content string, idx *Index) []model.Dependency {
	var deps []model.Dependency
	for _, m := range phpIncludeRe.FindAllStringSubmatch(content, -1) {
		spec := m[1]
		resolved := pathresolve.ResolveRelative(path, spec)
		for _, candidate := range pathresolve.ExtensionVariants(resolved) {
			if idx.Exists(candidate) {
				deps = append(deps, model.Dependency{From: path, To: candidate, Kind: model.KindInclude})
				break
			}
		}
	}
	return dedupe(deps)
}
