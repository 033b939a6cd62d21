package extract

import (
	"regexp"
	"strings"

	"layermap/internal/model"
	"layermap/internal/pathresolve"
)

// CSS family recognizes @import "..." and @import url("..."), skipping
// absolute URLs (http(s):// or protocol-relative //).
var cssImportRe = regexp.MustCompile(`@import\s+(?:url\(\s*)?['"]([^'"]+)['"]`)

// ExtractCSS implements Extractor for .css/.scss/.sass/.less files.
func ExtractCSS(path, content string, idx *Index) []model.Dependency {
	var deps []model.Dependency
	for _, m := range cssImportRe.FindAllStringSubmatch(content, -1) {
		spec := m[1]
		if isAbsoluteURL(spec) {
			continue
		}
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

func isAbsoluteURL(spec string) bool {
	return strings.HasPrefix(spec, "http") || strings.HasPrefix(spec, "//")
}
