package extract

import (
	"regexp"

	"layermap/internal/model"
	"layermap/internal/pathresolve"
)

// HTML recognizes <script src="..."> (emits script edges) and
// <link href="..."> (emits stylesheet edges), skipping absolute URLs.
var (
	htmlScriptRe = regexp.MustCompile(`(?i)<script[^>]+src\s*=\s*['"]([^'"]+)['"]`)
	htmlLinkRe   = regexp.MustCompile(`(?i)<link[^>]+href\s*=\s*['"]([^'"]+)['"]`)
)

// ExtractHTML implements Extractor for .html/.htm files.
func ExtractHTML(path, content string, idx *Index) []model.Dependency {
	var deps []model.Dependency
	for _, m := range htmlScriptRe.FindAllStringSubmatch(content, -1) {
		if d, ok := resolveHTMLRef(path, m[1], model.KindScript, idx); ok {
			deps = append(deps, d)
		}
	}
	for _, m := range htmlLinkRe.FindAllStringSubmatch(content, -1) {
		if d, ok := resolveHTMLRef(path, m[1], model.KindStylesheet, idx); ok {
			deps = append(deps, d)
		}
	}
	return dedupe(deps)
}

func resolveHTMLRef(fromFile, spec string, kind model.DependencyKind, idx *Index) (model.Dependency, bool) {
	if isAbsoluteURL(spec) {
		return model.Dependency{}, false
	}
	resolved := pathresolve.ResolveRelative(fromFile, spec)
	for _, candidate := range pathresolve.ExtensionVariants(resolved) {
		if idx.Exists(candidate) {
			return model.Dependency{From: fromFile, To: candidate, Kind: kind}, true
		}
	}
	return model.Dependency{}, false
}
