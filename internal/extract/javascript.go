package extract

import (
	"regexp"
	"strings"

	"layermap/internal/model"
	"layermap/internal/pathresolve"
)

// JS/TS recognizes static imports (named/namespace/default/bare/side-effect
// forms), require(...), and dynamic import(...). Grounded on the resolver
// idiom in the teacher's internal/engine/resolver/drivers/javascript_resolver.go
// (relative-vs-bare specifier branching) with the AST walk replaced by the
// regexes spec.md section 4.4 calls for.
var (
	jsStaticImportRe = regexp.MustCompile(`import\s+(?:[\s\S]*?from\s+)?['"]([^'"]+)['"]`)
	jsDynamicImportRe = regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]`)
	jsRequireRe      = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
)

// ExtractJavaScript implements Extractor for .js/.jsx/.ts/.tsx/.mjs/.cjs files.
func ExtractJavaScript(path, content string, idx *Index) []model.Dependency {
	specs := make([]string, 0, 8)
	for _, m := range jsStaticImportRe.FindAllStringSubmatch(content, -1) {
		specs = append(specs, m[1])
	}
	for _, m := range jsDynamicImportRe.FindAllStringSubmatch(content, -1) {
		specs = append(specs, m[1])
	}
	for _, m := range jsRequireRe.FindAllStringSubmatch(content, -1) {
		specs = append(specs, m[1])
	}

	deps := make([]model.Dependency, 0, len(specs))
	for _, spec := range specs {
		deps = append(deps, resolveJSSpecifier(path, spec, idx))
	}
	return dedupe(deps)
}

func resolveJSSpecifier(fromFile, spec string, idx *Index) model.Dependency {
	if !isRelativeSpecifier(spec) {
		return model.Dependency{From: fromFile, To: externalMarker(spec), Kind: model.KindImport}
	}

	resolved := pathresolve.ResolveRelative(fromFile, spec)
	for _, candidate := range pathresolve.ExtensionVariants(resolved) {
		if idx.Exists(candidate) {
			return model.Dependency{From: fromFile, To: candidate, Kind: model.KindImport}
		}
	}
	return model.Dependency{From: fromFile, To: missingMarker(resolved), Kind: model.KindImport}
}

func isRelativeSpecifier(spec string) bool {
	return strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/")
}
