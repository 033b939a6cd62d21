package extract

import (
	"regexp"
	"strings"

	"layermap/internal/model"
	"layermap/internal/pathresolve"
)

// Python recognizes "from X import ..." and "import X". Only relative
// ("." prefixed) forms resolve to an edge; non-relative imports are
// dropped per spec.md section 4.4 (no module-resolution attempt for
// external packages). Grounded on the teacher's
// internal/engine/resolver/python_resolver.go dotted-package arithmetic.
var (
	pyFromImportRe = regexp.MustCompile(`(?m)^\s*from\s+(\.{1,}[\w.]*|\w[\w.]*)\s+import\b`)
	pyImportRe     = regexp.MustCompile(`(?m)^\s*import\s+([\w.]+(?:\s*,\s*[\w.]+)*)`)
)

// ExtractPython implements Extractor for .py files.
func ExtractPython(path, content string, idx *Index) []model.Dependency {
	var deps []model.Dependency

	for _, m := range pyFromImportRe.FindAllStringSubmatch(content, -1) {
		if d, ok := resolvePythonModule(path, m[1], idx); ok {
			deps = append(deps, d)
		}
	}
	for _, m := range pyImportRe.FindAllStringSubmatch(content, -1) {
		for _, mod := range strings.Split(m[1], ",") {
			mod = strings.TrimSpace(mod)
			if d, ok := resolvePythonModule(path, mod, idx); ok {
				deps = append(deps, d)
			}
		}
	}
	return dedupe(deps)
}

func resolvePythonModule(fromFile, module string, idx *Index) (model.Dependency, bool) {
	if !strings.HasPrefix(module, ".") {
		return model.Dependency{}, false
	}

	resolved := pathresolve.ResolvePythonDotted(fromFile, module)
	for _, candidate := range pathresolve.ExtensionVariants(resolved) {
		if idx.Exists(candidate) {
			return model.Dependency{From: fromFile, To: candidate, Kind: model.KindImport}, true
		}
	}
	return model.Dependency{}, false
}
