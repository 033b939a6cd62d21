package extract

import (
	"regexp"
	"strings"

	"layermap/internal/model"
)

// Java recognizes "import [static] a.b.C;" and matches the captured class
// name against any project file named "C.java"; every match becomes an
// edge. The file's own package declaration is parsed but, per spec.md
// section 4.4, only informational (not used for resolution).
var (
	javaImportRe  = regexp.MustCompile(`(?m)^\s*import\s+(static\s+)?([\w.]+)\s*;`)
	javaPackageRe = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;`)
)

// ExtractJava implements Extractor for .java files.
func ExtractJava(path, content string, idx *Index) []model.Dependency {
	_ = javaPackageOf(content) // read for parity with the source layout; not used for resolution

	var deps []model.Dependency
	for _, m := range javaImportRe.FindAllStringSubmatch(content, -1) {
		qualified := m[2]
		parts := strings.Split(qualified, ".")
		className := parts[len(parts)-1]
		if className == "*" {
			continue
		}
		for _, target := range idx.FindByName(className + ".java") {
			deps = append(deps, model.Dependency{From: path, To: target, Kind: model.KindImport})
		}
	}
	return dedupe(deps)
}

// javaPackageOf returns the file's declared package name, or "" if absent.
// Kept for parity with the extractor contract; its only caller, ExtractJava,
// discards the result.
func javaPackageOf(content string) string {
	m := javaPackageRe.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1]
}
