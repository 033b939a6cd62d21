package extract

import (
	"regexp"

	"layermap/internal/model"
)

// dbPattern pairs a connection-string shape with the database kind it
// identifies, mirroring the teacher's secret-pattern table idiom
// (internal/engine/secrets/detector.go): an ordered list of (regexp, label)
// pairs checked against raw file content.
type dbPattern struct {
	kind string
	re   *regexp.Regexp
}

var dbPatterns = []dbPattern{
	{"mysql", regexp.MustCompile(`(?i)mysql(?:\+\w+)?://[^\s'"` + "`" + `]+`)},
	{"mariadb", regexp.MustCompile(`(?i)mariadb://[^\s'"` + "`" + `]+`)},
	{"postgres", regexp.MustCompile(`(?i)postgres(?:ql)?://[^\s'"` + "`" + `]+`)},
	{"mongodb", regexp.MustCompile(`(?i)mongodb(?:\+srv)?://[^\s'"` + "`" + `]+`)},
	{"redis", regexp.MustCompile(`(?i)rediss?://[^\s'"` + "`" + `]+`)},
	{"sqlite", regexp.MustCompile(`(?i)sqlite3?://[^\s'"` + "`" + `]+`)},
	{"sqlite", regexp.MustCompile(`(?i)\.(?:sqlite3?|db)['"` + "`" + `]`)},
	{"generic", regexp.MustCompile(`(?i)\bDB_HOST\s*[=:]\s*['"][^'"]+['"]`)},
}

// ExtractDatabaseLinks scans raw content for connection-string shapes and
// DB_HOST-style settings, emitting at most one "[DB:<type>]" edge per
// distinct detected type. Unlike the language extractors this one runs
// against every file regardless of extension.
func ExtractDatabaseLinks(path, content string, idx *Index) []model.Dependency {
	found := make(map[string]bool)
	var deps []model.Dependency
	for _, p := range dbPatterns {
		if found[p.kind] {
			continue
		}
		if p.re.MatchString(content) {
			found[p.kind] = true
			deps = append(deps, model.Dependency{
				From: path,
				To:   databaseMarker(p.kind),
				Kind: model.KindDatabase,
			})
		}
	}
	return deps
}
