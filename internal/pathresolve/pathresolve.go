// Package pathresolve implements the pure path arithmetic the dependency
// extractors use to turn an import specifier into a workspace-relative
// candidate path. It performs no I/O: existence checks against the frozen
// file map happen one layer up, in internal/extract.
package pathresolve

import (
	"path"
	"strings"
)

// extVariantOrder is the ordered set of extensions ExtensionVariants probes
// when a specifier has no extension of its own. Order is significant: the
// first variant present in the caller's file map wins.
var extVariantOrder = []string{
	"ts", "js", "tsx", "jsx", "py", "java", "go", "php", "html", "htm", "css", "scss", "sql",
}

// indexModuleExtOrder is the ordered set of extensions probed for an
// index-module variant (basePath/index.<ext>), tried after the direct
// extension variants.
var indexModuleExtOrder = []string{"ts", "js", "tsx", "jsx", "php", "html"}

// ResolveRelative interprets spec against the directory of fromFile,
// normalizes the result, and returns it using forward slashes.
func ResolveRelative(fromFile, spec string) string {
	dir := path.Dir(normalize(fromFile))
	if dir == "." {
		dir = ""
	}
	joined := path.Join(dir, normalize(spec))
	return normalizeResult(joined)
}

// ResolvePythonDotted strips exactly one leading "." from dotted, splits
// the remainder on ".", and treats the segments as path components
// relative to fromFile's directory. A bare "." (no remainder) resolves to
// fromFile's own directory.
func ResolvePythonDotted(fromFile, dotted string) string {
	dir := path.Dir(normalize(fromFile))
	if dir == "." {
		dir = ""
	}
	rest := strings.TrimPrefix(dotted, ".")
	segments := splitNonEmpty(rest, ".")
	joined := path.Join(append([]string{dir}, segments...)...)
	return normalizeResult(joined)
}

// ExtensionVariants yields, in priority order, the candidate paths to probe
// for an extension-less basePath: basePath itself, then basePath.<ext> for
// each extension in extVariantOrder, then basePath/index.<ext> for each
// extension in indexModuleExtOrder. If basePath already carries an
// extension, only basePath itself is yielded.
func ExtensionVariants(basePath string) []string {
	basePath = normalizeResult(basePath)
	if hasExtension(basePath) {
		return []string{basePath}
	}

	variants := make([]string, 0, 1+len(extVariantOrder)+len(indexModuleExtOrder))
	variants = append(variants, basePath)
	for _, ext := range extVariantOrder {
		variants = append(variants, basePath+"."+ext)
	}
	for _, ext := range indexModuleExtOrder {
		variants = append(variants, basePath+"/index."+ext)
	}
	return variants
}

func hasExtension(p string) bool {
	base := path.Base(p)
	idx := strings.LastIndex(base, ".")
	return idx > 0
}

func normalize(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// normalizeResult cleans a joined path and guarantees forward slashes.
// It is idempotent: normalizeResult(normalizeResult(x)) == normalizeResult(x).
func normalizeResult(p string) string {
	p = normalize(p)
	cleaned := path.Clean(p)
	if cleaned == "." {
		return ""
	}
	return strings.TrimPrefix(cleaned, "./")
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
