// Package classify maps file extensions to the closed TypeTag set and
// decides which extensions are supported for dependency analysis. It is
// grounded on the teacher's language registry (internal/parser/language_registry.go)
// generalized from "language for AST parsing" to "type tag for the file
// tree", which is why its surface is a strict superset of what
// internal/extract ever produces edges for.
package classify

import (
	"strings"

	"layermap/internal/model"
)

// extensionTypes is the closed extension -> TypeTag map. Keys are
// lower-cased, with the leading dot.
var extensionTypes = map[string]model.TypeTag{
	".js":         model.TypeJavaScript,
	".jsx":        model.TypeJSX,
	".ts":         model.TypeTypeScript,
	".tsx":        model.TypeTSX,
	".mjs":        model.TypeJavaScript,
	".cjs":        model.TypeJavaScript,
	".vue":        model.TypeVue,
	".svelte":     model.TypeSvelte,
	".astro":      model.TypeAstro,
	".html":       model.TypeHTML,
	".htm":        model.TypeHTML,
	".css":        model.TypeCSS,
	".scss":       model.TypeSCSS,
	".sass":       model.TypeSass,
	".less":       model.TypeLess,
	".php":        model.TypePHP,
	".py":         model.TypePython,
	".java":       model.TypeJava,
	".cs":         model.TypeCSharp,
	".cpp":        model.TypeCPP,
	".c":          model.TypeC,
	".h":          model.TypeHeader,
	".hpp":        model.TypeHeader,
	".go":         model.TypeGo,
	".rs":         model.TypeRust,
	".rb":         model.TypeRuby,
	".swift":      model.TypeSwift,
	".kt":         model.TypeKotlin,
	".scala":      model.TypeScala,
	".sql":        model.TypeSQL,
	".graphql":    model.TypeGraphQL,
	".gql":        model.TypeGraphQL,
	".json":       model.TypeJSON,
	".xml":        model.TypeXML,
	".yaml":       model.TypeYAML,
	".yml":        model.TypeYAML,
	".toml":       model.TypeTOML,
	".ini":        model.TypeINI,
	".env":        model.TypeEnv,
	".properties": model.TypeProperties,
	".conf":       model.TypeConf,
	".config":     model.TypeConf,
	".md":         model.TypeMarkdown,
	".mdx":        model.TypeMDX,
	".rst":        model.TypeRST,
	".txt":        model.TypeText,
	".sh":         model.TypeShell,
	".bash":       model.TypeShell,
	".zsh":        model.TypeShell,
	".ps1":        model.TypePowerShell,
	".bat":        model.TypeBatch,
	".cmd":        model.TypeBatch,
	".r":          model.TypeR,
	".m":          model.TypeObjC,
	".dart":       model.TypeDart,
	".lua":        model.TypeLua,
	".pl":         model.TypePerl,
	".ex":         model.TypeElixir,
	".exs":        model.TypeElixir,
}

// supportedExtensions is the authoritative set governing which files are
// flattened into ProjectStructure.Files and fed to dependency extraction.
// It is identical to spec.md section 6's "supported-extension set" — every
// key of extensionTypes belongs to it.
var supportedExtensions = buildSupportedSet()

func buildSupportedSet() map[string]bool {
	set := make(map[string]bool, len(extensionTypes))
	for ext := range extensionTypes {
		set[ext] = true
	}
	return set
}

// TypeTagFor returns the TypeTag for a (lower-cased, dotted) extension.
// Unknown extensions map to model.TypeUnknown.
func TypeTagFor(extension string) model.TypeTag {
	ext := strings.ToLower(extension)
	if tag, ok := extensionTypes[ext]; ok {
		return tag
	}
	return model.TypeUnknown
}

// IsSupported reports whether extension participates in dependency
// analysis (i.e. is flattened into ProjectStructure.Files).
func IsSupported(extension string) bool {
	return supportedExtensions[strings.ToLower(extension)]
}

// SupportedExtensions returns a defensive copy of the supported set's keys.
func SupportedExtensions() []string {
	out := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		out = append(out, ext)
	}
	return out
}

// KnownExtensions returns a defensive copy of every extension the
// classifier recognizes. Every recognized extension is supported, so this
// is the same set as SupportedExtensions.
func KnownExtensions() []string {
	out := make([]string, 0, len(extensionTypes))
	for ext := range extensionTypes {
		out = append(out, ext)
	}
	return out
}
