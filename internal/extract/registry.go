package extract

// byExtension maps a lower-cased extension to the Extractor that handles
// it. This is a strict subset of classify.SupportedExtensions(): languages
// like Rust, Swift, Kotlin, Scala, YAML, JSON, Markdown and the rest of the
// configuration/documentation surface are classified and layer-assigned
// but never contribute outgoing edges, per the open question in spec.md
// section 9 ("supported-extension surface vs classifier surface").
var byExtension = map[string]Extractor{
	".js":   ExtractJavaScript,
	".jsx":  ExtractJavaScript,
	".ts":   ExtractJavaScript,
	".tsx":  ExtractJavaScript,
	".mjs":  ExtractJavaScript,
	".cjs":  ExtractJavaScript,
	".py":   ExtractPython,
	".java": ExtractJava,
	".go":   ExtractGo,
	".php":  ExtractPHP,
	".css":  ExtractCSS,
	".scss": ExtractCSS,
	".sass": ExtractCSS,
	".less": ExtractCSS,
	".html": ExtractHTML,
	".htm":  ExtractHTML,
}

// ForExtension returns the Extractor registered for extension, or nil if
// the language has no dependency extractor.
func ForExtension(extension string) Extractor {
	return byExtension[extension]
}

// HandledExtensions returns every extension with a registered Extractor.
func HandledExtensions() []string {
	out := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		out = append(out, ext)
	}
	return out
}
