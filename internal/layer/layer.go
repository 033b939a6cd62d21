// Package layer assigns every project file to one of the five canonical
// architectural layers by a deterministic first-match cascade, grounded on
// the teacher's layer-matching idiom in
// internal/engine/graph/architecture.go (LayerRuleEngine.layerFor):
// case-insensitive path matching, with glob patterns compiled through
// gobwas/glob for anything carrying wildcard characters and a plain
// substring check otherwise.
package layer

import (
	"path"
	"strings"

	"github.com/gobwas/glob"

	"layermap/internal/model"
	"layermap/internal/util"
)

// defaultPatterns is the built-in cascade, checked in model.AllLayers order.
// A file matches a layer when any of its patterns appears (case-insensitive)
// as a substring of the file's normalized path, or matches as a glob when
// the pattern carries wildcard characters. Lists are the authoritative
// cascade from spec §4.7.
var defaultPatterns = map[model.Layer][]string{
	model.LayerPresentation: {
		"view", "component", "ui", "page", "screen", "widget", "template", "layout",
		".vue", ".svelte", ".tsx", ".jsx", ".html", ".htm", ".css", ".scss", ".sass", ".less",
	},
	model.LayerBusiness: {
		"service", "business", "controller", "handler", "manager", "provider",
		"api", "route", "endpoint", "middleware",
	},
	model.LayerData: {
		"model", "data", "repository", "entity", "schema", "database", "migration", "seed",
		".sql", ".graphql", ".gql",
	},
	model.LayerUtils: {
		"util", "helper", "common", "shared", "lib", "tool", "constant", "enum",
	},
	model.LayerConfig: {
		"config",
		".env", ".json", ".yaml", ".yml", ".xml", ".toml", ".ini", ".properties", ".conf",
	},
}

// exactConfigNames are file names that are always config regardless of
// their containing path, checked as part of the config cascade step.
var exactConfigNames = map[string]bool{
	"package.json":      true,
	"tsconfig.json":     true,
	"webpack.config.js": true,
	"babel.config.js":   true,
	".env":              true,
}

// backendFallbackExts are source extensions that fall back to business
// rather than utils when no cascade pattern matches (rule 6).
var backendFallbackExts = map[string]bool{
	".php": true, ".py": true, ".java": true, ".cs": true, ".go": true, ".rs": true,
}

type compiledPattern struct {
	raw        string
	isWildcard bool
	glob       glob.Glob
}

// Assigner holds the compiled cascade. Zero value is invalid; use New or
// NewDefault.
type Assigner struct {
	cascade []layerPatterns
}

type layerPatterns struct {
	layer    model.Layer
	patterns []compiledPattern
}

// NewDefault builds an Assigner from the built-in pattern cascade.
func NewDefault() *Assigner {
	return New(defaultPatterns)
}

// New builds an Assigner from a layer->patterns map. Layers are always
// checked in model.AllLayers order regardless of map iteration order, and
// any layer absent from extra falls back to defaultPatterns for that layer
// so config overrides can extend rather than replace the built-in cascade.
func New(extra map[model.Layer][]string) *Assigner {
	a := &Assigner{}
	for _, l := range model.AllLayers {
		patterns := defaultPatterns[l]
		if custom, ok := extra[l]; ok {
			patterns = append(append([]string{}, patterns...), custom...)
		}
		a.cascade = append(a.cascade, layerPatterns{layer: l, patterns: compileAll(patterns)})
	}
	return a
}

func compileAll(raws []string) []compiledPattern {
	out := make([]compiledPattern, 0, len(raws))
	for _, raw := range raws {
		normalized := util.NormalizePatternPath(strings.ToLower(raw))
		cp := compiledPattern{raw: normalized, isWildcard: strings.ContainsAny(normalized, "*?[]{}")}
		if cp.isWildcard {
			if g, err := glob.Compile(normalized, '/'); err == nil {
				cp.glob = g
			} else {
				cp.isWildcard = false
			}
		}
		out = append(out, cp)
	}
	return out
}

// AssignOne returns the single layer a path belongs to, walking the
// cascade in model.AllLayers order and returning the first match. A path
// whose base name is exactly one of the well-known config file names
// matches the config step even without a pattern hit. A path that matches
// no cascade step falls back to business for backend source extensions and
// to utils otherwise (rule 6).
func (a *Assigner) AssignOne(filePath string) model.Layer {
	lower := strings.ToLower(util.NormalizePatternPath(filePath))
	name := path.Base(lower)
	for _, lp := range a.cascade {
		if lp.layer == model.LayerConfig && exactConfigNames[name] {
			return model.LayerConfig
		}
		for _, p := range lp.patterns {
			if matches(p, lower) {
				return lp.layer
			}
		}
	}
	if backendFallbackExts[path.Ext(lower)] {
		return model.LayerBusiness
	}
	return model.LayerUtils
}

func matches(p compiledPattern, lower string) bool {
	if p.isWildcard {
		return p.glob != nil && p.glob.Match(lower)
	}
	return strings.Contains(lower, p.raw)
}

// Assign partitions every file into model.LayerMap, preserving each layer's
// files in the order they were encountered in paths.
func (a *Assigner) Assign(paths []string) model.LayerMap {
	out := make(model.LayerMap, len(model.AllLayers))
	for _, l := range model.AllLayers {
		out[l] = nil
	}
	for _, p := range paths {
		l := a.AssignOne(p)
		out[l] = append(out[l], p)
	}
	return out
}
