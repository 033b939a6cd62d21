package extract

import (
	"regexp"
	"strings"
)

var (
	jsFunctionRe = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:async\s+)?function\s+(\w+)`)
	jsClassRe    = regexp.MustCompile(`(?m)^\s*(?:export\s+)?class\s+(\w+)`)
	jsVariableRe = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=`)

	pyFunctionRe = regexp.MustCompile(`(?m)^\s*def\s+(\w+)`)
	pyClassRe    = regexp.MustCompile(`(?m)^\s*class\s+(\w+)`)
	pyVariableRe = regexp.MustCompile(`(?m)^(\w+)\s*=`)

	javaClassRe  = regexp.MustCompile(`(?m)^\s*(?:public|private|protected|static|final|abstract|\s)*class\s+(\w+)`)
	javaMethodRe = regexp.MustCompile(`(?m)^\s*(?:public|private|protected|static|final|synchronized|abstract|\s)+[\w<>\[\],\s]+?\s(\w+)\s*\([^;{]*\)\s*\{?`)
	javaFieldRe  = regexp.MustCompile(`(?m)^\s*(?:public|private|protected|static|final|\s)+[\w<>\[\],.\s]+?\s(\w+)\s*(?:=[^;]*)?;`)
)

// javaControlKeywords must never be captured as method names.
var javaControlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true, "return": true, "new": true,
}

// Elements is the disjoint triple of top-level names ElementExtractor finds.
type Elements struct {
	Functions []string
	Classes   []string
	Variables []string
}

// ExtractElements recognizes top-level functions, classes, and module-level
// variables/fields for the JS/TS, Python and Java language families. Names
// are deduplicated and disjoint between the three buckets: a name captured
// as a function is not additionally reported as a variable.
func ExtractElements(extension, content string) Elements {
	switch strings.ToLower(extension) {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
		return collect(content, jsFunctionRe, jsClassRe, jsVariableRe, nil)
	case ".py":
		return collect(content, pyFunctionRe, pyClassRe, pyVariableRe, nil)
	case ".java":
		return collect(content, javaMethodRe, javaClassRe, javaFieldRe, javaControlKeywords)
	default:
		return Elements{}
	}
}

func collect(content string, functionRe, classRe, variableRe *regexp.Regexp, exclude map[string]bool) Elements {
	var el Elements
	seen := make(map[string]bool)

	addAll := func(re *regexp.Regexp, bucket *[]string) {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			name := m[1]
			if exclude != nil && exclude[name] {
				continue
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			*bucket = append(*bucket, name)
		}
	}

	addAll(functionRe, &el.Functions)
	addAll(classRe, &el.Classes)
	addAll(variableRe, &el.Variables)
	return el
}
