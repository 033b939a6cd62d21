package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"layermap/internal/classify"
)

func TestHandledExtensionsIsSubsetOfSupportedExtensions(t *testing.T) {
	supported := make(map[string]bool)
	for _, ext := range classify.SupportedExtensions() {
		supported[ext] = true
	}
	for _, ext := range HandledExtensions() {
		assert.True(t, supported[ext], "handled extension %q must also be a supported extension", ext)
	}
}

func TestSomeSupportedExtensionsAreNeverHandled(t *testing.T) {
	handled := make(map[string]bool)
	for _, ext := range HandledExtensions() {
		handled[ext] = true
	}
	for _, ext := range []string{".rs", ".swift", ".kt"} {
		assert.True(t, classify.IsSupported(ext), "expected %q to be a classified/supported extension", ext)
		assert.False(t, handled[ext], "expected %q to have no registered extractor", ext)
	}
}
