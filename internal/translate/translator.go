// Package translate converts HTML and PDF documents into a target language.
package translate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Translator converts text into the configured target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

const (
	// DefaultLanguage is the target language code used when none is configured.
	DefaultLanguage = "fa"
	// DefaultModel is the translation model used when none is configured.
	DefaultModel = "gemini-2.5-flash"
)

// OutputPath returns the sibling path a translated document is written to,
// inserting the language code between the base name and the extension.
func OutputPath(inputPath string, language string) string {
	parentDirectory, fileName := filepath.Split(inputPath)
	extension := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, extension)
	return filepath.Join(parentDirectory, fmt.Sprintf("%s_%s%s", baseName, language, extension))
}

// translateText applies the shared empty-input guard before delegating to the
// translator: empty and whitespace-only text translates to the empty string
// without a backend call.
func translateText(ctx context.Context, translator Translator, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	return translator.Translate(ctx, text)
}
