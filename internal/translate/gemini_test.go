package translate

import (
	"context"
	"strings"
	"testing"
)

func TestNewGeminiTranslatorRequiresAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnvironmentVariable, "")

	_, constructError := NewGeminiTranslator(context.Background(), DefaultModel, DefaultLanguage)
	if constructError == nil {
		t.Fatal("expected error while the API key is unset")
	}
	if !strings.Contains(constructError.Error(), APIKeyEnvironmentVariable) {
		t.Fatalf("expected the error to name %s, got %v", APIKeyEnvironmentVariable, constructError)
	}
}

func TestNewGeminiTranslatorAppliesDefaults(t *testing.T) {
	t.Setenv(APIKeyEnvironmentVariable, "test-api-key")
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "false")

	translator, constructError := NewGeminiTranslator(context.Background(), "", "")
	if constructError != nil {
		t.Fatalf("NewGeminiTranslator error: %v", constructError)
	}
	if translator.model != DefaultModel {
		t.Fatalf("expected default model %q, got %q", DefaultModel, translator.model)
	}
	if translator.language != DefaultLanguage {
		t.Fatalf("expected default language %q, got %q", DefaultLanguage, translator.language)
	}
}

func TestGeminiTranslatorSkipsBlankInput(t *testing.T) {
	t.Setenv(APIKeyEnvironmentVariable, "test-api-key")
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "false")

	translator, constructError := NewGeminiTranslator(context.Background(), DefaultModel, DefaultLanguage)
	if constructError != nil {
		t.Fatalf("NewGeminiTranslator error: %v", constructError)
	}
	translatedText, translateError := translator.Translate(context.Background(), " \n\t ")
	if translateError != nil {
		t.Fatalf("Translate error for blank input: %v", translateError)
	}
	if translatedText != "" {
		t.Fatalf("expected empty output for blank input, got %q", translatedText)
	}
}
