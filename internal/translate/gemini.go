package translate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const (
	// APIKeyEnvironmentVariable names the environment variable holding the Gemini API key.
	APIKeyEnvironmentVariable = "GEMINI_API_KEY"

	// translationInstructionFormat is the system instruction sent with every request.
	translationInstructionFormat = "You are a document translator. Translate the user text into the language with ISO 639-1 code %q. Preserve line breaks and punctuation. Respond with the translated text only."
)

// GeminiTranslator translates text through the Gemini API.
type GeminiTranslator struct {
	client   *genai.Client
	model    string
	language string
}

// NewGeminiTranslator constructs a Gemini-backed translator for the target
// language. The API key is read from the GEMINI_API_KEY environment variable
// and never persisted.
func NewGeminiTranslator(ctx context.Context, model string, language string) (*GeminiTranslator, error) {
	apiKey := os.Getenv(APIKeyEnvironmentVariable)
	if apiKey == "" {
		return nil, fmt.Errorf("translation API key is not set; export %s", APIKeyEnvironmentVariable)
	}
	if model == "" {
		model = DefaultModel
	}
	if language == "" {
		language = DefaultLanguage
	}
	client, clientError := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if clientError != nil {
		return nil, fmt.Errorf("create translation client: %w", clientError)
	}
	return &GeminiTranslator{client: client, model: model, language: language}, nil
}

// Translate converts text into the target language. Empty and whitespace-only
// input short-circuits to an empty string without calling the API.
func (translator *GeminiTranslator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}
	instruction := fmt.Sprintf(translationInstructionFormat, translator.language)
	configuration := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}
	response, generateError := translator.client.Models.GenerateContent(ctx, translator.model, contents, configuration)
	if generateError != nil {
		return "", fmt.Errorf("translate text: %w", generateError)
	}
	translatedText := response.Text()
	if translatedText == "" {
		return "", errors.New("translation backend returned no text")
	}
	return translatedText, nil
}

var _ Translator = (*GeminiTranslator)(nil)
