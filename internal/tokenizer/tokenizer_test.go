package tokenizer

import (
	"os"
	"path/filepath"
	"testing"
)

type wordCounter struct{}

func (wordCounter) Name() string { return "word-counter" }

func (wordCounter) Count(text string) (int, error) {
	count := 0
	inWord := false
	for _, character := range text {
		if character == ' ' || character == '\n' || character == '\t' {
			inWord = false
			continue
		}
		if !inWord {
			count++
		}
		inWord = true
	}
	return count, nil
}

func TestMeasureBytes(t *testing.T) {
	testCases := []struct {
		name           string
		content        []byte
		expectTextual  bool
		expectedTokens int
	}{
		{name: "prose", content: []byte("two words"), expectTextual: true, expectedTokens: 2},
		{name: "empty content counts zero", content: nil, expectTextual: true, expectedTokens: 0},
		{name: "binary content skipped", content: []byte{0x00, 0x42, 0xff}, expectTextual: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			measurement, measureError := MeasureBytes(wordCounter{}, testCase.content)
			if measureError != nil {
				t.Fatalf("MeasureBytes error: %v", measureError)
			}
			if measurement.Textual != testCase.expectTextual {
				t.Fatalf("expected Textual=%v, got %v", testCase.expectTextual, measurement.Textual)
			}
			if measurement.Textual && measurement.Tokens != testCase.expectedTokens {
				t.Fatalf("expected %d tokens, got %d", testCase.expectedTokens, measurement.Tokens)
			}
		})
	}
}

func TestMeasureBytesRequiresCounter(t *testing.T) {
	if _, measureError := MeasureBytes(nil, []byte("text")); measureError == nil {
		t.Fatal("expected error for nil counter")
	}
}

func TestMeasureFile(t *testing.T) {
	documentPath := filepath.Join(t.TempDir(), "page.html")
	if writeError := os.WriteFile(documentPath, []byte("<p>three short words</p>"), 0o644); writeError != nil {
		t.Fatalf("write fixture: %v", writeError)
	}

	measurement, measureError := MeasureFile(wordCounter{}, documentPath)
	if measureError != nil {
		t.Fatalf("MeasureFile error: %v", measureError)
	}
	if !measurement.Textual || measurement.Tokens == 0 {
		t.Fatalf("expected a counted text file, got %+v", measurement)
	}

	if _, missingError := MeasureFile(wordCounter{}, filepath.Join(t.TempDir(), "absent.html")); missingError == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestForModelFallsBackForUnknownModel(t *testing.T) {
	counter, counterError := ForModel("gemini-2.5-flash")
	if counterError != nil {
		t.Skipf("tokenizer encoding unavailable: %v", counterError)
	}
	if counter.Name() != fallbackEncodingName {
		t.Fatalf("expected fallback encoding %q, got %q", fallbackEncodingName, counter.Name())
	}
	tokenCount, countError := counter.Count("hello world")
	if countError != nil {
		t.Fatalf("Count error: %v", countError)
	}
	if tokenCount <= 0 {
		t.Fatalf("expected positive token count, got %d", tokenCount)
	}
}

func TestForModelResolvesOpenAIModel(t *testing.T) {
	counter, counterError := ForModel("GPT-4o")
	if counterError != nil {
		t.Skipf("tokenizer encoding unavailable: %v", counterError)
	}
	if counter.Name() != "gpt-4o" {
		t.Fatalf("expected model name gpt-4o, got %q", counter.Name())
	}
}
