package tokenizer

import (
	"errors"
	"os"

	"github.com/leaperfx/lfx/internal/utils"
)

// Measurement is the outcome of counting one document. Textual is false when
// the content was binary and therefore not counted.
type Measurement struct {
	Tokens  int
	Textual bool
}

// MeasureBytes counts the tokens of content. Binary content is skipped rather
// than counted, since token counts of raw bytes are meaningless.
func MeasureBytes(counter Counter, content []byte) (Measurement, error) {
	if counter == nil {
		return Measurement{}, errors.New("tokenizer counter is nil")
	}
	if utils.LooksBinary(content) {
		return Measurement{}, nil
	}
	tokenCount, countError := counter.Count(string(content))
	if countError != nil {
		return Measurement{}, countError
	}
	return Measurement{Tokens: tokenCount, Textual: true}, nil
}

// MeasureFile reads the file at path and counts its tokens.
func MeasureFile(counter Counter, path string) (Measurement, error) {
	content, readError := os.ReadFile(path)
	if readError != nil {
		return Measurement{}, readError
	}
	return MeasureBytes(counter, content)
}
