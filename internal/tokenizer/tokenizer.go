// Package tokenizer estimates model token counts for document text.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter reports how many tokens a piece of text encodes to.
type Counter interface {
	Name() string
	Count(text string) (int, error)
}

// fallbackEncodingName counts text for models without a dedicated tiktoken
// encoding, which includes every non-OpenAI translation model.
const fallbackEncodingName = "cl100k_base"

// tiktokenCounter counts tokens with a tiktoken byte-pair encoding.
type tiktokenCounter struct {
	name     string
	encoding *tiktoken.Tiktoken
}

func (counter *tiktokenCounter) Name() string {
	return counter.name
}

func (counter *tiktokenCounter) Count(text string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("tokenizer encoding is not initialized")
	}
	return len(counter.encoding.Encode(text, nil, nil)), nil
}

// ForModel returns a Counter for the named model. Models unknown to tiktoken
// fall back to the cl100k_base encoding; the counter's Name reports which
// encoding actually counts.
func ForModel(model string) (Counter, error) {
	normalizedModel := strings.ToLower(strings.TrimSpace(model))
	if normalizedModel != "" {
		if encoding, encodingError := tiktoken.EncodingForModel(normalizedModel); encodingError == nil && encoding != nil {
			return &tiktokenCounter{name: normalizedModel, encoding: encoding}, nil
		}
	}
	fallbackEncoding, fallbackError := tiktoken.GetEncoding(fallbackEncodingName)
	if fallbackError != nil {
		return nil, fmt.Errorf("load %s encoding: %w", fallbackEncodingName, fallbackError)
	}
	return &tiktokenCounter{name: fallbackEncodingName, encoding: fallbackEncoding}, nil
}
