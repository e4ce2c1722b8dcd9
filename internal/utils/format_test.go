package utils_test

import (
	"testing"

	"github.com/leaperfx/lfx/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative clamps to zero", bytes: -42, expected: "0b"},
		{name: "zero", bytes: 0, expected: "0b"},
		{name: "below one kilobyte", bytes: 1023, expected: "1023b"},
		{name: "exact kilobyte trims decimal", bytes: 1024, expected: "1kb"},
		{name: "fractional kilobyte keeps one decimal", bytes: 2560, expected: "2.5kb"},
		{name: "ten kilobytes drops decimals", bytes: 10 * 1024, expected: "10kb"},
		{name: "just under ten kilobytes rounds up", bytes: 10*1024 - 1, expected: "10kb"},
		{name: "megabytes", bytes: 3 * 1024 * 1024, expected: "3mb"},
		{name: "gigabytes", bytes: 1536 * 1024 * 1024, expected: "1.5gb"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestLooksBinary(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{name: "empty", data: nil, expected: false},
		{name: "ascii text", data: []byte("plain old text"), expected: false},
		{name: "multibyte text", data: []byte("سلام دنیا"), expected: false},
		{name: "embedded nul byte", data: []byte("abc\x00def"), expected: true},
		{name: "invalid utf8 sequence", data: []byte{0xc3, 0x28}, expected: true},
		{name: "leading bom stays text", data: []byte("\uFEFFdocument"), expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.LooksBinary(testCase.data)
			if result != testCase.expected {
				t.Fatalf("expected %v, got %v", testCase.expected, result)
			}
		})
	}
}
