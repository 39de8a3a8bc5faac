package shell

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxLineLength is used when the configuration doesn't set a limit.
const DefaultMaxLineLength = 1024

var (
	// ErrEmptyLine is returned for lines without any words, callers skip them.
	ErrEmptyLine = errors.New("empty line")
	// ErrLineTooLong is returned for lines over the length limit.
	ErrLineTooLong = errors.New("line too long")
)

// Tokenizer splits input lines into words.
type Tokenizer struct {
	// MaxLineLength is the longest line in bytes that will be accepted,
	// excluding the line terminator. Zero means DefaultMaxLineLength.
	MaxLineLength int
}

// Tokenize splits line with the default limits.
func Tokenize(line string) ([]string, error) {
	return (&Tokenizer{}).Tokenize(line)
}

// Tokenize splits line on runs of whitespace, preserving word order. Lines
// over the limit are rejected rather than truncated.
func (t *Tokenizer) Tokenize(line string) ([]string, error) {
	line = strings.TrimRight(line, "\r\n")

	limit := t.MaxLineLength
	if limit <= 0 {
		limit = DefaultMaxLineLength
	}
	if len(line) > limit {
		return nil, fmt.Errorf("%w: %d bytes, the limit is %d", ErrLineTooLong, len(line), limit)
	}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, ErrEmptyLine
	}
	return tokens, nil
}
