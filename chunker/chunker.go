package chunker

import (
	"fmt"
	"strings"
)

// Config controls how document text is split into retrievable windows.
type Config struct {
	MaxChars int // Maximum window length in characters.
	Overlap  int // Characters shared between consecutive windows.
}

// DefaultConfig returns the chunking defaults used for clinical documents.
func DefaultConfig() Config {
	return Config{
		MaxChars: 1200,
		Overlap:  200,
	}
}

// Validate checks that the configuration produces a positive step size.
// An overlap at or above the window size would stall the split loop, so it is
// rejected here rather than detected mid-split.
func (c Config) Validate() error {
	if c.MaxChars <= 0 {
		return fmt.Errorf("%w: max chars %d", ErrInvalidMaxChars, c.MaxChars)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: overlap %d", ErrNegativeOverlap, c.Overlap)
	}
	if c.Overlap >= c.MaxChars {
		return fmt.Errorf("%w: overlap %d >= max chars %d", ErrInvalidStep, c.Overlap, c.MaxChars)
	}
	return nil
}

// Split divides text into overlapping windows of at most MaxChars characters.
// Each window after the first starts Overlap characters before the previous
// window's end; the last window ends exactly at the text's end. Windows that
// trim to an empty string are not emitted. Line endings are normalized first
// so offsets are platform-independent. Empty input yields no chunks.
func Split(text string, cfg Config) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	runes := []rune(text)
	length := len(runes)

	var chunks []string
	start := 0
	for start < length {
		end := start + cfg.MaxChars
		if end > length {
			end = length
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end >= length {
			break
		}
		start = end - cfg.Overlap
	}

	return chunks, nil
}
