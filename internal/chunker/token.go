package chunker

import "strings"

// CountWords returns the number of whitespace-separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// EstimateTokens gives a rough token count for logging prompt sizes.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	// Roughly 1.33 tokens per word for English text.
	tokens := int(float64(CountWords(text)) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
