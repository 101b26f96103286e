package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the target chunk length in characters (~10k tokens).
const DefaultChunkSize = 40000

// paragraphBreak matches a blank-line run or a single newline.
var paragraphBreak = regexp.MustCompile(`\n\s*\n|\n`)

const separator = "\n\n"

// Split breaks text into chunks of roughly targetSize characters, cutting
// only at paragraph boundaries. A paragraph longer than targetSize is never
// split and ends up alone in an oversized chunk.
func Split(text string, targetSize int) []string {
	if targetSize <= 0 {
		targetSize = DefaultChunkSize
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if c := strings.TrimSpace(current.String()); c != "" {
			chunks = append(chunks, c)
		}
		current.Reset()
		currentLen = 0
	}

	for _, para := range paragraphBreak.Split(text, -1) {
		paraLen := utf8.RuneCountInString(para)

		// Would adding this paragraph exceed the target?
		if currentLen+paraLen > targetSize && currentLen > 0 {
			flush()
		}

		current.WriteString(para)
		current.WriteString(separator)
		currentLen += paraLen + len(separator)
	}
	flush()

	return chunks
}
