package topics

import "errors"

// Topic is a chapter-level section of a document. Candidates proposed per
// chunk and the final, deduplicated topics share this shape.
type Topic struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	StartMarker string `json:"start_marker" yaml:"start_marker"`
}

// ErrMalformed marks a proposal response that could not be parsed. The
// detector treats it as zero candidates for the chunk.
var ErrMalformed = errors.New("malformed topic proposal")

const (
	fullDocumentTitle       = "Full Document"
	fullDocumentDescription = "Unable to detect specific topics. Showing full document."
	sentinelMarkerChars     = 50
)

// Merge combines two adjacent topics, keeping the first one's start marker.
func Merge(a, b Topic) Topic {
	return Topic{
		Title:       a.Title + " & " + b.Title,
		Description: a.Description + " " + b.Description,
		StartMarker: a.StartMarker,
	}
}

// FullDocument is the single topic returned when detection produced nothing.
func FullDocument(fullText string) Topic {
	return Topic{
		Title:       fullDocumentTitle,
		Description: fullDocumentDescription,
		StartMarker: headChars(fullText, sentinelMarkerChars),
	}
}

// IsFullDocument reports whether t is the whole-document fallback.
func IsFullDocument(t Topic) bool {
	return t.Title == fullDocumentTitle && t.Description == fullDocumentDescription
}

// headChars returns at most n characters from the start of s.
func headChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
