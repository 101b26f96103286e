package topics

import "strings"

const (
	// fallbackChars is returned from the head of the document when the
	// start marker cannot be located at all.
	fallbackChars = 10000
	// maxTopicChars caps a topic whose end boundary cannot be located.
	maxTopicChars = 50000

	longPrefixWords  = 10
	shortPrefixWords = 5
)

// Extract returns the text of the topic beginning at startMarker and ending
// just before nextMarker. An empty nextMarker means there is no following
// topic.
//
// Markers come from an LLM and may be paraphrased, so both are searched with
// progressively shorter word prefixes. Extract never fails: an unresolved
// start yields the first 10,000 characters of the document, and an
// unresolved end yields at most 50,000 characters from the start.
func Extract(fullText, startMarker, nextMarker string) string {
	start := strings.Index(fullText, startMarker)
	if start == -1 {
		start = strings.Index(fullText, firstWords(startMarker, longPrefixWords))
	}
	if start == -1 {
		start = strings.Index(fullText, firstWords(startMarker, shortPrefixWords))
	}
	if start == -1 {
		return headChars(fullText, fallbackChars)
	}

	if nextMarker != "" {
		from := start + len(startMarker)
		end := indexFrom(fullText, nextMarker, from)
		if end == -1 {
			end = indexFrom(fullText, firstWords(nextMarker, longPrefixWords), from)
		}
		if end != -1 {
			return strings.TrimSpace(fullText[start:end])
		}
	}

	return strings.TrimSpace(headChars(fullText[start:], maxTopicChars))
}

// Contents resolves the text of every topic, bounding each by the start
// marker of the topic after it.
func Contents(fullText string, topics []Topic) []string {
	out := make([]string, len(topics))
	for i := range topics {
		out[i] = ContentAt(fullText, topics, i)
	}
	return out
}

// ContentAt resolves the text of topics[i]; it returns "" for an index out
// of range.
func ContentAt(fullText string, topics []Topic, i int) string {
	if i < 0 || i >= len(topics) {
		return ""
	}
	next := ""
	if i+1 < len(topics) {
		next = topics[i+1].StartMarker
	}
	return Extract(fullText, topics[i].StartMarker, next)
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// indexFrom is strings.Index starting at byte offset from.
func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], substr)
	if i == -1 {
		return -1
	}
	return from + i
}
