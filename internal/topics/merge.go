package topics

import (
	"strings"

	"github.com/dgallion1/docstudy/internal/chunker"
)

const (
	// DuplicateThreshold is the title similarity above which a candidate is
	// dropped as a duplicate of an earlier one.
	DuplicateThreshold = 0.7

	// DefaultMinWords is the size below which a topic is folded into its
	// successor.
	DefaultMinWords = 300
)

// Similarity is the Jaccard index of the lower-cased word sets of a and b.
// Two strings without words never match.
func Similarity(a, b string) float64 {
	wa, wb := wordSet(a), wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Deduplicate drops every candidate whose title is too similar to the title
// of a candidate already kept. Order is preserved and the first occurrence
// wins; duplicates are discarded, not merged.
func Deduplicate(candidates []Topic) []Topic {
	if len(candidates) == 0 {
		return nil
	}

	var unique []Topic
	var seen []string
	for _, c := range candidates {
		title := strings.ToLower(strings.TrimSpace(c.Title))

		duplicate := false
		for _, s := range seen {
			if Similarity(title, s) > DuplicateThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, c)
			seen = append(seen, title)
		}
	}
	return unique
}

// MergeSmall folds topics with fewer than minWords words of content into the
// topic that follows them.
//
// This is a single forward pass: a merged pair is appended and both
// positions are skipped, so the merged topic is never measured again even if
// it is still under minWords. Runs of three or more small topics are
// therefore only partially consolidated.
func MergeSmall(topics []Topic, fullText string, minWords int) []Topic {
	if len(topics) <= 1 {
		return topics
	}
	if minWords <= 0 {
		minWords = DefaultMinWords
	}

	out := make([]Topic, 0, len(topics))
	for i := 0; i < len(topics); {
		current := topics[i]
		hasNext := i+1 < len(topics)
		words := chunker.CountWords(ContentAt(fullText, topics, i))

		if words < minWords && hasNext {
			out = append(out, Merge(current, topics[i+1]))
			i += 2
			continue
		}
		out = append(out, current)
		i++
	}
	return out
}

// Finalize turns the flat candidate list into the final topic list:
// deduplicate, merge small topics, and fall back to the whole document when
// nothing is left. The result is never empty.
func Finalize(candidates []Topic, fullText string, minWords int) []Topic {
	final := MergeSmall(Deduplicate(candidates), fullText, minWords)
	if len(final) == 0 {
		return []Topic{FullDocument(fullText)}
	}
	return final
}
