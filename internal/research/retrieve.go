package research

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultTopK is the number of sections returned when topK is not positive.
const DefaultTopK = 3

// Section is one topic of a document with its extracted text.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Terms returns the distinct lower-cased words of s with at least three
// letters, in first-seen order.
func Terms(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(fields))
	var out []string
	for _, f := range fields {
		if len([]rune(f)) < 3 || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// Retrieve ranks sections by how many distinct query terms appear in their
// title or content. Sections matching no term are left out; ties keep
// document order.
func Retrieve(sections []Section, query string, topK int) []Section {
	if topK <= 0 {
		topK = DefaultTopK
	}
	terms := Terms(query)
	if len(terms) == 0 {
		return nil
	}

	type scored struct {
		idx   int
		score int
	}
	var hits []scored
	for i, s := range sections {
		words := make(map[string]bool)
		for _, w := range Terms(s.Title + " " + s.Content) {
			words[w] = true
		}
		score := 0
		for _, t := range terms {
			if words[t] {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{idx: i, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}

	out := make([]Section, len(hits))
	for i, h := range hits {
		out[i] = sections[h.idx]
	}
	return out
}

// JoinContext renders sections as the context block given to the model.
func JoinContext(sections []Section) string {
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = "## " + s.Title + "\n\n" + s.Content
	}
	return strings.Join(parts, "\n\n")
}
