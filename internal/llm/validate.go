package llm

import (
	"strings"

	"github.com/dgallion1/docstudy/internal/topics"
)

const (
	maxTitleChars  = 200
	maxMarkerChars = 500
)

// ValidateTopic normalizes a proposed topic. Returns false if it is unusable.
func ValidateTopic(t *topics.Topic) bool {
	if t == nil {
		return false
	}
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	// Markers are matched verbatim against the document; only trim the ends.
	t.StartMarker = strings.TrimSpace(t.StartMarker)

	if t.Title == "" {
		return false
	}
	t.Title = clip(t.Title, maxTitleChars)
	t.StartMarker = clip(t.StartMarker, maxMarkerChars)
	return true
}

// Question is one multiple-choice quiz item.
type Question struct {
	Question    string   `json:"question" yaml:"question"`
	Options     []string `json:"options" yaml:"options"`
	Answer      string   `json:"answer" yaml:"answer"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

// ValidateQuestion normalizes a quiz question. Returns false if it is unusable.
func ValidateQuestion(q *Question) bool {
	if q == nil {
		return false
	}
	q.Question = strings.TrimSpace(q.Question)
	q.Answer = strings.TrimSpace(q.Answer)
	q.Explanation = strings.TrimSpace(q.Explanation)

	opts := q.Options[:0]
	for _, o := range q.Options {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	q.Options = opts

	if q.Question == "" || q.Answer == "" || len(q.Options) < 2 {
		return false
	}
	for _, o := range q.Options {
		if strings.EqualFold(o, q.Answer) {
			q.Answer = o
			return true
		}
	}
	return false
}
