package research

import (
	"reflect"
	"strings"
	"testing"
)

func sampleSections() []Section {
	return []Section{
		{Title: "Introduction", Content: "Prompting basics and the history of language models."},
		{Title: "Zero Shot Prompting", Content: "Zero shot prompting asks a model without examples."},
		{Title: "Few Shot Prompting", Content: "Few shot prompting gives the model worked examples."},
		{Title: "Evaluation", Content: "Measuring accuracy on held out data."},
	}
}

func titles(ss []Section) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Title
	}
	return out
}

func TestTerms(t *testing.T) {
	got := Terms("What is Zero-Shot prompting? Is it zero shot, or AI?")
	want := []string{"what", "zero", "shot", "prompting"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Terms = %v, want %v", got, want)
	}
}

func TestRetrieve(t *testing.T) {
	tests := []struct {
		name  string
		query string
		topK  int
		want  []string
	}{
		{"best match first", "what is zero shot prompting", 3,
			[]string{"Zero Shot Prompting", "Few Shot Prompting", "Introduction"}},
		{"topK limits", "zero shot prompting", 1, []string{"Zero Shot Prompting"}},
		{"ties keep document order", "prompting", 5,
			[]string{"Introduction", "Zero Shot Prompting", "Few Shot Prompting"}},
		{"no match", "quantum chromodynamics", 3, nil},
		{"only short words", "is it ok", 3, nil},
		{"default topK", "model", 0,
			[]string{"Zero Shot Prompting", "Few Shot Prompting"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := titles(Retrieve(sampleSections(), tc.query, tc.topK))
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Retrieve(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestJoinContext(t *testing.T) {
	got := JoinContext([]Section{{Title: "A", Content: "one"}, {Title: "B", Content: "two"}})
	if !strings.Contains(got, "## A\n\none") || !strings.Contains(got, "## B\n\ntwo") {
		t.Errorf("unexpected context: %q", got)
	}
}
