package llm

import (
	"fmt"
	"strings"
	"text/template"
)

const topicInstructions = `Identify ONLY the MAJOR topics or chapters in the text segment below.

Focus on MAJOR topics only (chapters, main sections, key concepts). Ignore minor subsections or small details.

For each MAJOR topic, provide:
1. "title": a clear, concise chapter/section name
2. "description": 1-2 sentences about what this section covers
3. "start_marker": the exact starting text of the section (its first 30-50 words), copied verbatim

Return a JSON array:
[
  {"title": "...", "description": "...", "start_marker": "..."}
]

Rules:
- Identify ONLY major topics/chapters, not subsections or minor points
- Look for chapter headings, major section breaks, or significant topic shifts
- Aim for 2-5 major topics per segment at most
- Copy start_marker text exactly as it appears; do not paraphrase
- Respond with ONLY the JSON array, no other text`

// BuildTopicPrompt creates the prompt asking for the major topics of one
// chunk, telling the model where the chunk sits in the document.
func BuildTopicPrompt(chunk string, part, total int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyze the following text segment (Part %d of %d).\n\n", part, total))
	sb.WriteString(topicInstructions)
	sb.WriteString("\n\n---\n")
	sb.WriteString(chunk)
	return sb.String()
}

var studyTemplates = template.Must(template.New("study").Parse(`
{{define "summary"}}Provide a DETAILED and COMPREHENSIVE summary of the entire chapter below.

Chapter/Topic: {{.Title}}

Instructions:
- This is a FULL CHAPTER summary; be thorough and detailed
- Capture all major points, key concepts, and important details
- Include main ideas, arguments, examples, and conclusions
- Structure with bullet points and paragraphs for readability
- Make sure the summary is self-contained and complete

Full Chapter Content:
{{.Content}}

DETAILED SUMMARY:{{end}}

{{define "quiz"}}You are given a topic and its content.

Topic: {{.Title}}

Instructions:
- Generate a quiz from the content provided
- Focus on the key concepts in the text
- Write {{.Count}} clear, moderate-difficulty multiple-choice questions
- Each question has exactly 4 options, one correct answer copied verbatim from the options, and a two-line explanation

Return a JSON array:
[
  {"question": "...", "options": ["...", "...", "...", "..."], "answer": "...", "explanation": "..."}
]

Respond with ONLY the JSON array, no other text.

Content:
{{.Content}}{{end}}

{{define "judge"}}You are validating retrieved context for a question-answering system.

User question: {{.Question}}

Retrieved context:
{{.Context}}

Can the question be answered using only this context? Respond with only: Yes or No{{end}}

{{define "rewrite"}}Rephrase the user's question as a standalone question optimized for retrieval from a document. Keep its intent.

Question: {{.Question}}

Respond with only the improved question.{{end}}

{{define "answer"}}Answer the question using only the context below. If the context does not contain the answer, say so.

Context:
{{.Context}}

Question: {{.Question}}

Answer:{{end}}
`))

type studyVars struct {
	Title    string
	Content  string
	Count    int
	Question string
	Context  string
}

func render(name string, vars studyVars) (string, error) {
	var sb strings.Builder
	if err := studyTemplates.ExecuteTemplate(&sb, name, vars); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", name, err)
	}
	return sb.String(), nil
}
