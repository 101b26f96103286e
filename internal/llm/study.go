package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	summaryContentChars = 40000
	quizQuestions       = 5

	summaryMaxTokens = 4096
	quizMaxTokens    = 4096
	shortMaxTokens   = 256
	answerMaxTokens  = 2048
)

// Summarize returns a detailed summary of one topic's content.
func (c *Client) Summarize(ctx context.Context, title, content string) (string, error) {
	prompt, err := render("summary", studyVars{Title: title, Content: clip(content, summaryContentChars)})
	if err != nil {
		return "", err
	}
	text, err := c.Complete(ctx, "summarize", prompt, summaryMaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateQuiz asks for multiple-choice questions about one topic. Invalid
// questions are dropped.
func (c *Client) GenerateQuiz(ctx context.Context, title, content string) ([]Question, error) {
	prompt, err := render("quiz", studyVars{Title: title, Content: clip(content, summaryContentChars), Count: quizQuestions})
	if err != nil {
		return nil, err
	}
	text, err := c.Complete(ctx, "generate_quiz", prompt, quizMaxTokens)
	if err != nil {
		return nil, err
	}
	return ParseQuiz(text)
}

// ParseQuiz decodes a question array from model output. encoding/json
// matches keys case-insensitively, so "Question" is accepted too.
func ParseQuiz(text string) ([]Question, error) {
	var raw []Question
	if err := json.Unmarshal([]byte(StripCodeBlock(text)), &raw); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	out := make([]Question, 0, len(raw))
	for i := range raw {
		if ValidateQuestion(&raw[i]) {
			out = append(out, raw[i])
		}
	}
	if len(out) == 0 {
		return nil, &ParseError{Raw: text, Err: fmt.Errorf("no valid questions")}
	}
	return out, nil
}

// Judge reports whether ctxText is enough to answer question.
func (c *Client) Judge(ctx context.Context, question, ctxText string) (bool, error) {
	prompt, err := render("judge", studyVars{Question: question, Context: ctxText})
	if err != nil {
		return false, err
	}
	text, err := c.Complete(ctx, "judge", prompt, shortMaxTokens)
	if err != nil {
		return false, err
	}
	return strings.Contains(text, "Yes"), nil
}

// Rewrite turns question into a standalone retrieval query.
func (c *Client) Rewrite(ctx context.Context, question string) (string, error) {
	prompt, err := render("rewrite", studyVars{Question: question})
	if err != nil {
		return "", err
	}
	text, err := c.Complete(ctx, "rewrite", prompt, shortMaxTokens)
	if err != nil {
		return "", err
	}
	q := strings.TrimSpace(text)
	if q == "" {
		return question, nil
	}
	return q, nil
}

// Answer answers question from ctxText.
func (c *Client) Answer(ctx context.Context, question, ctxText string) (string, error) {
	prompt, err := render("answer", studyVars{Question: question, Context: ctxText})
	if err != nil {
		return "", err
	}
	text, err := c.Complete(ctx, "answer", prompt, answerMaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
