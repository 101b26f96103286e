package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docstudy/internal/llm"
	"github.com/dgallion1/docstudy/internal/research"
	"github.com/dgallion1/docstudy/internal/topics"
)

// model is the slice of *llm.Client the commands use.
type model interface {
	topics.Proposer
	research.Model
	Summarize(ctx context.Context, title, content string) (string, error)
	GenerateQuiz(ctx context.Context, title, content string) ([]llm.Question, error)
}

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

// encode writes v as JSON or YAML. Text output is handled by each command.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
