// Package research answers questions against a document's topic sections
// with a retrieve, validate and rewrite loop.
package research

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	DefaultMaxRewrites = 2

	// NoContextAnswer is returned when no section matches the question.
	NoContextAnswer = "No relevant sections found."
)

// Model is the subset of the LLM client the agent needs.
type Model interface {
	Judge(ctx context.Context, question, context string) (bool, error)
	Rewrite(ctx context.Context, question string) (string, error)
	Answer(ctx context.Context, question, context string) (string, error)
}

// Result is the outcome of one Ask.
type Result struct {
	Answer   string   `json:"answer"`
	Query    string   `json:"query"`
	Attempts int      `json:"attempts"`
	Sections []string `json:"sections"`
}

type Agent struct {
	model       Model
	log         *slog.Logger
	TopK        int
	MaxRewrites int
}

func NewAgent(model Model, log *slog.Logger) *Agent {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Agent{
		model:       model,
		log:         log,
		TopK:        DefaultTopK,
		MaxRewrites: DefaultMaxRewrites,
	}
}

// Ask retrieves sections for question, asks the model whether they are
// enough, and rewrites the query until they are or the rewrite budget runs
// out. The answer uses the last retrieved context.
func (a *Agent) Ask(ctx context.Context, question string, sections []Section) (Result, error) {
	res := Result{Query: question}
	var found []Section

	for {
		res.Attempts++
		found = Retrieve(sections, res.Query, a.TopK)
		log := a.log.With("attempt", res.Attempts, "query", res.Query, "sections", len(found))

		if len(found) > 0 {
			ok, err := a.model.Judge(ctx, question, JoinContext(found))
			if err != nil {
				return res, fmt.Errorf("judge context: %w", err)
			}
			if ok {
				log.Debug("context accepted")
				break
			}
			log.Debug("context rejected")
		} else {
			log.Debug("no sections matched")
		}

		if res.Attempts > a.MaxRewrites {
			break
		}
		q, err := a.model.Rewrite(ctx, res.Query)
		if err != nil {
			return res, fmt.Errorf("rewrite query: %w", err)
		}
		res.Query = q
	}

	if len(found) == 0 {
		res.Answer = NoContextAnswer
		return res, nil
	}
	for _, s := range found {
		res.Sections = append(res.Sections, s.Title)
	}
	answer, err := a.model.Answer(ctx, question, JoinContext(found))
	if err != nil {
		return res, fmt.Errorf("answer: %w", err)
	}
	res.Answer = answer
	return res, nil
}
