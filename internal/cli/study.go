package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docstudy/internal/research"
	"github.com/dgallion1/docstudy/internal/topics"
)

type summarizeCommander struct {
	*app
	topic int
}

func newSummarizeCmd(a *app) *cobra.Command {
	cmder := &summarizeCommander{app: a}

	cmd := &cobra.Command{
		Use:   "summarize FILE",
		Short: "Summarize one topic of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), args[0])
		},
	}
	cmd.Flags().IntVarP(&cmder.topic, "topic", "t", 0, "Topic index, as listed by the topics command")
	return cmd
}

func (c *summarizeCommander) run(ctx context.Context, path string) error {
	doc, err := c.loadDocument(path)
	if err != nil {
		return err
	}
	m, err := c.client()
	if err != nil {
		return err
	}
	t, content, err := c.resolveTopic(ctx, m, doc.Text, c.topic)
	if err != nil {
		return err
	}
	summary, err := m.Summarize(ctx, t.Title, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "# %s\n\n%s\n", t.Title, summary)
	return nil
}

type quizCommander struct {
	*app
	topic  int
	output string
}

func newQuizCmd(a *app) *cobra.Command {
	cmder := &quizCommander{app: a}

	cmd := &cobra.Command{
		Use:   "quiz FILE",
		Short: "Generate multiple choice questions for one topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), args[0])
		},
	}
	cmd.Flags().IntVarP(&cmder.topic, "topic", "t", 0, "Topic index, as listed by the topics command")
	cmd.Flags().StringVarP(&cmder.output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

func (c *quizCommander) run(ctx context.Context, path string) error {
	if err := validOutput(c.output); err != nil {
		return err
	}
	doc, err := c.loadDocument(path)
	if err != nil {
		return err
	}
	m, err := c.client()
	if err != nil {
		return err
	}
	t, content, err := c.resolveTopic(ctx, m, doc.Text, c.topic)
	if err != nil {
		return err
	}
	questions, err := m.GenerateQuiz(ctx, t.Title, content)
	if err != nil {
		return err
	}

	if c.output != outputText {
		return encode(c.out, c.output, questions)
	}
	for i, q := range questions {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(c.out, "   %c) %s\n", 'a'+j, opt)
		}
		fmt.Fprintf(c.out, "   Answer: %s\n", q.Answer)
		if q.Explanation != "" {
			fmt.Fprintf(c.out, "   %s\n", q.Explanation)
		}
		fmt.Fprintln(c.out)
	}
	return nil
}

type askCommander struct {
	*app
	topK        int
	maxRewrites int
}

func newAskCmd(a *app) *cobra.Command {
	cmder := &askCommander{app: a}

	cmd := &cobra.Command{
		Use:   "ask FILE QUESTION",
		Short: "Answer a question from the document's topics",
		Long: `Answer a question using the topics of a document as context.

Relevant topics are retrieved by keyword overlap. If the model judges them
insufficient, the query is rewritten and retrieval tried again.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), args[0], args[1])
		},
	}
	cmd.Flags().IntVarP(&cmder.topK, "top-k", "k", research.DefaultTopK, "Sections retrieved per attempt")
	cmd.Flags().IntVar(&cmder.maxRewrites, "max-rewrites", research.DefaultMaxRewrites, "Query rewrites before answering anyway")
	return cmd
}

func (c *askCommander) run(ctx context.Context, path, question string) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("question must not be blank")
	}
	doc, err := c.loadDocument(path)
	if err != nil {
		return err
	}
	m, err := c.client()
	if err != nil {
		return err
	}

	found := c.detect(ctx, m, doc.Text)
	contents := topics.Contents(doc.Text, found)
	sections := make([]research.Section, len(found))
	for i, t := range found {
		sections[i] = research.Section{Title: t.Title, Content: contents[i]}
	}

	agent := research.NewAgent(m, c.log)
	if c.topK > 0 {
		agent.TopK = c.topK
	}
	if c.maxRewrites >= 0 {
		agent.MaxRewrites = c.maxRewrites
	}
	res, err := agent.Ask(ctx, question, sections)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, res.Answer)
	if len(res.Sections) > 0 {
		fmt.Fprintf(c.out, "\nSources: %s\n", strings.Join(res.Sections, "; "))
	}
	return nil
}
