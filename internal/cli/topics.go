package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docstudy/internal/chunker"
	"github.com/dgallion1/docstudy/internal/topics"
)

type topicsCommander struct {
	*app
	output  string
	content bool
}

type topicView struct {
	Index       int    `json:"index" yaml:"index"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	StartMarker string `json:"start_marker" yaml:"start_marker"`
	Words       int    `json:"words" yaml:"words"`
	Content     string `json:"content,omitempty" yaml:"content,omitempty"`
}

const topicsLongDesc string = `Detect the chapter-level topics of a document.

The document is split into chunks, the model proposes topics for each chunk,
and the candidates are deduplicated and small topics merged forward.
Requires ANTHROPIC_API_KEY.`

func newTopicsCmd(a *app) *cobra.Command {
	cmder := &topicsCommander{app: a}

	cmd := &cobra.Command{
		Use:   "topics FILE",
		Short: "Detect the topics of a document",
		Long:  topicsLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.output, "output", "o", outputText, "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&cmder.content, "content", false, "Include each topic's extracted text")
	return cmd
}

func (c *topicsCommander) run(ctx context.Context, path string) error {
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

	found := c.detect(ctx, m, doc.Text)
	contents := topics.Contents(doc.Text, found)

	views := make([]topicView, len(found))
	for i, t := range found {
		views[i] = topicView{
			Index:       i,
			Title:       t.Title,
			Description: t.Description,
			StartMarker: t.StartMarker,
			Words:       chunker.CountWords(contents[i]),
		}
		if c.content {
			views[i].Content = contents[i]
		}
	}

	if c.output != outputText {
		return encode(c.out, c.output, views)
	}
	for _, v := range views {
		fmt.Fprintf(c.out, "%d. %s (%d words)\n", v.Index, v.Title, v.Words)
		if v.Description != "" {
			fmt.Fprintf(c.out, "   %s\n", v.Description)
		}
		if c.content {
			fmt.Fprintf(c.out, "\n%s\n\n", v.Content)
		}
	}
	return nil
}

func (a *app) detect(ctx context.Context, p topics.Proposer, text string) []topics.Topic {
	det := topics.NewDetector(p, a.log, topics.Config{
		ChunkSize:     a.cfg.TopicChunkSize,
		MinWords:      a.cfg.TopicMinWords,
		MaxConcurrent: a.cfg.MaxConcurrentProposals,
	})
	return det.Detect(ctx, text, func(r topics.ChunkReport) {
		a.log.Debug("chunk proposed", "part", r.Part, "of", r.Total, "candidates", r.Candidates, "error", r.Err)
	})
}

// resolveTopic detects topics and returns the one at index with its text.
func (a *app) resolveTopic(ctx context.Context, m model, text string, index int) (topics.Topic, string, error) {
	found := a.detect(ctx, m, text)
	if index < 0 || index >= len(found) {
		return topics.Topic{}, "", fmt.Errorf("topic %d out of range (document has %d topics)", index, len(found))
	}
	return found[index], topics.ContentAt(text, found, index), nil
}
