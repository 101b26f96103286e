package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docstudy/internal/chunker"
)

type chunkCommander struct {
	*app
	size   int
	output string
}

type chunkView struct {
	Index  int    `json:"index" yaml:"index"`
	Chars  int    `json:"chars" yaml:"chars"`
	Words  int    `json:"words" yaml:"words"`
	Tokens int    `json:"est_tokens" yaml:"est_tokens"`
	Head   string `json:"head" yaml:"head"`
}

const chunkLongDesc string = `Split a document into chunks the way topic detection does, without
calling the model. Useful for tuning --size.`

func newChunkCmd(a *app) *cobra.Command {
	cmder := &chunkCommander{app: a}

	cmd := &cobra.Command{
		Use:   "chunk FILE",
		Short: "Show how a document is split into chunks",
		Long:  chunkLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(args[0])
		},
	}

	cmd.Flags().IntVarP(&cmder.size, "size", "s", 0, "Target chunk size in characters (default from config)")
	cmd.Flags().StringVarP(&cmder.output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

func (c *chunkCommander) run(path string) error {
	if err := validOutput(c.output); err != nil {
		return err
	}
	doc, err := c.loadDocument(path)
	if err != nil {
		return err
	}

	size := c.size
	if size <= 0 {
		size = c.cfg.TopicChunkSize
	}
	chunks := chunker.Split(doc.Text, size)

	views := make([]chunkView, len(chunks))
	for i, ch := range chunks {
		views[i] = chunkView{
			Index:  i,
			Chars:  len(ch),
			Words:  chunker.CountWords(ch),
			Tokens: chunker.EstimateTokens(ch),
			Head:   head(ch, 60),
		}
	}

	if c.output != outputText {
		return encode(c.out, c.output, views)
	}
	fmt.Fprintf(c.out, "%d chunks (target %d chars)\n", len(views), size)
	for _, v := range views {
		fmt.Fprintf(c.out, "[%d] %d chars, %d words, ~%d tokens: %s\n", v.Index, v.Chars, v.Words, v.Tokens, v.Head)
	}
	return nil
}

// head returns the first n runes of s on a single line.
func head(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
