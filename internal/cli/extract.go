package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docstudy/internal/topics"
)

type extractCommander struct {
	*app
	start string
	next  string
}

func newExtractCmd(a *app) *cobra.Command {
	cmder := &extractCommander{app: a}

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Print the text between two markers",
		Long: `Print the document text starting at --start and ending before --next.
Markers are matched by progressively shorter word prefixes. No model call is made.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(args[0])
		},
	}

	cmd.Flags().StringVar(&cmder.start, "start", "", "Start marker (required)")
	cmd.Flags().StringVar(&cmder.next, "next", "", "Start marker of the following topic")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func (c *extractCommander) run(path string) error {
	if strings.TrimSpace(c.start) == "" {
		return fmt.Errorf("--start must not be blank")
	}
	doc, err := c.loadDocument(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, topics.Extract(doc.Text, c.start, c.next))
	return nil
}
