// Package cli provides the docstudy command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dgallion1/docstudy/internal/config"
	"github.com/dgallion1/docstudy/internal/llm"
	"github.com/dgallion1/docstudy/internal/loader"
)

const rootLongDesc string = `docstudy turns a document into study material.

It splits the document into chapter-level topics, then extracts, summarizes,
quizzes or answers questions about them.

Examples:
  docstudy topics book.pdf
  docstudy summarize book.pdf --topic 2
  docstudy quiz notes.md --topic 0 --output yaml
  docstudy ask book.pdf "what is zero shot prompting?"`

const rootShortDesc string = "docstudy - study tools for long documents"

// app holds what every subcommand shares once flags are parsed.
type app struct {
	configPath string
	debug      bool

	cfg config.Config
	log *slog.Logger

	// newModel builds the model client; tests replace it.
	newModel func(cfg config.Config) model
	out      io.Writer
}

func NewRootCmd() *cobra.Command {
	a := &app{
		newModel: func(cfg config.Config) model {
			return llm.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicBaseURL)
		},
		out: os.Stdout,
	}
	return newRootCmd(a)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "docstudy",
		Short:        rootShortDesc,
		Long:         rootLongDesc,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env file is fine.
			_ = godotenv.Load()

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := slog.LevelWarn
			if a.debug {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "docstudy.yaml", "Path to YAML config file (optional)")
	cmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable debug logging")

	cmd.AddCommand(
		newChunkCmd(a),
		newTopicsCmd(a),
		newExtractCmd(a),
		newSummarizeCmd(a),
		newQuizCmd(a),
		newAskCmd(a),
	)
	return cmd
}

func (a *app) loadDocument(path string) (*loader.Document, error) {
	l, err := loader.ForFile(path, loader.Options{PDFFallbackPdftotext: a.cfg.PDFFallbackPdftotext})
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := l.Load(f, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

func (a *app) client() (model, error) {
	if err := a.cfg.ValidateModel(); err != nil {
		return nil, err
	}
	return a.newModel(a.cfg), nil
}
