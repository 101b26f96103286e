package topics

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docstudy/internal/chunker"
)

// Proposer suggests topic candidates for one chunk of a document. part is
// 1-based. An error means the chunk contributes no candidates; errors
// wrapping ErrMalformed indicate an unparseable response.
type Proposer interface {
	ProposeTopics(ctx context.Context, chunk string, part, total int) ([]Topic, error)
}

// Config controls topic detection.
type Config struct {
	ChunkSize     int // Target chunk size in characters.
	MinWords      int // Topics below this many words are merged forward.
	MaxConcurrent int // Chunks proposed in parallel.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:     chunker.DefaultChunkSize,
		MinWords:      DefaultMinWords,
		MaxConcurrent: 4,
	}
}

// ChunkReport describes the outcome of proposing topics for one chunk.
type ChunkReport struct {
	Part       int
	Total      int
	Candidates int
	Err        error
}

// Detector finds the chapter-level topics of a document.
type Detector struct {
	proposer Proposer
	log      *slog.Logger
	cfg      Config
}

func NewDetector(p Proposer, log *slog.Logger, cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.MinWords <= 0 {
		cfg.MinWords = def.MinWords
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = def.MaxConcurrent
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Detector{proposer: p, log: log, cfg: cfg}
}

// DetectTopics returns the ordered topic list for text. It is never empty.
func (d *Detector) DetectTopics(ctx context.Context, text string) []Topic {
	return d.Detect(ctx, text, nil)
}

// Detect is DetectTopics with a callback invoked once per chunk as its
// proposal completes. Callbacks are serialized but arrive in completion
// order.
func (d *Detector) Detect(ctx context.Context, text string, onChunk func(ChunkReport)) []Topic {
	if strings.TrimSpace(text) == "" {
		d.log.Warn("empty document, using full document topic")
		return []Topic{FullDocument(text)}
	}

	chunks := chunker.Split(text, d.cfg.ChunkSize)
	d.log.Info("split document into chunks", "chunks", len(chunks))

	// Candidates are gathered per chunk so the final order is chunk order,
	// then discovery order, regardless of completion order.
	perChunk := make([][]Topic, len(chunks))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(d.cfg.MaxConcurrent)
	for i, chunk := range chunks {
		g.Go(func() error {
			part := i + 1
			log := d.log.With("chunk", part, "of", len(chunks))
			log.Debug("proposing topics", "est_tokens", chunker.EstimateTokens(chunk))

			candidates, err := d.proposer.ProposeTopics(ctx, chunk, part, len(chunks))
			switch {
			case errors.Is(err, ErrMalformed):
				log.Warn("unparseable topic proposal, skipping chunk", "error", err)
				candidates = nil
			case err != nil:
				log.Error("topic proposal failed, skipping chunk", "error", err)
				candidates = nil
			default:
				log.Info("found topics in chunk", "topics", len(candidates))
			}
			perChunk[i] = candidates

			if onChunk != nil {
				mu.Lock()
				onChunk(ChunkReport{Part: part, Total: len(chunks), Candidates: len(candidates), Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	var all []Topic
	for _, c := range perChunk {
		all = append(all, c...)
	}

	deduped := Deduplicate(all)
	d.log.Info("deduplicated topics", "candidates", len(all), "unique", len(deduped))

	final := MergeSmall(deduped, text, d.cfg.MinWords)
	d.log.Info("merged small topics", "topics", len(final), "min_words", d.cfg.MinWords)

	if len(final) == 0 {
		d.log.Warn("no topics detected, using full document topic")
		return []Topic{FullDocument(text)}
	}
	return final
}
