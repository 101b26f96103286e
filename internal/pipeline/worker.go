package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/docstudy/internal/loader"
	"github.com/dgallion1/docstudy/internal/topics"
)

// Worker processes a single document job.
type Worker struct {
	proposer topics.Proposer
	docs     *DocumentStore
	log      *slog.Logger
	topicCfg topics.Config
	loadOpts loader.Options
}

func NewWorker(proposer topics.Proposer, docs *DocumentStore, log *slog.Logger, topicCfg topics.Config, loadOpts loader.Options) *Worker {
	return &Worker{
		proposer: proposer,
		docs:     docs,
		log:      log,
		topicCfg: topicCfg,
		loadOpts: loadOpts,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Load
	job.SetStatus(StatusParsing, "parsing")
	l, err := loader.ForFile(job.Filename, w.loadOpts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := l.Load(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("load failed", "error", err)
		job.AddError(fmt.Sprintf("load: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	// The upload is no longer needed once its text is extracted.
	job.SetFileData(nil)

	if job.Title != "" {
		doc.Title = job.Title
	}
	if strings.TrimSpace(doc.Text) == "" {
		log.Warn("no text extracted")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	hash := ContentHashHex([]byte(doc.Text))
	job.SetContentHash(hash)

	// Phase 1.5: Dedup check
	if existing := w.docs.FindByHash(hash); existing != nil {
		log.Info("duplicate document, skipping", "existing_doc_id", existing.ID)
		job.SetDocID(existing.ID)
		job.SetTopicsDetected(len(existing.Topics))
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 2: Detect topics
	job.SetStatus(StatusDetecting, "detecting")
	start := time.Now()
	failed := 0
	detector := topics.NewDetector(
		&RetryingProposer{Next: w.proposer, Log: log},
		log,
		w.topicCfg,
	)
	found := detector.Detect(ctx, doc.Text, func(r topics.ChunkReport) {
		// Malformed output still counts as an answer from the model.
		if r.Err != nil && !errors.Is(r.Err, topics.ErrMalformed) {
			failed++
		}
		job.RecordChunk(r)
	})

	if ctx.Err() != nil {
		log.Warn("detection cancelled", "error", ctx.Err())
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "detecting")
		return
	}
	snap := job.Snapshot()
	if failed > 0 && failed == snap.Progress.TotalChunks {
		log.Error("every chunk failed, not storing document", "chunks", failed)
		job.SetStatus(StatusFailed, "detecting")
		return
	}
	log.Info("topics detected", "topics", len(found), "elapsed", time.Since(start))

	// Phase 3: Store
	w.docs.Put(&Document{
		ID:          job.DocID,
		Title:       doc.Title,
		Filename:    job.Filename,
		Pages:       doc.Pages,
		ContentHash: hash,
		Topics:      found,
		CreatedAt:   job.CreatedAt,
		Text:        doc.Text,
	})
	job.SetTopicsDetected(len(found))
	job.SetStatus(StatusCompleted, "done")
}
