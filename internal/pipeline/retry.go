package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/docstudy/internal/llm"
	"github.com/dgallion1/docstudy/internal/topics"
)

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *llm.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 3

// RetryingProposer retries transient proposal failures with Backoff.
type RetryingProposer struct {
	Next topics.Proposer
	Log  *slog.Logger

	// Backoff overrides the package Backoff, mainly for tests.
	Backoff func(attempt int) time.Duration
}

func (p *RetryingProposer) ProposeTopics(ctx context.Context, chunk string, part, total int) ([]topics.Topic, error) {
	backoff := p.Backoff
	if backoff == nil {
		backoff = Backoff
	}

	var candidates []topics.Topic
	var lastErr error
	for attempt := range MaxRetries {
		candidates, lastErr = p.Next.ProposeTopics(ctx, chunk, part, total)
		if lastErr == nil || !IsRetryable(lastErr) || attempt == MaxRetries-1 {
			break
		}
		if p.Log != nil {
			p.Log.Warn("retryable proposal error", "chunk", part, "attempt", attempt, "error", lastErr)
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return candidates, lastErr
}
