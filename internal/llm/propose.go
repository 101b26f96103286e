package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgallion1/docstudy/internal/topics"
)

const proposeMaxTokens = 4096

// ProposeTopics asks the model for the major topics of one chunk. Output
// that is not a JSON topic array is reported as topics.ErrMalformed wrapping
// a *ParseError.
func (c *Client) ProposeTopics(ctx context.Context, chunk string, part, total int) ([]topics.Topic, error) {
	text, err := c.Complete(ctx, "propose_topics", BuildTopicPrompt(chunk, part, total), proposeMaxTokens)
	if err != nil {
		return nil, err
	}
	return ParseTopics(text)
}

// ParseTopics decodes a topic array from model output.
func ParseTopics(text string) ([]topics.Topic, error) {
	var raw []topics.Topic
	if err := json.Unmarshal([]byte(StripCodeBlock(text)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", topics.ErrMalformed, &ParseError{Raw: text, Err: err})
	}
	out := make([]topics.Topic, 0, len(raw))
	for i := range raw {
		if ValidateTopic(&raw[i]) {
			out = append(out, raw[i])
		}
	}
	return out, nil
}
