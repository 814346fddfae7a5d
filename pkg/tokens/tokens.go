// Package tokens estimates how many tokens a prompt will cost.
//
// Counts come from the cl100k_base BPE vocabulary (the one used by the
// gpt-3.5/gpt-4 families). When the codec cannot be loaded the estimator
// falls back to roughly one token per four characters, which is close enough
// for English text and is also what Gemini prompts are measured with here.
package tokens

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"github.com/germanamz/aitools/pkg/chats/message"
)

// perMessageOverhead is the estimated token overhead for each message (role,
// structure delimiters, etc.).
const perMessageOverhead = 4

// Estimator counts tokens. The zero value uses the character heuristic; New
// returns one backed by the BPE codec.
type Estimator struct {
	codec tokenizer.Codec
}

var (
	sharedCodec tokenizer.Codec
	codecOnce   sync.Once
)

// New returns an Estimator backed by cl100k_base, or by the heuristic if the
// codec is unavailable.
func New() *Estimator {
	codecOnce.Do(func() {
		c, err := tokenizer.Get(tokenizer.Cl100kBase)
		if err == nil {
			sharedCodec = c
		}
	})

	return &Estimator{codec: sharedCodec}
}

// Exact reports whether counts come from the BPE codec.
func (e *Estimator) Exact() bool { return e != nil && e.codec != nil }

// Count returns the token count of text.
func (e *Estimator) Count(text string) int {
	if text == "" {
		return 0
	}

	if e.Exact() {
		ids, _, err := e.codec.Encode(text)
		if err == nil {
			return len(ids)
		}
	}

	return Heuristic(text)
}

// CountMessages estimates the prompt size of a conversation, including the
// per-message framing overhead.
func (e *Estimator) CountMessages(msgs []message.Message) int {
	n := 0
	for _, m := range msgs {
		n += perMessageOverhead + e.Count(m.Content)
	}
	return n
}

// Heuristic converts a character count to tokens at one token per four
// characters, rounding up.
func Heuristic(text string) int {
	return (len(text) + 3) / 4
}
