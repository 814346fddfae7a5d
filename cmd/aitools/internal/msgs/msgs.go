package msgs

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanamz/aitools/pkg/assistant"
)

// InputSubmitMsg carries the text the user submitted from the input box.
type InputSubmitMsg struct {
	Text string
}

// ReplyKind tells which transcript label a finished request produces.
type ReplyKind int

const (
	ReplyChat ReplyKind = iota
	ReplySummary
)

// ReplyMsg is returned by the tea.Cmd that awaits a chat or summarize future.
type ReplyMsg struct {
	Kind   ReplyKind
	Text   string
	Err    error
	SentAt time.Time // when the request was dispatched
}

// InitDrainMsg fires after a short delay so that stale terminal responses
// (e.g. OSC 11 background-color replies) are discarded before focusing input.
type InitDrainMsg struct{}

// Await returns a tea.Cmd that blocks on f and delivers its outcome as a
// ReplyMsg stamped with the time Await was called. The model is only touched
// again when Update receives it.
func Await(ctx context.Context, kind ReplyKind, f *assistant.Future[string]) tea.Cmd {
	sent := time.Now()
	return func() tea.Msg {
		text, err := f.Wait(ctx)
		return ReplyMsg{Kind: kind, Text: text, Err: err, SentAt: sent}
	}
}
