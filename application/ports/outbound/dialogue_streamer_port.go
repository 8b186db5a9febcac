package outbound

import "context"

type StreamDialogueRequest struct {
	Content  string
	Title    string
	Language string
}

// DialogueStreamerPort streams raw completion tokens for a dialogue prompt.
// Both channels are closed by the producer; an error on the error channel
// terminates the stream and a fresh call is required to restart generation.
type DialogueStreamerPort interface {
	Stream(ctx context.Context, req StreamDialogueRequest) (<-chan string, <-chan error)
}
