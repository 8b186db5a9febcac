package inbound

import (
	"context"

	"github.com/TomBelfast/AiPodcast/domain"
)

type GenerateConversationParams struct {
	Content  string
	Title    string
	Language string
}

// ConversationGeneratorPort turns unstructured text into a two-speaker
// dialogue. The returned channel carries progressively larger snapshots of
// the dialogue; each emission supersedes the previous one and the last
// emission before the channel closes is authoritative. The sequence is
// finite, single-consumer and not resumable after an error.
type ConversationGeneratorPort interface {
	Generate(ctx context.Context, params GenerateConversationParams) (<-chan domain.Dialogue, <-chan error)
}
