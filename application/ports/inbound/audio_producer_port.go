package inbound

import (
	"context"

	"github.com/TomBelfast/AiPodcast/domain"
)

// AudioProducerPort synthesizes every item of a built synthesis request and
// returns the concatenated audio in playback order.
type AudioProducerPort interface {
	Produce(ctx context.Context, items []domain.SynthesisItem) ([]byte, error)
}
