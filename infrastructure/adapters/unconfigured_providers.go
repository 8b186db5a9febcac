package adapters

import (
	"context"
	"errors"

	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
)

var ErrGenerationNotConfigured = errors.New("OPENAI_API_KEY is not configured, generation is disabled")
var ErrSynthesisNotConfigured = errors.New("ELEVEN_LABS_API_KEY is not configured, speech synthesis is disabled")

// Unconfigured providers are wired at startup when credentials are missing,
// so the pipeline halts with a configuration error at stage time instead of
// the process refusing to boot.
type unconfiguredDialogueStreamer struct{}

func NewUnconfiguredDialogueStreamer() outbound.DialogueStreamerPort {
	return &unconfiguredDialogueStreamer{}
}

func (s *unconfiguredDialogueStreamer) Stream(_ context.Context, _ outbound.StreamDialogueRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)
	errCh <- ErrGenerationNotConfigured
	close(out)
	close(errCh)
	return out, errCh
}

type unconfiguredSpeechSynthesizer struct{}

func NewUnconfiguredSpeechSynthesizer() outbound.SpeechSynthesizerPort {
	return &unconfiguredSpeechSynthesizer{}
}

func (s *unconfiguredSpeechSynthesizer) Synthesize(_ context.Context, _ outbound.SynthesizeSpeechRequest) ([]byte, error) {
	return nil, ErrSynthesisNotConfigured
}
