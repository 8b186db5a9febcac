package services

import (
	"bytes"
	"context"
	"sync"

	"github.com/TomBelfast/AiPodcast/application/ports/inbound"
	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
	"github.com/TomBelfast/AiPodcast/domain"
)

type audioProducer struct {
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
	synthesizer outbound.SpeechSynthesizerPort
}

func NewAudioProducer(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	synthesizer outbound.SpeechSynthesizerPort) inbound.AudioProducerPort {
	return &audioProducer{
		logger:      logger,
		workerPool:  workerPool,
		synthesizer: synthesizer,
	}
}

// Produce fans the items out on the worker pool and reassembles the per-turn
// audio by ordinal, so concurrent synthesis never reorders playback. The
// first failure cancels the remaining turns.
func (p *audioProducer) Produce(ctx context.Context, items []domain.SynthesisItem) ([]byte, error) {
	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]byte, len(items))
	errCh := make(chan error, len(items))
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		ordinal := i
		synthesisItem := item
		err := p.workerPool.Submit(func() {
			defer wg.Done()
			if newCtx.Err() != nil {
				return
			}
			audio, err := p.synthesizer.Synthesize(newCtx, outbound.SynthesizeSpeechRequest{
				Text:    synthesisItem.Text,
				VoiceID: synthesisItem.VoiceID,
			})
			if err != nil {
				p.logger.ErrorWithFields(err, "Failed to synthesize dialogue turn", map[string]interface{}{
					"ordinal": ordinal,
				})
				errCh <- err
				cancel()
				return
			}
			results[ordinal] = audio
		})
		if err != nil {
			wg.Done()
			errCh <- err
			cancel()
		}
	}

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	for _, audio := range results {
		buffer.Write(audio)
	}
	return buffer.Bytes(), nil
}
