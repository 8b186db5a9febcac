package mock_providers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
	"github.com/TomBelfast/AiPodcast/domain"
)

const tokenDelay = 50 * time.Millisecond

type mockDialogueStreamer struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
}

// NewDialogueStreamer streams a canned two-speaker conversation token by
// token, so the whole pipeline can run offline under MOCK_PROVIDERS=true.
func NewDialogueStreamer(workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.DialogueStreamerPort {
	return &mockDialogueStreamer{
		logger:     logger,
		workerPool: workerPool,
	}
}

func (m *mockDialogueStreamer) Stream(ctx context.Context, req outbound.StreamDialogueRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	payload := cannedConversation(req)

	err := m.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		for _, chunk := range splitIntoChunks(payload, 24) {
			select {
			case <-ctx.Done():
				return
			case out <- chunk:
				time.Sleep(tokenDelay)
			}
		}
		m.logger.Info("Mock dialogue stream finished")
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

func cannedConversation(req outbound.StreamDialogueRequest) string {
	title := req.Title
	if title == "" {
		title = domain.DefaultTitle
	}
	conversation := map[string]interface{}{
		"conversation": domain.Dialogue{
			{Speaker: domain.SpeakerOne, Text: "Welcome to " + title + ", today we are looking at a listener submission."},
			{Speaker: domain.SpeakerTwo, Text: "That is right, and the source material runs to " + lengthLabel(req.Content) + "."},
			{Speaker: domain.SpeakerOne, Text: "Let us get into it."},
			{Speaker: domain.SpeakerTwo, Text: "Thanks for listening, see you next time."},
		},
	}
	payload, _ := json.Marshal(conversation)
	return string(payload)
}

func lengthLabel(content string) string {
	if len(content) > 1000 {
		return "quite a few pages"
	}
	return "a short note"
}

func splitIntoChunks(payload string, size int) []string {
	chunks := make([]string, 0, len(payload)/size+1)
	for len(payload) > size {
		chunks = append(chunks, payload[:size])
		payload = payload[size:]
	}
	if payload != "" {
		chunks = append(chunks, payload)
	}
	return chunks
}
