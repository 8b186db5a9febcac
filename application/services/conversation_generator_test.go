package services

import (
	"context"
	"errors"
	"testing"

	"github.com/TomBelfast/AiPodcast/application/ports/inbound"
	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
	"github.com/TomBelfast/AiPodcast/domain"
	"github.com/TomBelfast/AiPodcast/infrastructure/adapters"
	"github.com/panjf2000/ants/v2"
)

type fakeDialogueStreamer struct {
	chunks  []string
	err     error
	lastReq outbound.StreamDialogueRequest
}

func (f *fakeDialogueStreamer) Stream(_ context.Context, req outbound.StreamDialogueRequest) (<-chan string, <-chan error) {
	f.lastReq = req
	out := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)
		for _, chunk := range f.chunks {
			out <- chunk
		}
		if f.err != nil {
			errCh <- f.err
		}
	}()
	return out, errCh
}

func collectSnapshots(t *testing.T, outCh <-chan domain.Dialogue, errCh <-chan error) ([]domain.Dialogue, error) {
	t.Helper()
	var snapshots []domain.Dialogue
	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return snapshots, err
			}
		case snapshot, ok := <-outCh:
			if !ok {
				for err := range errCh {
					return snapshots, err
				}
				return snapshots, nil
			}
			snapshots = append(snapshots, snapshot)
		}
	}
}

func newTestPool(t *testing.T) *ants.Pool {
	t.Helper()
	pool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	t.Cleanup(pool.Release)
	return pool
}

func TestConversationGenerator_ProgressiveRefinement(t *testing.T) {
	streamer := &fakeDialogueStreamer{
		chunks: []string{
			`{"conversation":[{"speaker":"Speaker1","text":"Hi"}`,
			`,{"speaker":"Speaker2","text":"Hello"}`,
			`,{"speaker":"Speaker1","text":"Bye"}]}`,
		},
	}
	generator := NewConversationGenerator(adapters.NewZerologWrapper(), streamer, newTestPool(t))

	outCh, errCh := generator.Generate(context.Background(), inbound.GenerateConversationParams{
		Content:  "source text",
		Language: "pl",
	})

	snapshots, err := collectSnapshots(t, outCh, errCh)
	if err != nil {
		t.Fatal("Received an error:", err)
	}
	if len(snapshots) == 0 {
		t.Fatal("No snapshots emitted")
	}

	for i := 1; i < len(snapshots); i++ {
		if len(snapshots[i]) < len(snapshots[i-1]) {
			t.Errorf("snapshot %d shrank from %d to %d turns", i, len(snapshots[i-1]), len(snapshots[i]))
		}
	}

	final := snapshots[len(snapshots)-1]
	if len(final) != 3 {
		t.Fatalf("final dialogue has %d turns, expected 3", len(final))
	}
	if final[0].Speaker != domain.SpeakerOne || final[0].Text != "Hi" {
		t.Errorf("unexpected first turn: %+v", final[0])
	}
	if final[2].Speaker != domain.SpeakerOne || final[2].Text != "Bye" {
		t.Errorf("unexpected last turn: %+v", final[2])
	}
}

func TestConversationGenerator_ResolvesLanguageForStreamer(t *testing.T) {
	streamer := &fakeDialogueStreamer{
		chunks: []string{`{"conversation":[{"speaker":"Speaker1","text":"Hi"}]}`},
	}
	generator := NewConversationGenerator(adapters.NewZerologWrapper(), streamer, newTestPool(t))

	outCh, errCh := generator.Generate(context.Background(), inbound.GenerateConversationParams{
		Content:  "source text",
		Language: "not-a-language",
	})
	if _, err := collectSnapshots(t, outCh, errCh); err != nil {
		t.Fatal("Received an error:", err)
	}

	if streamer.lastReq.Language != domain.DefaultLanguage {
		t.Errorf("streamer language = %q, expected fallback %q", streamer.lastReq.Language, domain.DefaultLanguage)
	}
}

func TestConversationGenerator_RecoversTurnsFromMalformedClose(t *testing.T) {
	// The model emitted two complete turns but never closed the array.
	streamer := &fakeDialogueStreamer{
		chunks: []string{
			`{"conversation":[{"speaker":"Speaker1","text":"Hi"},`,
			`{"speaker":"Speaker2","text":"Hello"},`,
		},
	}
	generator := NewConversationGenerator(adapters.NewZerologWrapper(), streamer, newTestPool(t))

	outCh, errCh := generator.Generate(context.Background(), inbound.GenerateConversationParams{Content: "x"})
	snapshots, err := collectSnapshots(t, outCh, errCh)
	if err != nil {
		t.Fatal("Received an error:", err)
	}
	final := snapshots[len(snapshots)-1]
	if len(final) != 2 {
		t.Fatalf("final dialogue has %d turns, expected 2 recovered turns", len(final))
	}
}

func TestConversationGenerator_StreamerErrorTerminates(t *testing.T) {
	streamErr := errors.New("OpenAI quota exceeded, check your plan and billing details")
	streamer := &fakeDialogueStreamer{err: streamErr}
	generator := NewConversationGenerator(adapters.NewZerologWrapper(), streamer, newTestPool(t))

	outCh, errCh := generator.Generate(context.Background(), inbound.GenerateConversationParams{Content: "x"})
	snapshots, err := collectSnapshots(t, outCh, errCh)
	if err == nil {
		t.Fatal("expected the streamer error to surface")
	}
	if len(snapshots) != 0 {
		t.Errorf("expected no snapshots, got %d", len(snapshots))
	}
}
