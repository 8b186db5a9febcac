package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
	"github.com/TomBelfast/AiPodcast/domain"
	"github.com/TomBelfast/AiPodcast/infrastructure/adapters"
)

type fakeSynthesizer struct {
	failOn string
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, req outbound.SynthesizeSpeechRequest) ([]byte, error) {
	if f.failOn != "" && req.Text == f.failOn {
		return nil, errors.New("synthesis blew up")
	}
	return []byte(fmt.Sprintf("[%s|%s]", req.VoiceID, req.Text)), nil
}

func TestAudioProducer_PreservesPlaybackOrder(t *testing.T) {
	producer := NewAudioProducer(adapters.NewZerologWrapper(), newTestPool(t), &fakeSynthesizer{})

	items := make([]domain.SynthesisItem, 0, 8)
	var expected bytes.Buffer
	for i := 0; i < 8; i++ {
		item := domain.SynthesisItem{
			Text:    fmt.Sprintf("utterance %d", i),
			VoiceID: "voice",
		}
		items = append(items, item)
		expected.WriteString(fmt.Sprintf("[voice|utterance %d]", i))
	}

	audio, err := producer.Produce(context.Background(), items)
	if err != nil {
		t.Fatal("Produce failed:", err)
	}
	if !bytes.Equal(audio, expected.Bytes()) {
		t.Errorf("concatenated audio out of order:\n got %s\nwant %s", audio, expected.Bytes())
	}
}

func TestAudioProducer_FirstErrorFailsTheBatch(t *testing.T) {
	producer := NewAudioProducer(adapters.NewZerologWrapper(), newTestPool(t), &fakeSynthesizer{failOn: "boom"})

	items := []domain.SynthesisItem{
		{Text: "fine", VoiceID: "voice"},
		{Text: "boom", VoiceID: "voice"},
		{Text: "also fine", VoiceID: "voice"},
	}

	if _, err := producer.Produce(context.Background(), items); err == nil {
		t.Fatal("expected the synthesis failure to surface")
	}
}
