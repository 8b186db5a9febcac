package mock_providers

import (
	"bytes"
	"context"

	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
)

// mp3FrameHeader is a valid MPEG-1 Layer III frame sync so players accept
// the fake output.
var mp3FrameHeader = []byte{0xFF, 0xFB, 0x90, 0x00}

type mockSpeechSynthesizer struct {
	logger outbound.LoggerPort
}

func NewSpeechSynthesizer(logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &mockSpeechSynthesizer{
		logger: logger,
	}
}

// Synthesize produces deterministic pseudo-audio whose length tracks the
// utterance length, which keeps the save/download round trip meaningful.
func (m *mockSpeechSynthesizer) Synthesize(_ context.Context, req outbound.SynthesizeSpeechRequest) ([]byte, error) {
	var buffer bytes.Buffer
	buffer.Write(mp3FrameHeader)
	buffer.WriteString(req.VoiceID)
	buffer.WriteString(":")
	buffer.WriteString(req.Text)

	m.logger.DebugWithFields("Mock synthesis", map[string]interface{}{
		"voice": req.VoiceID,
		"bytes": buffer.Len(),
	})
	return buffer.Bytes(), nil
}
