package services

import (
	"errors"

	"github.com/TomBelfast/AiPodcast/domain"
)

var ErrEmptyConversation = errors.New("conversation must contain at least one turn")

// BuildSynthesisRequest maps a finished dialogue and a voice assignment onto
// the ordered synthesis items the speech provider consumes, one per turn.
// Beyond the conversation being present and non-empty nothing is validated;
// malformed speaker tags are an upstream schema violation.
func BuildSynthesisRequest(conversation domain.Dialogue, voices domain.VoiceAssignment) ([]domain.SynthesisItem, error) {
	if len(conversation) == 0 {
		return nil, ErrEmptyConversation
	}

	items := make([]domain.SynthesisItem, 0, len(conversation))
	for _, turn := range conversation {
		items = append(items, domain.SynthesisItem{
			Text:    turn.Text,
			VoiceID: voices.Resolve(turn.Speaker),
		})
	}
	return items, nil
}
