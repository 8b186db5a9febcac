package domain

// SynthesisItem is one utterance resolved for the speech provider: the turn
// text paired with the voice its speaker maps to.
type SynthesisItem struct {
	Text    string
	VoiceID string
}
