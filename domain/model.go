package domain

type Speaker string

const (
	SpeakerOne Speaker = "Speaker1"
	SpeakerTwo Speaker = "Speaker2"
)

const (
	DefaultVoiceOne = "21m00Tcm4TlvDq8ikWAM"
	DefaultVoiceTwo = "pNInz6obpgDQGcFmaJgB"
)

type DialogueTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Dialogue is an ordered two-speaker script; slice order is playback order.
type Dialogue []DialogueTurn

type VoiceAssignment struct {
	VoiceOne string
	VoiceTwo string
}

func NewVoiceAssignment(voiceOne string, voiceTwo string) VoiceAssignment {
	if voiceOne == "" {
		voiceOne = DefaultVoiceOne
	}
	if voiceTwo == "" {
		voiceTwo = DefaultVoiceTwo
	}
	return VoiceAssignment{
		VoiceOne: voiceOne,
		VoiceTwo: voiceTwo,
	}
}

// Resolve maps a speaker tag to its synthesis voice. Anything that is not
// SpeakerOne gets the second voice; malformed tags are an upstream schema
// violation, not validated here.
func (v VoiceAssignment) Resolve(speaker Speaker) string {
	if speaker == SpeakerOne {
		return v.VoiceOne
	}
	return v.VoiceTwo
}
