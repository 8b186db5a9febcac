package dto

import "github.com/TomBelfast/AiPodcast/domain"

type ReceiveRequest struct {
	Transcript string                 `json:"transcript" binding:"required"`
	Title      string                 `json:"title"`
	Language   string                 `json:"language"`
	Metadata   map[string]interface{} `json:"metadata"`
}

type ProcessRequest struct {
	JobID      string                 `json:"jobId" binding:"required"`
	Transcript string                 `json:"transcript" binding:"required"`
	Title      string                 `json:"title"`
	Language   string                 `json:"language"`
	Metadata   map[string]interface{} `json:"metadata"`
}

type ApproveRequest struct {
	JobID         string            `json:"jobId" binding:"required"`
	Conversation  []DialogueTurnDTO `json:"conversation" binding:"required"`
	Title         string            `json:"title"`
	Voice1        string            `json:"voice1"`
	Voice2        string            `json:"voice2"`
	UploadToMinIO bool              `json:"uploadToMinIO"`
}

type GenerateRequest struct {
	Content  string `json:"content" binding:"required"`
	Title    string `json:"title"`
	Language string `json:"language"`
}

type DialogueTurnDTO struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

func (t DialogueTurnDTO) ToDomain() domain.DialogueTurn {
	return domain.DialogueTurn{
		Speaker: domain.Speaker(t.Speaker),
		Text:    t.Text,
	}
}

func ToDialogue(turns []DialogueTurnDTO) domain.Dialogue {
	dialogue := make(domain.Dialogue, 0, len(turns))
	for _, turn := range turns {
		dialogue = append(dialogue, turn.ToDomain())
	}
	return dialogue
}

func FromDialogue(dialogue domain.Dialogue) []DialogueTurnDTO {
	turns := make([]DialogueTurnDTO, 0, len(dialogue))
	for _, turn := range dialogue {
		turns = append(turns, DialogueTurnDTO{
			Speaker: string(turn.Speaker),
			Text:    turn.Text,
		})
	}
	return turns
}
