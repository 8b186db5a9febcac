package dto

type NextStep struct {
	URL    string                 `json:"url"`
	Method string                 `json:"method"`
	Body   map[string]interface{} `json:"body"`
}

type ReceiveResponse struct {
	Success  bool     `json:"success"`
	JobID    string   `json:"jobId"`
	NextStep NextStep `json:"nextStep"`
}

type ProcessResponse struct {
	Success      bool              `json:"success"`
	JobID        string            `json:"jobId"`
	Conversation []DialogueTurnDTO `json:"conversation"`
	Title        string            `json:"title"`
	ApprovalURL  string            `json:"approvalUrl"`
}

type ApproveResponse struct {
	Success     bool    `json:"success"`
	JobID       string  `json:"jobId"`
	DownloadURL string  `json:"downloadUrl"`
	MinioURL    *string `json:"minioUrl"`
	Filename    string  `json:"filename"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// StreamEvent is one NDJSON line on the raw generation endpoint.
type StreamEvent struct {
	Type         string            `json:"type"`
	Turns        int               `json:"turns,omitempty"`
	Conversation []DialogueTurnDTO `json:"conversation,omitempty"`
	Error        string            `json:"error,omitempty"`
}
