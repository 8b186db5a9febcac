package inbound

import (
	"context"

	"github.com/TomBelfast/AiPodcast/domain"
)

type AssemblePodcastParams struct {
	JobID        string
	Title        string
	Conversation domain.Dialogue
	Voices       domain.VoiceAssignment
	UploadRemote bool
}

type AssemblePodcastResult struct {
	Filename  string
	Size      int64
	RemoteURL string
}

// PodcastAssemblerPort runs the approve stage: synthesize every turn, persist
// the concatenated audio locally and optionally mirror it to object storage.
type PodcastAssemblerPort interface {
	Assemble(ctx context.Context, params AssemblePodcastParams) (*AssemblePodcastResult, error)
}
