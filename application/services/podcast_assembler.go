package services

import (
	"context"

	"github.com/TomBelfast/AiPodcast/application/ports/inbound"
	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
)

type podcastAssembler struct {
	logger        outbound.LoggerPort
	audioProducer inbound.AudioProducerPort
	localStore    outbound.LocalArtifactStorePort
	remoteStore   outbound.RemoteArtifactStorePort
}

// NewPodcastAssembler wires the approve stage. remoteStore may be nil when no
// object-storage credentials are configured; local persistence alone then
// satisfies the stage.
func NewPodcastAssembler(logger outbound.LoggerPort, audioProducer inbound.AudioProducerPort,
	localStore outbound.LocalArtifactStorePort, remoteStore outbound.RemoteArtifactStorePort) inbound.PodcastAssemblerPort {
	return &podcastAssembler{
		logger:        logger,
		audioProducer: audioProducer,
		localStore:    localStore,
		remoteStore:   remoteStore,
	}
}

func (a *podcastAssembler) Assemble(ctx context.Context, params inbound.AssemblePodcastParams) (*inbound.AssemblePodcastResult, error) {
	items, err := BuildSynthesisRequest(params.Conversation, params.Voices)
	if err != nil {
		return nil, err
	}

	audio, err := a.audioProducer.Produce(ctx, items)
	if err != nil {
		return nil, err
	}

	// Local persistence is the durability floor; it is never skipped and its
	// failure fails the stage.
	filename, err := a.localStore.Save(audio, params.JobID, params.Title)
	if err != nil {
		return nil, err
	}

	result := &inbound.AssemblePodcastResult{
		Filename: filename,
		Size:     int64(len(audio)),
	}

	if params.UploadRemote {
		result.RemoteURL = a.mirrorRemote(ctx, audio, params)
	}

	return result, nil
}

// mirrorRemote is best-effort: every failure is logged and swallowed so the
// stage still succeeds on the local artifact.
func (a *podcastAssembler) mirrorRemote(ctx context.Context, audio []byte, params inbound.AssemblePodcastParams) string {
	if a.remoteStore == nil {
		a.logger.Warn("Remote upload requested but object storage is not configured, keeping local artifact only")
		return ""
	}

	url, err := a.remoteStore.Upload(ctx, audio, params.JobID, params.Title)
	if err != nil {
		a.logger.ErrorWithFields(err, "Remote upload failed, keeping local artifact only", map[string]interface{}{
			"job_id": params.JobID,
		})
		return ""
	}
	return url
}
