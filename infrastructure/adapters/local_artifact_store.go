package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
	"github.com/TomBelfast/AiPodcast/domain"
	"github.com/rs/zerolog/log"
)

type localArtifactStore struct {
	audioDir string
}

func NewLocalArtifactStore(audioDir string) outbound.LocalArtifactStorePort {
	return &localArtifactStore{
		audioDir: audioDir,
	}
}

func (s *localArtifactStore) Save(audio []byte, jobID string, title string) (string, error) {
	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", s.audioDir).Msg("Failed to create the audio directory")
		return "", err
	}

	filename := domain.ArtifactFilename(title, jobID)
	path := filepath.Join(s.audioDir, filename)

	if err := os.WriteFile(path, audio, 0o644); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to write the audio artifact")
		return "", err
	}

	log.Info().
		Str("path", path).
		Int("size", len(audio)).
		Msg("Saved audio artifact locally")

	return filename, nil
}

// Resolve scans the audio directory for any mp3 whose name contains the job
// id and returns the first match in directory-listing order. Two artifacts
// sharing a job id substring make the pick non-deterministic; that ambiguity
// is accepted, not guarded against.
func (s *localArtifactStore) Resolve(jobID string) (string, int64, error) {
	entries, err := os.ReadDir(s.audioDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", 0, outbound.ErrArtifactNotFound
		}
		return "", 0, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, domain.ArtifactExtension) {
			continue
		}
		if !strings.Contains(name, jobID) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", 0, err
		}
		return filepath.Join(s.audioDir, name), info.Size(), nil
	}

	return "", 0, outbound.ErrArtifactNotFound
}
