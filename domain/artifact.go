package domain

import (
	"fmt"
	"strings"
)

const (
	ArtifactExtension = ".mp3"
	maxSlugLength     = 50
)

type Artifact struct {
	JobID     string
	Filename  string
	Size      int64
	LocalPath string
	RemoteKey string
}

// ArtifactFilename derives the artifact name for a job: the title reduced to
// an alphanumeric/underscore slug capped at 50 characters, then the job id
// and extension appended verbatim.
func ArtifactFilename(title string, jobID string) string {
	return fmt.Sprintf("%s_%s%s", SlugifyTitle(title), jobID, ArtifactExtension)
}

func SlugifyTitle(title string) string {
	if title == "" {
		title = DefaultTitle
	}
	var builder strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			builder.WriteRune(r)
		default:
			builder.WriteRune('_')
		}
		if builder.Len() >= maxSlugLength {
			break
		}
	}
	return builder.String()
}
