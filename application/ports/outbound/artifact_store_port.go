package outbound

import (
	"context"
	"errors"
)

// ErrArtifactNotFound is the Not-Found condition for Resolve; it is not a
// failure of the store itself.
var ErrArtifactNotFound = errors.New("no artifact found for job id")

// LocalArtifactStorePort is the durability floor: every approved dialogue is
// written to local disk before any optional mirroring happens.
type LocalArtifactStorePort interface {
	Save(audio []byte, jobID string, title string) (filename string, err error)
	Resolve(jobID string) (path string, size int64, err error)
}

// RemoteArtifactStorePort mirrors an artifact to S3-compatible object storage.
// Upload is best-effort from the caller's perspective: any returned error is
// logged and swallowed, never failing the approve stage.
type RemoteArtifactStorePort interface {
	Upload(ctx context.Context, audio []byte, jobID string, title string) (url string, err error)
}
