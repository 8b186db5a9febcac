package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultTitle = "podcast"

// NewJobID mints the opaque token that threads one pipeline run through the
// stages. There is no registry and no lookup: the caller driving the pipeline
// carries the id forward on every call after receive.
func NewJobID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("job_%d_%s", time.Now().UnixMilli(), suffix)
}
