package media

import (
	"context"
	"io"
)

// Host is the external media hosting provider: it accepts file bytes and
// hands back a public URL, which is the only thing persisted on a story.
type Host interface {
	Upload(ctx context.Context, name string, contentType string, body io.Reader) (string, error)
}
