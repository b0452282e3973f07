package media

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// MemoryHost keeps uploaded bytes in memory. It exists for tests and local
// development; the URLs it returns resolve nowhere.
type MemoryHost struct {
	mu    sync.RWMutex
	files map[string][]byte

	// FailNext makes the next upload return an error, then resets.
	FailNext bool
}

func NewMemoryHost() *MemoryHost {
	return &MemoryHost{files: make(map[string][]byte)}
}

func (h *MemoryHost) Upload(ctx context.Context, name string, contentType string, body io.Reader) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.FailNext {
		h.FailNext = false
		return "", fmt.Errorf("upload rejected")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	url := "memory://" + uuid.NewString() + "/" + name
	h.files[url] = data
	return url, nil
}

// Get returns the stored bytes for a URL handed out by Upload.
func (h *MemoryHost) Get(url string) ([]byte, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data, ok := h.files[url]
	return data, ok
}

// Len reports how many files were stored.
func (h *MemoryHost) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.files)
}
