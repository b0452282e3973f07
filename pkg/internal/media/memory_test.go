package media_test

import (
	"context"
	"strings"
	"testing"

	"github.com/devtales-app/backend/pkg/internal/media"
)

func TestMemoryHost(t *testing.T) {
	t.Run("upload returns a resolvable url", func(t *testing.T) {
		host := media.NewMemoryHost()

		url, err := host.Upload(context.Background(), "cover.png", "image/png", strings.NewReader("png-bytes"))
		if err != nil {
			t.Fatalf("Upload() error = %v", err)
		}

		data, ok := host.Get(url)
		if !ok {
			t.Fatalf("stored file not found under %q", url)
		}
		if string(data) != "png-bytes" {
			t.Fatalf("got %q, want the uploaded bytes", data)
		}
	})

	t.Run("distinct uploads get distinct urls", func(t *testing.T) {
		host := media.NewMemoryHost()
		ctx := context.Background()

		first, _ := host.Upload(ctx, "a.png", "image/png", strings.NewReader("a"))
		second, _ := host.Upload(ctx, "a.png", "image/png", strings.NewReader("b"))

		if first == second {
			t.Fatalf("got the same url %q for two uploads", first)
		}
		if host.Len() != 2 {
			t.Fatalf("got %d stored files, want 2", host.Len())
		}
	})

	t.Run("failure injection rejects one upload", func(t *testing.T) {
		host := media.NewMemoryHost()
		host.FailNext = true

		if _, err := host.Upload(context.Background(), "a.png", "image/png", strings.NewReader("a")); err == nil {
			t.Fatal("expected the injected upload failure")
		}
		if _, err := host.Upload(context.Background(), "a.png", "image/png", strings.NewReader("a")); err != nil {
			t.Fatalf("second upload should succeed, got %v", err)
		}
	})
}
