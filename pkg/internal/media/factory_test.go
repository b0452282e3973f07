package media_test

import (
	"context"
	"testing"

	"github.com/spf13/viper"

	"github.com/devtales-app/backend/pkg/internal/media"
)

func TestNewHostFromConfig(t *testing.T) {
	t.Run("memory host", func(t *testing.T) {
		viper.Set("media.type", "memory")

		host, err := media.NewHostFromConfig(context.Background())
		if err != nil {
			t.Fatalf("NewHostFromConfig() error = %v", err)
		}
		if _, ok := host.(*media.MemoryHost); !ok {
			t.Fatalf("got %T, want *media.MemoryHost", host)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		viper.Set("media.type", "carrier-pigeon")

		if _, err := media.NewHostFromConfig(context.Background()); err == nil {
			t.Fatal("expected an error for an unknown media host type")
		}
	})

	t.Run("s3 host requires a bucket", func(t *testing.T) {
		viper.Set("media.type", "s3")
		viper.Set("media.s3_bucket", "")

		if _, err := media.NewHostFromConfig(context.Background()); err == nil {
			t.Fatal("expected an error for a missing bucket")
		}
	})
}
