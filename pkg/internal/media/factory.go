package media

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
)

// H is the configured media host, wired up once during boot.
var H Host

// NewHostFromConfig builds the media host named by the `media.type` setting.
func NewHostFromConfig(ctx context.Context) (Host, error) {
	switch viper.GetString("media.type") {
	case "memory":
		return NewMemoryHost(), nil
	case "s3":
		return NewS3Host(ctx, S3HostConfig{
			Bucket:          viper.GetString("media.s3_bucket"),
			Folder:          viper.GetString("media.s3_folder"),
			Region:          viper.GetString("media.s3_region"),
			Endpoint:        viper.GetString("media.s3_endpoint"),
			AccessKeyID:     viper.GetString("media.s3_access_key_id"),
			SecretAccessKey: viper.GetString("media.s3_secret_access_key"),
			PublicBaseURL:   viper.GetString("media.public_base_url"),
		})
	default:
		return nil, fmt.Errorf("unknown media host type: %s", viper.GetString("media.type"))
	}
}
