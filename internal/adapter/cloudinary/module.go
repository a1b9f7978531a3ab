package cloudinary

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/darkahs/storefront/internal/config"
	"github.com/darkahs/storefront/internal/pkg/metrics"
	"github.com/darkahs/storefront/internal/pkg/retry"
)

// Module exposes the image host uploader to the fx graph.
var Module = fx.Provide(newUploader)

type uploaderParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func newUploader(p uploaderParams) (Uploader, error) {
	if p.Config.CloudinaryURL == "" {
		// Product image uploads fail with a clear error; everything else runs.
		return Disabled{}, nil
	}
	policy := retry.Policy{
		MaxAttempts: p.Config.UploadMaxRetries,
		Backoff:     retry.Linear(p.Config.UploadRetryDelay),
	}
	return NewHTTPUploader(p.Config.CloudinaryURL, policy, p.Logger, p.Metrics)
}
