package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/darkahs/storefront/internal/adapter/cloudinary"
	"github.com/darkahs/storefront/internal/config"
	"github.com/darkahs/storefront/internal/pkg/imagecache"
	"github.com/darkahs/storefront/internal/usecase"
	"github.com/darkahs/storefront/internal/worker"
)

// Module assembles the facade, the upload pool and the HTTP server.
var Module = fx.Options(
	fx.Provide(
		NewStoreFacade,
		newUploadPool,
		func(p *worker.UploadPool) usecase.ImageUploader { return p },
		newImageCache,
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

func newUploadPool(uploader cloudinary.Uploader, cfg *config.Config, logger *slog.Logger) *worker.UploadPool {
	return worker.NewUploadPool(uploader, cfg.UploadPoolSize, logger)
}

func newImageCache(cfg *config.Config) *imagecache.Cache {
	return imagecache.New(cfg.ImageCacheSize, cfg.ImageCacheTTL, imagecache.NewFIFO())
}

func newHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:    cfg.RunAddress,
		Handler: engine,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Server     *http.Server
	Pool       *worker.UploadPool
	Config     *config.Config
	Logger     *slog.Logger
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Pool.Start(ctx)
			go func() {
				p.Logger.Info("http server listening", slog.String("address", p.Server.Addr))
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server failed", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			defer cancel()
			err := p.Server.Shutdown(shutdownCtx)
			p.Pool.Stop()
			return err
		},
	})
}
