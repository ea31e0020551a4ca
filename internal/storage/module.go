package storage

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/nhoyhub/orderhub/internal/config"
)

// Module provides the image store and bootstraps the directory on start.
var Module = fx.Options(
	fx.Provide(func(cfg config.Config, logger *zap.Logger) *Store {
		return New(cfg.Storage.ImageDir, cfg.Storage.PlaceholderName, logger)
	}),
	fx.Invoke(func(lc fx.Lifecycle, s *Store) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return s.EnsureReady()
			},
		})
	}),
)
