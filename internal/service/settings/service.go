package settings

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	repo "github.com/nhoyhub/orderhub/internal/repository/settings"
	"github.com/nhoyhub/orderhub/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/nhoyhub/orderhub/service/settings")

// Service exposes admin configuration reads and writes.
type Service struct {
	repo   *repo.Repository
	logger *zap.Logger
}

// NewService wires a new Service instance.
func NewService(r *repo.Repository, logger *zap.Logger) *Service {
	return &Service{repo: r, logger: logger}
}

// All returns every configuration entry.
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	ctx, span := serviceTracer.Start(ctx, "SettingsService.All")
	defer span.End()

	values, err := s.repo.All(ctx)
	if err != nil {
		return nil, errorbank.Internal("failed to load config", errorbank.WithCause(err))
	}
	return values, nil
}

// SetPublicImageURL overwrites the public display image URL.
func (s *Service) SetPublicImageURL(ctx context.Context, url string) error {
	ctx, span := serviceTracer.Start(ctx, "SettingsService.SetPublicImageURL")
	defer span.End()

	if err := s.repo.SetPublicImageURL(ctx, url); err != nil {
		return errorbank.Internal("failed to update config", errorbank.WithCause(err))
	}
	s.logger.Info("public image url updated")
	return nil
}

// SetEsignURL overwrites one of the five esign slots.
func (s *Service) SetEsignURL(ctx context.Context, index int, url string) error {
	ctx, span := serviceTracer.Start(ctx, "SettingsService.SetEsignURL", trace.WithAttributes(attribute.Int("esign.index", index)))
	defer span.End()

	if err := s.repo.SetEsignURL(ctx, index, url); err != nil {
		if errors.Is(err, repo.ErrUnknownSlot) {
			return errorbank.BadRequest("esign index must be between 1 and 5")
		}
		return errorbank.Internal("failed to update config", errorbank.WithCause(err))
	}
	s.logger.Info("esign image url updated", zap.Int("index", index))
	return nil
}
