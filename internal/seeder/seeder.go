package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/nhoyhub/orderhub/internal/config"
	"github.com/nhoyhub/orderhub/internal/entity"
	repo "github.com/nhoyhub/orderhub/internal/repository/order"
)

// Seeder fills the in-memory order store with dummy data. Since state lives
// only in memory, this runs on every process start.
type Seeder struct {
	repo   *repo.Repository
	cfg    config.Config
	logger *zap.Logger
}

// New constructs a Seeder over the order repository.
func New(r *repo.Repository, cfg config.Config, logger *zap.Logger) *Seeder {
	return &Seeder{repo: r, cfg: cfg, logger: logger}
}

// Module provides the seeder and runs it during application startup.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(s *Seeder) error {
		return s.Orders(context.Background())
	}),
)

// Orders appends the configured number of dummy orders. Every third order is
// approved with a download link, every remaining fifth rejected, the rest
// pending; creation times step back one hour per order so listings have a
// stable newest-first shape.
func (s *Seeder) Orders(ctx context.Context) error {
	now := time.Now()
	count := s.cfg.Orders.SeedCount

	for i := 1; i <= count; i++ {
		u := uuid.New()
		order := entity.Order{
			ID:        s.repo.ReserveID(),
			Name:      fmt.Sprintf("Dummy Item %d $%d", i, 100+i),
			UDID:      fmt.Sprintf("dummy-%d-%x", i, u[:6]),
			ImageURL:  "/images/" + s.cfg.Storage.PlaceholderName,
			Status:    seedStatus(i),
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		}
		if order.Status == entity.StatusApproved {
			link := fmt.Sprintf("http://example.com/download/%d", i)
			order.DownloadLink = &link
		}
		if err := s.repo.Insert(ctx, order); err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded orders", zap.Int("count", count))
	}
	return nil
}

func seedStatus(i int) string {
	switch {
	case i%3 == 0:
		return entity.StatusApproved
	case i%5 == 0:
		return entity.StatusRejected
	default:
		return entity.StatusPending
	}
}
