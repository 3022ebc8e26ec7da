// Seeds sample open procurement requests for local development.
// Clears the table first.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dpamis/procurement-api/internal/domain/entity"
	"github.com/dpamis/procurement-api/internal/infrastructure/postgres"
	"github.com/dpamis/procurement-api/pkg/config"
	"github.com/dpamis/procurement-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	repo := postgres.NewPublicRequestRepository(pool)
	if err := repo.DeleteAll(); err != nil {
		log.Fatal().Err(err).Msg("clear public requests")
	}

	deadline := time.Now().AddDate(0, 0, 14)
	samples := []struct {
		product string
		kg      int64
	}{
		{"Irish Potatoes", 15000},
		{"Beans", 8000},
		{"Cassava", 6000},
	}

	now := time.Now()
	for _, s := range samples {
		req := &entity.PublicRequest{
			ID:              uuid.New().String(),
			Product:         s.product,
			TotalQuantityKg: decimal.NewFromInt(s.kg),
			Deadline:        deadline,
			Status:          entity.RequestOpen,
			PostedBy:        entity.DefaultPostedBy,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := repo.Create(req); err != nil {
			log.Fatal().Err(err).Str("product", s.product).Msg("seed public request")
		}
		log.Info().Str("product", s.product).Int64("kg", s.kg).Msg("seeded")
	}

	log.Info().Msg("public requests seeded")
}
