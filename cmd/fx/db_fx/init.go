package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripmate/internal/config"
	"tripmate/internal/infra"
	"tripmate/internal/repositories"
)

var Module = fx.Provide(
	provideDB,
	providePlanRepository,
	provideDocumentRepository)

// provideDB yields a nil handle when POSTGRES_URL is unset.
func provideDB(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return db, nil
}

func providePlanRepository(db *gorm.DB) repositories.IPlanRepository {
	if db == nil {
		return nil
	}
	return repositories.NewPlanRepository(db)
}

func provideDocumentRepository(db *gorm.DB) repositories.IDocumentRepository {
	if db == nil {
		return nil
	}
	return repositories.NewDocumentRepository(db)
}
