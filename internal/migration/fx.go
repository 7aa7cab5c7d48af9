package migration

import (
	articledomain "github.com/smallbiznis/cube/internal/article/domain"
	"github.com/smallbiznis/cube/internal/config"
	"github.com/smallbiznis/cube/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if !db.IsPostgres(cfg.DatabaseURL) {
			// sqlite has no versioned migration driver wired; AutoMigrate
			// gives local development the same idempotent schema.
			return conn.AutoMigrate(&articledomain.Article{})
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
