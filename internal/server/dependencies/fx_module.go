package dependencies

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/mbgplatform/mbg/internal/log"
	"github.com/mbgplatform/mbg/internal/server/db"
)

var Module = fx.Module("dependencies",
	fx.Provide(log.New),
	fx.Provide(db.NewGorm),
	fx.Provide(db.NewStore),
	fx.Invoke(func(lc fx.Lifecycle, gdb *gorm.DB) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return db.Migrate(ctx, gdb)
			},
		})
	}),
)
