package migrate

import (
	"context"

	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/repo/model"
	"gorm.io/gorm"
)

func Table(ctx context.Context, db *gorm.DB) error {
	d := db.WithContext(ctx)
	models := []any{
		&model.Reagent{},
	}
	for _, m := range models {
		if err := d.AutoMigrate(m); err != nil {
			logger.Errorf(ctx, "migrate table err: %+v", err)
			return err
		}
	}
	return nil
}
