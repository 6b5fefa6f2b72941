package reagent

import (
	"context"

	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/repo"
	"github.com/scienceol/equivalents/pkg/repo/model"
	"gorm.io/gorm"
)

type reagentImpl struct {
	db *gorm.DB
}

// NewReagentRepo stores the catalog in the reagent table. Row order is
// the id order.
func NewReagentRepo(db *gorm.DB) repo.CatalogRepo {
	return &reagentImpl{db: db}
}

func (r *reagentImpl) Load(ctx context.Context) ([]*model.Reagent, error) {
	list := make([]*model.Reagent, 0, 32)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		logger.Errorf(ctx, "load reagents err: %+v", err)
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

// Save replaces every row in one transaction. Ids are reassigned in
// sequence order so that Load returns rows as they were saved.
func (r *reagentImpl) Save(ctx context.Context, rows []*model.Reagent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Reagent{}).Error; err != nil {
			logger.Errorf(ctx, "clear reagents err: %+v", err)
			return code.UpdateDataErr.WithErr(err)
		}
		for _, row := range rows {
			row.ID = 0
			if err := tx.Create(row).Error; err != nil {
				logger.Errorf(ctx, "insert reagent %s err: %+v", row.Name, err)
				return code.CreateDataErr.WithErr(err)
			}
		}
		return nil
	})
}

func (r *reagentImpl) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return code.QueryRecordErr.WithErr(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return code.QueryRecordErr.WithErr(err)
	}
	return nil
}
