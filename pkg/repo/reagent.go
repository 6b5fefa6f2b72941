package repo

import (
	"context"

	"github.com/scienceol/equivalents/pkg/repo/model"
)

// CatalogRepo persists the reagent catalog as one sequence. Save replaces
// the whole stored sequence; it never appends.
type CatalogRepo interface {
	Load(ctx context.Context) ([]*model.Reagent, error)
	Save(ctx context.Context, rows []*model.Reagent) error
	Ping(ctx context.Context) error
}
