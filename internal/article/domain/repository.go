package domain

import (
	"context"

	"gorm.io/gorm"
)

// ListFilter carries already-validated list parameters.
type ListFilter struct {
	Category string
	Search   string
	Skip     int
	Limit    int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, article *Article) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Article, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Article, error)
	Update(ctx context.Context, db *gorm.DB, article *Article) error
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
	DistinctCategories(ctx context.Context, db *gorm.DB) ([]string, error)
}
