package repository

import (
	"context"

	"github.com/smallbiznis/cube/internal/article/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, article *domain.Article) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO articles (id, title, description, price, category, location, contact_email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID,
		article.Title,
		article.Description,
		article.Price,
		article.Category,
		article.Location,
		article.ContactEmail,
		article.CreatedAt,
		article.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Article, error) {
	var article domain.Article
	err := db.WithContext(ctx).Raw(
		`SELECT id, title, description, price, category, location, contact_email, created_at, updated_at
		 FROM articles WHERE id = ?`,
		id,
	).Scan(&article).Error
	if err != nil {
		return nil, err
	}
	if article.ID == 0 {
		return nil, nil
	}
	return &article, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Article, error) {
	var articles []domain.Article
	stmt := db.WithContext(ctx).Model(&domain.Article{})
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		stmt = stmt.Where("LOWER(title) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	err := stmt.
		Order("created_at DESC, id DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, article *domain.Article) error {
	return db.WithContext(ctx).Exec(
		`UPDATE articles
		 SET title = ?, description = ?, price = ?, category = ?, location = ?, contact_email = ?, updated_at = ?
		 WHERE id = ?`,
		article.Title,
		article.Description,
		article.Price,
		article.Category,
		article.Location,
		article.ContactEmail,
		article.UpdatedAt,
		article.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Exec(`DELETE FROM articles WHERE id = ?`, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repo) DistinctCategories(ctx context.Context, db *gorm.DB) ([]string, error) {
	var categories []string
	err := db.WithContext(ctx).Raw(
		`SELECT DISTINCT category FROM articles WHERE category IS NOT NULL`,
	).Scan(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
