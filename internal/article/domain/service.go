package domain

import (
	"context"
	"errors"
)

// CreateArticleRequest is the create shape. Price is a pointer so a missing
// value can be told apart from an explicit 0.
type CreateArticleRequest struct {
	Title        string   `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Category     *string  `json:"category"`
	Location     *string  `json:"location"`
	ContactEmail *string  `json:"contact_email"`
}

// UpdateArticleRequest is the partial-update shape: only fields present in
// the request body are applied, omitted fields are left untouched.
type UpdateArticleRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Category     *string  `json:"category"`
	Location     *string  `json:"location"`
	ContactEmail *string  `json:"contact_email"`
}

// ListArticlesRequest carries raw query parameters. Skip and Limit stay
// pointers so out-of-range values are rejected rather than defaulted.
type ListArticlesRequest struct {
	Skip     *int
	Limit    *int
	Category string
	Search   string
}

type Service interface {
	Create(ctx context.Context, req CreateArticleRequest) (Article, error)
	List(ctx context.Context, req ListArticlesRequest) ([]Article, error)
	GetByID(ctx context.Context, id int64) (Article, error)
	Update(ctx context.Context, id int64, req UpdateArticleRequest) (Article, error)
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]string, error)
}

var (
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidLocation = errors.New("invalid_location")
	ErrInvalidEmail    = errors.New("invalid_contact_email")
	ErrInvalidSkip     = errors.New("invalid_skip")
	ErrInvalidLimit    = errors.New("invalid_limit")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
