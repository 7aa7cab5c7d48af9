package service

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/cube/internal/article/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	titleMinLen    = 3
	titleMaxLen    = 255
	categoryMaxLen = 100
	locationMaxLen = 255

	defaultLimit = 20
	maxLimit     = 100
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("article.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateArticleRequest) (domain.Article, error) {
	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		return domain.Article{}, err
	}
	if req.Price == nil || *req.Price < 0 {
		return domain.Article{}, domain.ErrInvalidPrice
	}
	if err := validateOptional(req.Category, categoryMaxLen, domain.ErrInvalidCategory); err != nil {
		return domain.Article{}, err
	}
	if err := validateOptional(req.Location, locationMaxLen, domain.ErrInvalidLocation); err != nil {
		return domain.Article{}, err
	}
	if err := validateEmail(req.ContactEmail); err != nil {
		return domain.Article{}, err
	}

	article := domain.Article{
		ID:           s.genID.Generate().Int64(),
		Title:        title,
		Description:  req.Description,
		Price:        *req.Price,
		Category:     req.Category,
		Location:     req.Location,
		ContactEmail: req.ContactEmail,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &article); err != nil {
		return domain.Article{}, err
	}

	s.log.Info("article created", zap.Int64("article_id", article.ID))
	return article, nil
}

func (s *Service) List(ctx context.Context, req domain.ListArticlesRequest) ([]domain.Article, error) {
	skip := 0
	if req.Skip != nil {
		if *req.Skip < 0 {
			return nil, domain.ErrInvalidSkip
		}
		skip = *req.Skip
	}

	limit := defaultLimit
	if req.Limit != nil {
		if *req.Limit < 1 || *req.Limit > maxLimit {
			return nil, domain.ErrInvalidLimit
		}
		limit = *req.Limit
	}

	articles, err := s.repo.List(ctx, s.db, domain.ListFilter{
		Category: strings.TrimSpace(req.Category),
		Search:   strings.TrimSpace(req.Search),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return articles, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Article, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Article{}, err
	}
	if item == nil {
		return domain.Article{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateArticleRequest) (domain.Article, error) {
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if err := validateTitle(trimmed); err != nil {
			return domain.Article{}, err
		}
		req.Title = &trimmed
	}
	if req.Price != nil && *req.Price < 0 {
		return domain.Article{}, domain.ErrInvalidPrice
	}
	if err := validateOptional(req.Category, categoryMaxLen, domain.ErrInvalidCategory); err != nil {
		return domain.Article{}, err
	}
	if err := validateOptional(req.Location, locationMaxLen, domain.ErrInvalidLocation); err != nil {
		return domain.Article{}, err
	}
	if err := validateEmail(req.ContactEmail); err != nil {
		return domain.Article{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Article{}, err
	}
	if item == nil {
		return domain.Article{}, domain.ErrNotFound
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = req.Category
	}
	if req.Location != nil {
		item.Location = req.Location
	}
	if req.ContactEmail != nil {
		item.ContactEmail = req.ContactEmail
	}

	now := time.Now().UTC()
	item.UpdatedAt = &now

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Article{}, err
	}

	s.log.Info("article updated", zap.Int64("article_id", item.ID))
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("article deleted", zap.Int64("article_id", id))
	return nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.DistinctCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func validateTitle(title string) error {
	length := utf8.RuneCountInString(title)
	if length < titleMinLen || length > titleMaxLen {
		return domain.ErrInvalidTitle
	}
	return nil
}

func validateOptional(value *string, maxLen int, invalid error) error {
	if value == nil {
		return nil
	}
	if utf8.RuneCountInString(*value) > maxLen {
		return invalid
	}
	return nil
}

// validateEmail accepts bare addresses only; display names are rejected.
func validateEmail(value *string) error {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return domain.ErrInvalidEmail
	}
	return nil
}
