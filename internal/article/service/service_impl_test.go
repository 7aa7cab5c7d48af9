package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/cube/internal/article/domain"
	"github.com/smallbiznis/cube/internal/article/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Article{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func countArticles(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.Article{}).Count(&count).Error)
	return count
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestCreate_GeneratesFields(t *testing.T) {
	svc, _ := newTestService(t)

	article, err := svc.Create(context.Background(), domain.CreateArticleRequest{
		Title: "Bike",
		Price: floatPtr(50.0),
	})
	require.NoError(t, err)

	assert.NotZero(t, article.ID)
	assert.Equal(t, "Bike", article.Title)
	assert.Equal(t, 50.0, article.Price)
	assert.False(t, article.CreatedAt.IsZero())
	assert.Nil(t, article.UpdatedAt)
	assert.Nil(t, article.Description)
	assert.Nil(t, article.Category)
	assert.Nil(t, article.Location)
	assert.Nil(t, article.ContactEmail)
}

func TestCreate_Validation(t *testing.T) {
	svc, db := newTestService(t)

	longCategory := make([]byte, 101)
	for i := range longCategory {
		longCategory[i] = 'x'
	}

	cases := []struct {
		name string
		req  domain.CreateArticleRequest
		want error
	}{
		{"title too short", domain.CreateArticleRequest{Title: "ab", Price: floatPtr(1)}, domain.ErrInvalidTitle},
		{"title missing", domain.CreateArticleRequest{Price: floatPtr(1)}, domain.ErrInvalidTitle},
		{"price missing", domain.CreateArticleRequest{Title: "Bike"}, domain.ErrInvalidPrice},
		{"price negative", domain.CreateArticleRequest{Title: "Bike", Price: floatPtr(-1)}, domain.ErrInvalidPrice},
		{"category too long", domain.CreateArticleRequest{Title: "Bike", Price: floatPtr(1), Category: strPtr(string(longCategory))}, domain.ErrInvalidCategory},
		{"bad email", domain.CreateArticleRequest{Title: "Bike", Price: floatPtr(1), ContactEmail: strPtr("not-an-email")}, domain.ErrInvalidEmail},
		{"email with display name", domain.CreateArticleRequest{Title: "Bike", Price: floatPtr(1), ContactEmail: strPtr("Bob <bob@example.com>")}, domain.ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// nothing persisted
	assert.Equal(t, int64(0), countArticles(t, db))
}

func TestCreate_PriceZeroIsValid(t *testing.T) {
	svc, _ := newTestService(t)

	article, err := svc.Create(context.Background(), domain.CreateArticleRequest{
		Title: "Free stuff",
		Price: floatPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, article.Price)
}

func TestGetByID_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), domain.CreateArticleRequest{
		Title:        "Mountain bike",
		Description:  strPtr("barely used"),
		Price:        floatPtr(250),
		Category:     strPtr("sports"),
		Location:     strPtr("Lyon"),
		ContactEmail: strPtr("seller@example.com"),
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Mountain bike", got.Title)
	assert.Equal(t, "barely used", *got.Description)
	assert.Equal(t, 250.0, got.Price)
	assert.Equal(t, "sports", *got.Category)
	assert.Equal(t, "Lyon", *got.Location)
	assert.Equal(t, "seller@example.com", *got.ContactEmail)
	assert.Nil(t, got.UpdatedAt)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), 123456789)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_PartialLeavesOtherFieldsUntouched(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), domain.CreateArticleRequest{
		Title:    "City bike",
		Price:    floatPtr(100),
		Category: strPtr("sports"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, domain.UpdateArticleRequest{
		Price: floatPtr(80),
	})
	require.NoError(t, err)

	assert.Equal(t, "City bike", updated.Title)
	assert.Equal(t, 80.0, updated.Price)
	assert.Equal(t, "sports", *updated.Category)
	require.NotNil(t, updated.UpdatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.CreatedAt))
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdate_InvalidFieldRejectedBeforePersist(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), domain.CreateArticleRequest{
		Title: "City bike",
		Price: floatPtr(100),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, domain.UpdateArticleRequest{
		Title: strPtr("ab"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "City bike", got.Title)
	assert.Nil(t, got.UpdatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), 42, domain.UpdateArticleRequest{
		Price: floatPtr(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ThenGetNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), domain.CreateArticleRequest{
		Title: "Old sofa",
		Price: floatPtr(30),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// second delete reports not found as well
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), domain.ErrNotFound)
}

func TestList_OrderedByCreatedAtDescending(t *testing.T) {
	svc, _ := newTestService(t)

	ids := make([]int64, 0, 3)
	for _, title := range []string{"Article A", "Article B", "Article C"} {
		article, err := svc.Create(context.Background(), domain.CreateArticleRequest{
			Title: title,
			Price: floatPtr(1),
		})
		require.NoError(t, err)
		ids = append(ids, article.ID)
		time.Sleep(2 * time.Millisecond)
	}

	articles, err := svc.List(context.Background(), domain.ListArticlesRequest{})
	require.NoError(t, err)
	require.Len(t, articles, 3)

	assert.Equal(t, ids[2], articles[0].ID)
	assert.Equal(t, ids[1], articles[1].ID)
	assert.Equal(t, ids[0], articles[2].ID)
}

func TestList_CategoryExactMatch(t *testing.T) {
	svc, _ := newTestService(t)

	for _, category := range []string{"sports", "sports", "garden"} {
		_, err := svc.Create(context.Background(), domain.CreateArticleRequest{
			Title:    "Listing in " + category,
			Price:    floatPtr(1),
			Category: strPtr(category),
		})
		require.NoError(t, err)
	}

	articles, err := svc.List(context.Background(), domain.ListArticlesRequest{Category: "sports"})
	require.NoError(t, err)
	require.Len(t, articles, 2)
	for _, article := range articles {
		assert.Equal(t, "sports", *article.Category)
	}
}

func TestList_SearchCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)

	for _, title := range []string{"Mountain BIKE", "City bike", "Wooden table"} {
		_, err := svc.Create(context.Background(), domain.CreateArticleRequest{
			Title: title,
			Price: floatPtr(1),
		})
		require.NoError(t, err)
	}

	articles, err := svc.List(context.Background(), domain.ListArticlesRequest{Search: "bik"})
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestList_PaginationBounds(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.List(context.Background(), domain.ListArticlesRequest{Skip: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidSkip)

	_, err = svc.List(context.Background(), domain.ListArticlesRequest{Limit: intPtr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)

	_, err = svc.List(context.Background(), domain.ListArticlesRequest{Limit: intPtr(101)})
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)

	_, err = svc.List(context.Background(), domain.ListArticlesRequest{Limit: intPtr(100)})
	assert.NoError(t, err)
}

func TestList_SkipAndLimit(t *testing.T) {
	svc, _ := newTestService(t)

	ids := make([]int64, 0, 3)
	for _, title := range []string{"First", "Second", "Third"} {
		article, err := svc.Create(context.Background(), domain.CreateArticleRequest{
			Title: title,
			Price: floatPtr(1),
		})
		require.NoError(t, err)
		ids = append(ids, article.ID)
		time.Sleep(2 * time.Millisecond)
	}

	articles, err := svc.List(context.Background(), domain.ListArticlesRequest{
		Skip:  intPtr(1),
		Limit: intPtr(1),
	})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, ids[1], articles[0].ID)
}

func TestCategories_DistinctNonNull(t *testing.T) {
	svc, _ := newTestService(t)

	for _, category := range []*string{strPtr("sports"), strPtr("sports"), strPtr("garden"), nil} {
		_, err := svc.Create(context.Background(), domain.CreateArticleRequest{
			Title:    "Some listing",
			Price:    floatPtr(1),
			Category: category,
		})
		require.NoError(t, err)
	}

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sports", "garden"}, categories)
}
