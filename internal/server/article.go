package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	articledomain "github.com/smallbiznis/cube/internal/article/domain"
)

func (s *Server) CreateArticle(c *gin.Context) {
	var req articledomain.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.articleSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListArticles(c *gin.Context) {
	var query struct {
		Skip     *int   `form:"skip"`
		Limit    *int   `form:"limit"`
		Category string `form:"category"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, newValidationError("query", "invalid_query", "invalid query parameters"))
		return
	}

	resp, err := s.articleSvc.List(c.Request.Context(), articledomain.ListArticlesRequest{
		Skip:     query.Skip,
		Limit:    query.Limit,
		Category: strings.TrimSpace(query.Category),
		Search:   strings.TrimSpace(query.Search),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetArticleByID(c *gin.Context) {
	id, err := parseArticleID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.articleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateArticle(c *gin.Context) {
	id, err := parseArticleID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req articledomain.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.articleSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteArticle(c *gin.Context) {
	id, err := parseArticleID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.articleSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Article supprimé avec succès",
		"id":      id,
	})
}

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.articleSvc.Categories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func parseArticleID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, articledomain.ErrInvalidID
	}
	return id, nil
}
