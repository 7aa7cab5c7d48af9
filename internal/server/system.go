package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root serves the static welcome payload.
func (s *Server) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Bienvenue sur l'API Cube Backend",
		"status":  "running",
	})
}

// Health probes the database. Always answers 200 with a status payload so
// the endpoint itself never fails visibly.
func (s *Server) Health(c *gin.Context) {
	var one int
	err := s.db.WithContext(c.Request.Context()).Raw("SELECT 1").Scan(&one).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// DBTest reports the server version and the public tables. Like Health it
// reports failures inside a 200 payload.
func (s *Server) DBTest(c *gin.Context) {
	ctx := c.Request.Context()

	var version string
	if err := s.db.WithContext(ctx).Raw("SELECT version()").Scan(&version).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	var tables []string
	err := s.db.WithContext(ctx).Raw(
		`SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'`,
	).Scan(&tables).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}
	if tables == nil {
		tables = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"postgres_version": version,
		"tables":           tables,
	})
}
