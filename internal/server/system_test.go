package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	s, _ := newTestServer(t)

	rec := perform(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Bienvenue sur l'API Cube Backend","status":"running"}`, rec.Body.String())
}

func TestHealth_Connected(t *testing.T) {
	s, _ := newTestServer(t)

	rec := perform(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "connected", resp.Database)
}

func TestHealth_Disconnected(t *testing.T) {
	s, conn := newTestServer(t)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec := perform(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status   string `json:"status"`
		Database string `json:"database"`
		Error    string `json:"error"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "disconnected", resp.Database)
	assert.NotEmpty(t, resp.Error)
}

// sqlite has no version() function, so the diagnostics endpoint takes its
// error path while still answering 200.
func TestDBTest_ReportsErrorInsidePayload(t *testing.T) {
	s, _ := newTestServer(t)

	rec := perform(t, s, http.MethodGet, "/db/test", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.Message)
}
