package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Dialect resolves a gorm dialector from the connection URL scheme.
// PostgreSQL is the production target; sqlite is kept for local development.
func Dialect(url string) (gorm.Dialector, error) {
	trimmed := strings.TrimSpace(url)
	switch {
	case trimmed == "":
		return nil, fmt.Errorf("empty database url")
	case strings.HasPrefix(trimmed, "postgres://"),
		strings.HasPrefix(trimmed, "postgresql://"):
		return postgres.Open(trimmed), nil
	case strings.HasPrefix(trimmed, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(trimmed, "sqlite://")), nil
	case strings.HasPrefix(trimmed, "file:"), trimmed == ":memory:":
		return sqlite.Open(trimmed), nil
	default:
		return nil, fmt.Errorf("unsupported database url %q", redact(trimmed))
	}
}

// IsPostgres reports whether the URL targets PostgreSQL.
func IsPostgres(url string) bool {
	trimmed := strings.TrimSpace(url)
	return strings.HasPrefix(trimmed, "postgres://") || strings.HasPrefix(trimmed, "postgresql://")
}

// redact strips credentials so the URL can appear in error messages.
func redact(url string) string {
	if at := strings.LastIndex(url, "@"); at != -1 {
		if scheme := strings.Index(url, "://"); scheme != -1 && scheme+3 < at {
			return url[:scheme+3] + "***" + url[at:]
		}
	}
	return url
}
