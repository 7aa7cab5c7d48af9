package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/cube/internal/article"
	"github.com/smallbiznis/cube/internal/config"
	"github.com/smallbiznis/cube/internal/migration"
	"github.com/smallbiznis/cube/internal/observability"
	"github.com/smallbiznis/cube/internal/server"
	"github.com/smallbiznis/cube/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		migration.Module,
		article.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
