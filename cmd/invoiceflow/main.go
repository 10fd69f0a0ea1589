package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/invoiceflow/invoiceflow/internal/clock"
	"github.com/invoiceflow/invoiceflow/internal/config"
	"github.com/invoiceflow/invoiceflow/internal/migration"
	"github.com/invoiceflow/invoiceflow/internal/observability"
	"github.com/invoiceflow/invoiceflow/internal/server"
	"github.com/invoiceflow/invoiceflow/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface and the domain modules it pulls in
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
