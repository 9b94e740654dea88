package main

import (
	"github.com/luckyspin-lab/backend/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()

	if cctx.Bool("auto") {
		return migration.AutoMigrate(s.ctx)
	}

	return migration.Migrate(s.ctx)
}
