package main

import "github.com/urfave/cli/v2"

// loadApp creates an app with sane defaults.
func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Luckyspin"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:   server.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database to the latest schema",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "auto",
					Usage: "Derive the schema from the entities instead of the versioned migrations",
				},
			},
			Description: `Used to create or upgrade the database schema before starting the api.`,
		},
	}

	s.app = app
}
