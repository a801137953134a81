// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand runs the HTTP API server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the streaming backend HTTP server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override the configured HTTP port",
			},
		},
		Action: r.Serve,
	}
}

// migrateCommand handles schema migrations
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply all pending migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.MigrateUp,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.MigrateRollback,
			},
			{
				Name:   "status",
				Usage:  "Show the current schema version",
				Flags:  []cli.Flag{configFlag()},
				Action: r.MigrateStatus,
			},
		},
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write an example config.toml to the working directory",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigInit,
			},
		},
	}
}
