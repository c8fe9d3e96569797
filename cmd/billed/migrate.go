package main

import (
	"billed/internal/db"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Apply pending database migrations",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(logrus.StandardLogger())
		if err != nil {
			return err
		}

		if cfg.Backend != backendPostgres {
			logrus.WithField("backend", cfg.Backend).Info("nothing to migrate")
			return nil
		}

		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}

		logrus.Info("migrations applied")

		return nil
	},
}
