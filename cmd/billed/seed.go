package main

import (
	"context"
	"errors"
	"fmt"

	"billed/internal/db"
	"billed/internal/seed"
	"billed/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with the demo bills",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(logrus.StandardLogger())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.Backend != backendPostgres {
			return errors.New("seed needs BACKEND=postgres")
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		n, err := seed.SeedBills(ctx, store.NewBillRepository(pool))
		if err != nil {
			return fmt.Errorf("failed to seed bills: %w", err)
		}

		logrus.WithField("count", n).Info("Bills seeded successfully")

		return nil
	},
}
