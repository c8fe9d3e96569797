package db

import (
	"context"
	"fmt"
	"time"

	"billed/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

// billsSchema holds the bills table, see migrations.
const billsSchema = "billed"

// Connect opens a pool whose sessions resolve unqualified names in the bills
// schema unless the URL already sets a search_path.
func Connect(ctx context.Context, config *types.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	setSearchPath(poolConfig)

	poolConfig.MaxConnIdleTime = 15 * time.Minute
	poolConfig.MaxConnLifetime = 45 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (search_path %s): %w", poolConfig.ConnConfig.RuntimeParams["search_path"], err)
	}

	return pool, nil
}

func setSearchPath(poolConfig *pgxpool.Config) {
	if _, ok := poolConfig.ConnConfig.RuntimeParams["search_path"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["search_path"] = billsSchema
	}
}
