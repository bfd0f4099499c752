package commands

import (
	"context"
	"fmt"

	"github.com/quarrydb/quarry/cli/internal/config"
	"github.com/quarrydb/quarry/internal/debug"
	"github.com/quarrydb/quarry/runtime/client"
)

// connect loads configuration and opens a pooled connection.
func connect(ctx context.Context) (*config.Config, *client.Pool, *client.Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	debug.Init(cfg.LogQueries)

	if cfg.DatabaseURL == "" {
		return nil, nil, nil, fmt.Errorf("DATABASE_URL is not set")
	}

	pool := client.NewPool()
	c, err := pool.Connect(ctx, cfg.Provider, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect: %w", err)
	}
	c.SetLogQueries(cfg.LogQueries)

	return cfg, pool, c, nil
}
