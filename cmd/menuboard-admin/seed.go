package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/forkful/menuboard/internal/bootstrap"
	"github.com/forkful/menuboard/internal/devseed"
)

func runDBSeed(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("db-seed", flag.ContinueOnError)
	timeout := fs.Duration("timeout", defaultCommandTimeout, "seed timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := commandScope(cmdCtx, *timeout)
	defer cancel()

	return seedDatabase(ctx, cmdCtx)
}

func seedDatabase(ctx context.Context, cmdCtx *commandContext) error {
	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx.Logger, "db", db)

	if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	cmdCtx.Logger.InfoContext(ctx, "seeding development data")
	if err := devseed.Run(ctx, devseed.NewServices(db), cmdCtx.Logger); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	return nil
}
