// Command menuboard-admin hosts operational tasks for the menuboard
// deployment: migrations, dev seeding, and session store maintenance.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/forkful/menuboard/config"
	"github.com/forkful/menuboard/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultCommandTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage(os.Stderr)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run database migrations and seed development data",
			run:         runDBSeed,
		},
		"db-reset": {
			name:        "db-reset",
			description: "Drop the public schema, run migrations, and optionally seed data",
			run:         runDBReset,
		},
		"list-sessions": {
			name:        "list-sessions",
			description: "Inspect session keys in the Redis session store",
			run:         runListSessions,
		},
		"clear-sessions": {
			name:        "clear-sessions",
			description: "Delete all sessions from the Redis session store",
			run:         runClearSessions,
		},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: menuboard-admin <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %s\n", name, cmds[name].description)
	}
}

// commandScope bounds a command with signal handling and a timeout.
func commandScope(cmdCtx *commandContext, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func runMigrate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	timeout := fs.Duration("timeout", defaultCommandTimeout, "migration timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := commandScope(cmdCtx, *timeout)
	defer cancel()

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx.Logger, "db", db)

	cmdCtx.Logger.InfoContext(ctx, "running database migrations")
	if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func runDBReset(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("db-reset", flag.ContinueOnError)
	timeout := fs.Duration("timeout", defaultCommandTimeout, "reset timeout")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	seed := fs.Bool("seed", false, "seed development data after the reset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	target := fmt.Sprintf(
		"database %q on %s:%d",
		cmdCtx.Config.Postgres.Name,
		cmdCtx.Config.Postgres.Host,
		cmdCtx.Config.Postgres.Port,
	)
	if err := confirmAction(*yes, "drop and recreate the public schema of "+target); err != nil {
		return err
	}

	ctx, cancel := commandScope(cmdCtx, *timeout)
	defer cancel()

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx.Logger, "db", db)

	cmdCtx.Logger.InfoContext(ctx, "dropping public schema", "target", target)
	if _, err := db.ExecContext(ctx, `DROP SCHEMA public CASCADE; CREATE SCHEMA public`); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}

	if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if *seed {
		return seedDatabase(ctx, cmdCtx)
	}
	return nil
}

func confirmAction(yes bool, action string) error {
	if yes {
		return nil
	}

	fmt.Fprintf(os.Stderr, "About to %s. Type 'yes' to continue: ", action)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if strings.TrimSpace(line) != "yes" {
		return errors.New("aborted")
	}
	return nil
}
