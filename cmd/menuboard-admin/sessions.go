package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

const sessionKeyPattern = "session:*"

func runListSessions(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	timeout := fs.Duration("timeout", time.Minute, "scan timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := commandScope(cmdCtx, *timeout)
	defer cancel()

	client, err := connectRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx.Logger, "redis", client)

	count := 0
	iter := client.Scan(ctx, 0, sessionKeyPattern, 1000).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ttl, ttlErr := client.TTL(ctx, key).Result()
		if ttlErr != nil {
			return fmt.Errorf("session ttl for %q: %w", key, ttlErr)
		}
		fmt.Fprintf(os.Stdout, "%s\tttl=%s\n", key, ttl)
		count++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}

	cmdCtx.Logger.InfoContext(ctx, "sessions listed", "count", count)
	return nil
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	timeout := fs.Duration("timeout", time.Minute, "clear timeout")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := confirmAction(*yes, "delete every active session, signing all users out"); err != nil {
		return err
	}

	ctx, cancel := commandScope(cmdCtx, *timeout)
	defer cancel()

	client, err := connectRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx.Logger, "redis", client)

	deleted := 0
	iter := client.Scan(ctx, 0, sessionKeyPattern, 1000).Iterator()
	for iter.Next(ctx) {
		if delErr := client.Del(ctx, iter.Val()).Err(); delErr != nil {
			return fmt.Errorf("delete session %q: %w", iter.Val(), delErr)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}

	cmdCtx.Logger.InfoContext(ctx, "sessions cleared", "deleted", deleted)
	return nil
}
