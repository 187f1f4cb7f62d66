package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/tradelink-backend/pkg/config"
	"github.com/angelmondragon/tradelink-backend/pkg/db"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
	"github.com/angelmondragon/tradelink-backend/pkg/migrate"
)

// Usage: migrate [-dir path] <command> [args]
// Commands are goose commands: up, down, status, version, create, etc.
func main() {
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-dir path] <command> [args]")
		os.Exit(2)
	}
	command := flag.Arg(0)
	args := flag.Args()[1:]

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "tradelink-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := context.Background()
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "connecting to database", err)
		os.Exit(1)
	}
	defer client.Close()

	sqlDB, err := client.SQLDB()
	if err != nil {
		logg.Error(ctx, "extracting sql.DB", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{"command": command, "dir": *dir})
	if err := migrate.Run(ctx, sqlDB, *dir, command, args...); err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migration command completed")
}
