package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/BaSui01/nlpvocab/config"
	"github.com/BaSui01/nlpvocab/internal/migration"
	"github.com/BaSui01/nlpvocab/store"
)

// =============================================================================
// 📦 Migrate command
// =============================================================================

func runMigrate(args []string, stdout, stderr io.Writer) int {
	var configPath string
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", "", "Path to a YAML or TOML configuration file")

	// The count of steps/force may be negative, so take it before flag
	// parsing sees "-1".
	var number string
	if len(args) >= 2 && (args[0] == "steps" || args[0] == "force") {
		number = args[1]
		args = append([]string{args[0]}, args[2:]...)
	}

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if len(positional) != 1 {
		fmt.Fprintln(stderr, "migrate: expected one command (up, down, down-all, steps N, force N, version, status, info)")
		return exitUsage
	}

	command := positional[0]
	n := 0
	if command == "steps" || command == "force" {
		if n, err = strconv.Atoi(number); err != nil {
			fmt.Fprintf(stderr, "migrate %s: invalid number %q\n", command, number)
			return exitUsage
		}
	}

	cfg, err := config.NewLoader().WithConfigPath(configPath).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := initLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	db, err := store.OpenDatabase(cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	m, err := migration.NewMigratorFromGorm(db, cfg.Database.Driver, logger)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer func() { _ = m.Close() }()

	cli := migration.NewCLI(m)
	cli.SetOutput(stdout)
	if err := cli.Run(context.Background(), command, n); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}
