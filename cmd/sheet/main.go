// Package main provides the sheet tool for building and inspecting an
// investigator character from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/investigator/internal/config"
	"github.com/cory-johannsen/investigator/internal/game/builder"
	"github.com/cory-johannsen/investigator/internal/game/dice"
	"github.com/cory-johannsen/investigator/internal/game/ruleset"
	"github.com/cory-johannsen/investigator/internal/i18n"
	"github.com/cory-johannsen/investigator/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and SHEET_* environment")
	locale := flag.String("locale", "", "override the configured locale, e.g. zh-CN")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: sheet [flags] <command> [args]\n\n%s\nflags:\n", commandHelp)
		flag.PrintDefaults()
	}
	flag.Parse()

	envLoaded := godotenv.Load() == nil

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *locale != "" {
		cfg.Locale = *locale
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()
	logger.Debug("configuration loaded",
		zap.Bool("dotenv", envLoaded),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("locale", cfg.Locale),
	)

	var registry *ruleset.Registry
	if cfg.Content.Dir != "" {
		registry, err = ruleset.Load(cfg.Content.Dir, logger)
	} else {
		registry, err = ruleset.LoadDefault(logger)
	}
	if err != nil {
		logger.Fatal("loading reference tables", zap.Error(err))
	}

	bundle, err := i18n.LoadDefault()
	if err != nil {
		logger.Fatal("loading locales", zap.Error(err))
	}
	catalog := bundle.Match(cfg.Locale)

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("opening storage", zap.Error(err))
	}
	defer store.Close()

	b := builder.New(store, registry, builder.Options{
		Key:         cfg.Storage.Key,
		DefaultName: catalog.Text("default_character_name"),
		Logger:      logger,
	})
	if err := b.Open(ctx); err != nil {
		logger.Fatal("opening character", zap.Error(err))
	}

	a := &app{
		out:      os.Stdout,
		builder:  b,
		registry: registry,
		catalog:  catalog,
		roller:   dice.NewLoggedRoller(dice.NewCryptoSource(), logger),
		export:   cfg.Export,
		now:      time.Now,
	}
	runErr := a.run(ctx, flag.Args())
	logger.Debug("command finished",
		zap.Strings("args", flag.Args()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(runErr),
	)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		_ = logger.Sync()
		_ = store.Close()
		os.Exit(1)
	}
}
