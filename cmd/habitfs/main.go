package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"habitfs/internal/config"
	"habitfs/internal/database"
	"habitfs/internal/database/repository"
	"habitfs/internal/logging"
	"habitfs/internal/service"
	"habitfs/internal/tui"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: habitfs [options]\n\n")
		fmt.Fprintf(os.Stderr, "habitfs is a terminal habit tracker that shows your habits as a virtual file system.\n\n")
		pflag.PrintDefaults()
	}
	cfgPath := pflag.String("config", "", "path to config file")
	dbPath := pflag.String("db", "", "override sqlite database path")
	logPath := pflag.String("log", "", "override diagnostic log path")
	migrations := pflag.String("migrations", "internal/database/migrations", "path to schema migrations")
	pflag.Parse()

	if *cfgPath != "" {
		os.Setenv("HABITFS_CONFIG", *cfgPath)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *logPath != "" {
		cfg.Log.Path = *logPath
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, *migrations); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	entryRepo := repository.NewEntryRepo(db)
	progress := &service.ProgressService{Entries: entryRepo}

	app := tui.New(ctx, cfg,
		tui.Repos{Entries: entryRepo},
		tui.Services{Progress: progress},
		logger,
	)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		fmt.Printf("error: %v\n", err)
	}
}
