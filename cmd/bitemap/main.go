package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bitemap/bitemap-cli/internal/app"
	"github.com/bitemap/bitemap-cli/internal/config"
	"github.com/bitemap/bitemap-cli/internal/dish"
	"github.com/bitemap/bitemap-cli/internal/log"
	"github.com/bitemap/bitemap-cli/internal/storage"
	"github.com/bitemap/bitemap-cli/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log.Configure(log.Config{Level: cfg.LogLevel})
	logger := log.WithComponent("main")

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("storage init failed")
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		logger.Fatal().Err(err).Msg("storage schema failed")
	}
	if err := repo.CheckWritable(ctx); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("storage not writable, check BITEMAP_DB_PATH")
	}

	client := dish.NewClient(cfg.APIBaseURL, cfg.APIKey, nil)
	service := app.NewService(client, repo)

	dishes, source, err := service.LoadFeed(ctx, cfg.FeedLimit)
	if err != nil {
		logger.Warn().Err(err).Msg("initial feed load failed, starting empty")
		dishes = nil
		source = app.SourceCache
	}
	logger.Info().Int("dishes", len(dishes)).Str("source", string(source)).Msg("feed loaded")

	model := tui.NewModel(service, dishes, source, cfg.FeedLimit, tui.Profile{
		DisplayName: cfg.Profile.DisplayName,
		Handle:      cfg.Profile.Handle,
	}, log.WithComponent("tui"))

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		logger.Fatal().Err(err).Msg("tui failed")
	}
}
