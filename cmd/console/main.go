package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/jwebster45206/escape-room/internal/config"
	"github.com/jwebster45206/escape-room/internal/logger"
	"github.com/jwebster45206/escape-room/internal/render"
	"github.com/jwebster45206/escape-room/pkg/engine"
	"github.com/jwebster45206/escape-room/pkg/scene"
	"github.com/jwebster45206/escape-room/pkg/shuffle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file %s: %v\n", cfg.LogFile, err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()

	log := logger.Setup(cfg, logFile)

	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Error("Failed to load catalog", "error", err, "path", cfg.CatalogPath)
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}
	log.Info("Starting Escape Room",
		"environment", cfg.Environment,
		"catalog", catalog.Name(),
		"rooms", catalog.RoomCount())

	scr := newScreen()
	renderers := render.Fanout{scr}

	var spectator *render.Spectator
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.SpectatorTimeout)
		spectator, err = render.NewSpectator(ctx, cfg.RedisURL, cfg.SpectatorTimeout, log)
		cancel()
		if err != nil {
			// The game is playable without the feed.
			logger.WithError(log, err).Warn("Spectator feed disabled")
		} else {
			renderers = append(renderers, spectator)
			defer func() {
				_ = spectator.Close() // Ignore error in defer
			}()
		}
	}

	eng := engine.New(catalog, renderers, log)
	if cfg.ShuffleSeed != nil {
		eng.WithSource(shuffle.NewSource(*cfg.ShuffleSeed))
	}
	if spectator != nil {
		spectator.WithSession(func() uuid.UUID { return eng.Status().SessionID })
	}
	eng.Init()

	p := tea.NewProgram(NewConsoleUI(eng, scr), tea.WithAltScreen())
	_, err = p.Run()

	st := eng.Status()
	sessionLog := logger.WithSession(log, st.SessionID)
	if err != nil {
		logger.WithError(sessionLog, err).Error("Console exited with error")
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	sessionLog.Info("Console exited",
		"phase", st.Phase.String(),
		"rooms_cleared", st.RoomsCleared,
		"rooms_to_escape", st.RoomsToEscape)
}

func loadCatalog(path string) (*scene.Catalog, error) {
	if path == "" {
		return scene.Default(), nil
	}
	return scene.Load(path)
}
