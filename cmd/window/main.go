package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/window"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "invaders"})
	if config.GetEnv("INVADERS_DEBUG", "") != "" {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	opts := []game.Option{game.WithLogger(logger)}
	if seed := config.GetEnvInt("INVADERS_SEED", 0); seed != 0 {
		opts = append(opts, game.WithSeed(int64(seed)))
	}
	round, err := game.New(cfg, opts...)
	if err != nil {
		logger.Fatal("failed to start round", "err", err)
	}

	ebiten.SetWindowSize(int(cfg.Window.Width), int(cfg.Window.Height))
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(window.New(round, logger)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
