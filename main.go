package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/charcontrol/logging"
	"github.com/milk9111/charcontrol/settings"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "settings file (defaults to ./charcontrol.yaml when present)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "draw physics shapes and controller state")
	watch := flag.Bool("watch", false, "hot reload prefabs from disk")
	flag.Parse()

	cfg, err := settings.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level.Name = *levelName
	}
	if *debug {
		cfg.Debug.Draw = true
	}
	if *watch {
		cfg.Prefabs.Watch = true
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(float64(cfg.Window.Width)*cfg.Window.Scale), int(float64(cfg.Window.Height)*cfg.Window.Scale))
	ebiten.SetWindowTitle("charcontrol")

	game, err := NewGame(cfg, logger)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}
