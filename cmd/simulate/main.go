// Command simulate plays scripted input timelines against the character
// controller on a headless world and checks where the player ends up.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/charcontrol/logging"
	"github.com/milk9111/charcontrol/settings"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "settings file (defaults to ./charcontrol.yaml when present)")
	prefabDir := flag.String("prefabs", "", "prefab directory read before the embedded copies")
	traceFrames := flag.Bool("trace", false, "log the controller state every frame")
	builtin := flag.Bool("builtin", false, "run the embedded scenarios")
	flag.Parse()

	cfg, err := settings.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Prefabs.Dir = *prefabDir
	cfg.Level.Dir = ""

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	var trace *zap.Logger
	if *traceFrames {
		trace = logger.Named("trace")
	}

	var scenarios []Scenario
	if *builtin {
		scenarios, err = BuiltinScenarios()
		if err != nil {
			logger.Fatal("load builtin scenarios", zap.Error(err))
		}
	}
	for _, path := range flag.Args() {
		sc, err := LoadScenario(path)
		if err != nil {
			logger.Fatal("load scenario", zap.String("path", path), zap.Error(err))
		}
		scenarios = append(scenarios, sc)
	}
	if len(scenarios) == 0 {
		fmt.Fprintln(os.Stderr, "usage: simulate [-trace] [-builtin] [scenario.yaml ...]")
		os.Exit(2)
	}

	failed := 0
	for _, sc := range scenarios {
		res, err := Run(sc, cfg, logger.Named("sim"), trace)
		if err == nil {
			err = sc.Expect.Check(res)
		}
		if err != nil {
			failed++
			fields := []zap.Field{zap.String("scenario", sc.Name), zap.Error(err)}
			if errors.Is(err, ErrExpectation) {
				fields = append(fields, zap.Any("final", res.Final))
			}
			logger.Error("scenario failed", fields...)
			continue
		}
		logger.Info("scenario passed",
			zap.String("scenario", sc.Name),
			zap.Int("frames", res.Frames),
			zap.Float64("x", res.Final.Position.X),
			zap.Float64("y", res.Final.Position.Y),
			zap.Float64("peak_y", res.PeakY),
		)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
