package main

import (
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/hex-outbreak/internal/config"
	"github.com/Garsondee/hex-outbreak/internal/game"
	"github.com/Garsondee/hex-outbreak/internal/sim"
)

func main() {
	var configPath string
	var seed int64
	var debug bool

	flag.StringVar(&configPath, "config", "", "optional YAML config file")
	flag.Int64Var(&seed, "seed", 0, "map seed (0 uses the config seed, or the clock if that is 0 too)")
	flag.BoolVar(&debug, "debug", false, "log every command")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "outbreak"})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", "path", configPath, "err", err)
	}
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine, err := sim.NewGame(cfg.SimRules(), seed, sim.WithLogger(logger))
	if err != nil {
		logger.Fatal("failed to build map", "err", err)
	}
	logger.Info("map ready", "seed", seed, "radius", cfg.Rules.MapRadius, "tiles", engine.Grid().Len())

	g := game.New(engine, cfg.Display, seed, logger)
	if err := game.Run(g, "Hex Infection Strategy", cfg.Display.TPS); err != nil {
		logger.Fatal("game exited", "err", err)
	}
}
