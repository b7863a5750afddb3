package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/koteyur/physac-hexagon/internal/config"
	"github.com/koteyur/physac-hexagon/internal/sim"
)

func loadConfig(path, envPath string) (config.Config, error) {
	if err := config.LoadEnv(envPath); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "YAML config file")
	envPath := flag.String("env", ".env", "dotenv file with HEXAGON_* overrides")
	dumpPath := flag.String("dump-config", "", "write the effective config to this path and exit")
	headless := flag.Bool("headless", false, "simulate without a window and log stats")
	frames := flag.Int("frames", 600, "frames to simulate with -headless")
	verbose := flag.Bool("v", false, "log every contact")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *envPath)
	if err != nil {
		log.Fatal(err)
	}
	if *dumpPath != "" {
		if err := config.Save(*dumpPath, cfg); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *dumpPath)
		return
	}

	params, err := cfg.Params()
	if err != nil {
		log.Fatal(err)
	}
	s, err := sim.New(params)
	if err != nil {
		log.Fatal(err)
	}

	if *headless {
		runHeadless(s, cfg.Window.TPS, *frames, *verbose)
		return
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetMaxTPS(cfg.Window.TPS)

	game, err := NewGame(s, cfg.Window.Width, cfg.Window.Height, *verbose)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
