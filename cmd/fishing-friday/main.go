package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
	"github.com/appengine-ltd/fishing-friday/internal/config"
	"github.com/appengine-ltd/fishing-friday/internal/game"
	"github.com/appengine-ltd/fishing-friday/internal/logging"
	"github.com/appengine-ltd/fishing-friday/internal/ui"
)

// version, commit, date are injected at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		writeConfig bool
		configPath  string
		day         string
		seed        int64
		autoPlay    int
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "config", "", "path to config.yaml")
	flag.BoolVar(&writeConfig, "write-config", false, "save the effective settings to the config file and exit")
	flag.StringVar(&day, "day", "", "override day of week (e.g. Friday) to activate bonuses")
	flag.Int64Var(&seed, "seed", 0, "random seed for reproducible runs (0 uses the clock)")
	flag.IntVar(&autoPlay, "auto-play", 0, "run this many automatic casts then exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Fishing Friday %s (%s) %s\n", version, commit, date)
		return
	}

	if configPath == "" {
		p, err := config.Path()
		if err != nil {
			logging.Fatal("resolve config path", err, nil)
		}
		configPath = p
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		logging.Fatal("load config", err, nil)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "day":
			cfg.Day = day
		case "seed":
			cfg.Seed = seed
		case "auto-play":
			cfg.AutoPlay = autoPlay
		}
	})
	if err := cfg.Validate(); err != nil {
		logging.Fatal("invalid flags", err, nil)
	}
	logging.SetLevel(cfg.LogLevel)

	if writeConfig {
		if err := config.Save(configPath, cfg); err != nil {
			logging.Fatal("save config", err, logging.Fields{"path": configPath})
		}
		fmt.Printf("wrote %s\n", configPath)
		return
	}

	session, err := game.NewSession(catalog.Default(), game.SessionConfig{
		Seed:             cfg.Seed,
		DayOverride:      cfg.Day,
		StartingCurrency: cfg.StartingCurrency,
		Equipment:        cfg.StartingEquipment,
		Location:         cfg.StartingLocation,
		Now:              time.Now(),
	})
	if err != nil {
		logging.Fatal("start session", err, nil)
	}
	logging.Info("session configured", logging.Fields{
		"seed":      session.Seed(),
		"day":       session.Day.Describe(),
		"auto_play": cfg.AutoPlay,
	})

	if cfg.AutoPlay > 0 {
		if err := ui.RunAutoPlay(os.Stdout, session, cfg.AutoPlay); err != nil {
			logging.Fatal("auto-play", err, nil)
		}
		return
	}

	// The alt screen owns the terminal; keep log lines out of it.
	logging.SetOutput(io.Discard)
	app := ui.NewApp(ui.AppConfig{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		Session:   session,
	})
	if !finishUI(app.Run(), session.Seed(), os.Stderr) {
		os.Exit(1)
	}
}

// finishUI points logging back at logOut once the alt screen is gone and
// reports whether the UI exited cleanly.
func finishUI(err error, seed int64, logOut io.Writer) bool {
	logging.SetOutput(logOut)
	if err == nil {
		return true
	}
	logging.Error("terminal ui", err, logging.Fields{"seed": seed})
	return false
}

func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
