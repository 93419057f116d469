package main

import (
	"fmt"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/ballpark-backend/internal"
	"github.com/rocketscienceinc/ballpark-backend/internal/config"
)

// configEnv overrides the config file location.
const configEnv = "BALLPARK_CONFIG"

// main loads the config, builds the logger and runs the ballpark servers until
// a signal or a server error stops them.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "ballpark: aborted: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := config.MustLoad(configPath())
	logger := newLogger(conf.LogLevel).With("service", "ballpark")

	logger.Info("Ballpark starting", "engine_mode", conf.Engine.Mode, "cpu_difficulty", conf.CPU.Difficulty)
	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("ballpark stopped: %w", err))
	}
	logger.Info("Ballpark stopped, games left in redis")
}

func configPath() string {
	if path := os.Getenv(configEnv); path != "" {
		return path
	}
	return "config.yml"
}

// newLogger writes JSON to stdout. An unknown level falls back to info.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
