package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dag10/cshdj-youtube/internal/shared"
	"github.com/dag10/cshdj-youtube/internal/sources"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	source := sources.NewYouTubeSource(config.Search.BaseURL)

	runner := NewRunner(RunnerOpts{
		Config: config,
		Source: source,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "cshdj-youtube",
		Usage:    "Search YouTube and fetch track audio for the DJ host",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
