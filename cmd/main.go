package main

import (
	"context"
	"os"

	"github.com/desertthunder/vofo/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	shared.LoadDotenv()
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "vofo",
		Usage:    "Music streaming backend: accounts, likes, search & trending",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
