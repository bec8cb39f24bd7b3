package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/richard-senior/footstats/internal/logger"
	"github.com/richard-senior/footstats/pkg/config"
)

// cfg is loaded once in the app's Before hook
var cfg = config.Default()

func newApp() *cli.App {
	return &cli.App{
		Name:  "footstats",
		Usage: "league classifications, cross-league rankings and Poisson scoreline predictions from football-data.co.uk season files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-file", Usage: "also write logs to this file"},
			&cli.BoolFlag{Name: "timestamps", Usage: "show date and time on log lines"},
		},
		Before: setup,
		Commands: []*cli.Command{
			classifyCommand(),
			rankCommand(),
			predictCommand(),
			fetchCommand(),
			importCommand(),
		},
	}
}

func setup(c *cli.Context) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.LogLevel
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	if err := logger.SetLevel(level); err != nil {
		return err
	}
	logger.SetShowDateTime(c.Bool("timestamps"))

	logFile := cfg.LogFile
	if c.IsSet("log-file") {
		logFile = c.String("log-file")
	}
	if logFile != "" {
		logger.SetLogFile(logFile)
		if err := logger.SetLogOutput('b'); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		stop()
		logger.Fatal("footstats failed:", err)
	}
}
