package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"storefront-e2e/internal/application/usecase"
	"storefront-e2e/internal/di"
	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/infrastructure/config"
	"storefront-e2e/internal/infrastructure/env"
	"storefront-e2e/internal/infrastructure/logger"
)

var version = "0.1.0"

func RunCommand() *cli.Command {
	defaults := usecase.DefaultRunScenariosConfig()
	return &cli.Command{
		Name:  "run",
		Usage: "Run end-to-end scenarios against the storefront",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "scenario", Aliases: []string{"s"}, Usage: "scenario to run, repeatable; all when omitted"},
			&cli.IntFlag{Name: "retries", Value: defaults.Retries, EnvVars: []string{"SCENARIO_RETRIES"}, Usage: "re-runs of a failed scenario"},
			&cli.DurationFlag{Name: "retry-delay", Value: defaults.RetryDelay, Usage: "delay before the first re-run, doubled each time"},
			&cli.StringFlag{Name: "screenshots", Value: defaults.ScreenshotDir, EnvVars: []string{"SCREENSHOT_DIR"}, Usage: "directory for failure screenshots, empty to disable"},
			&cli.StringFlag{Name: "results", Value: defaults.ResultsDir, EnvVars: []string{"RESULTS_DIR"}, Usage: "directory for results.json, empty to disable"},
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Minute, Usage: "limit for the whole run"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "mirror the log to stderr"},
		},
		Action: func(c *cli.Context) error {
			cfg := containerConfig(c)
			cfg.Run = usecase.RunScenariosConfig{
				Retries:       c.Int("retries"),
				RetryDelay:    c.Duration("retry-delay"),
				ScreenshotDir: c.String("screenshots"),
				ResultsDir:    c.String("results"),
			}

			ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
			defer cancel()

			container, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer container.Close()

			results, err := container.Runner.Run(ctx, c.StringSlice("scenario"))
			if err != nil {
				container.Logger.Error("Run aborted", "error", err)
				return err
			}
			for _, r := range results {
				if r.Status != entity.ScenarioStatusPassed {
					return cli.Exit("", 1)
				}
			}
			return nil
		},
	}
}

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the available scenarios",
		Action: func(c *cli.Context) error {
			cfg := containerConfig(c)
			cfg.Driver = config.DriverStatic
			cfg.Logger = logger.NewNop()

			container, err := di.NewContainer(c.Context, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer container.Close()

			container.Reporter.List(container.Runner.List())
			return nil
		},
	}
}

func containerConfig(c *cli.Context) di.Config {
	logCfg := logger.DefaultConfig()
	logCfg.Console = c.Bool("verbose")
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		logCfg.Level = lvl
	}
	return di.Config{
		Env:    env.NewEnvService(c.String("env-dir")),
		Log:    logCfg,
		RunTag: c.Command.Name,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "storefront-e2e",
		Usage:   "End-to-end checks for the Swag Labs storefront",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-dir", Usage: "directory holding .env files"},
			&cli.BoolFlag{Name: "no-color", EnvVars: []string{"NO_COLOR"}, Usage: "disable colored output"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}
			return nil
		},
		Commands: []*cli.Command{
			RunCommand(),
			ListCommand(),
		},
	}
}

// run returns the process exit code. Errors are reported once, on stderr.
func run(ctx context.Context, app *cli.App, args []string, stderr io.Writer) int {
	if err := app.RunContext(ctx, args); err != nil {
		if exit, ok := err.(cli.ExitCoder); ok {
			return exit.ExitCode()
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, newApp(), os.Args, os.Stderr)
	stop()
	os.Exit(code)
}
