package di

import (
	"context"
	"fmt"

	"storefront-e2e/internal/application/port/input"
	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/application/service"
	"storefront-e2e/internal/application/usecase"
	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/infrastructure/browser/playwright"
	"storefront-e2e/internal/infrastructure/browser/rod"
	"storefront-e2e/internal/infrastructure/browser/static"
	"storefront-e2e/internal/infrastructure/config"
	"storefront-e2e/internal/infrastructure/console"
	"storefront-e2e/internal/infrastructure/fixtures"
	"storefront-e2e/internal/infrastructure/logger"
	"storefront-e2e/internal/infrastructure/storefront"
	"storefront-e2e/internal/usecase/interaction"
	"storefront-e2e/internal/usecase/scenario"
	"storefront-e2e/internal/usecase/wait"
)

type Container struct {
	Browser    output.BrowserPort
	Logger     output.LoggerPort
	Reporter   *console.Reporter
	Timeouts   entity.Timeouts
	Interactor *interaction.Interactor
	Fixtures   *fixtures.Fixtures
	Scenarios  *service.ScenarioRegistryImpl
	Runner     input.ScenarioRunner
	// Store is the in-memory storefront behind the static driver, nil for
	// real browsers.
	Store *storefront.Store
}

type Config struct {
	Env    output.ConfigPort
	Log    logger.Config
	Run    usecase.RunScenariosConfig
	RunTag string
	// Driver overrides BROWSER_DRIVER when set.
	Driver string
	// Logger replaces the file logger, mostly for tests.
	Logger output.LoggerPort
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log := cfg.Logger
	if log == nil {
		fileLog, err := logger.NewLoggerAdapter(cfg.RunTag, cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		log = fileLog
	}

	c, err := build(ctx, cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}
	return c, nil
}

func build(ctx context.Context, cfg Config, log output.LoggerPort) (*Container, error) {
	browserCfg, err := config.LoadBrowserConfig(cfg.Env)
	if err != nil {
		return nil, err
	}
	if cfg.Driver != "" {
		browserCfg.Driver = cfg.Driver
	}
	timeouts, err := config.LoadTimeouts(cfg.Env)
	if err != nil {
		return nil, err
	}
	data, err := fixtures.Load(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}

	c := &Container{
		Logger:   log,
		Reporter: console.NewReporter(),
		Timeouts: timeouts,
		Fixtures: data,
	}
	c.Browser, c.Store, err = newBrowser(ctx, browserCfg, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	log.Info("Browser ready", "driver", browserCfg.Driver, "baseURL", browserCfg.BaseURL, "headless", browserCfg.Headless)

	waiter := wait.New(c.Browser, timeouts, log)
	c.Interactor = interaction.New(c.Browser, waiter, browserCfg.BaseURL, log)

	c.Scenarios = service.NewScenarioRegistry()
	scenario.NewSuite(c.Interactor, data, log).Register(c.Scenarios)

	c.Runner = usecase.NewRunScenariosUseCase(c.Scenarios, c.Browser, c.Reporter, log, cfg.Run)
	return c, nil
}

func newBrowser(ctx context.Context, cfg config.BrowserConfig, data *fixtures.Fixtures) (output.BrowserPort, *storefront.Store, error) {
	switch cfg.Driver {
	case config.DriverStatic:
		d := static.New()
		store, err := storefront.Mount(d, cfg.BaseURL, data.Products())
		if err != nil {
			return nil, nil, err
		}
		return d, store, nil

	case config.DriverPlaywright:
		pwCfg := playwright.DefaultConfig()
		pwCfg.Headless = cfg.Headless
		pwCfg.SlowMotion = cfg.SlowMotion
		b, err := playwright.NewBrowserAdapter(pwCfg)
		if err != nil {
			return nil, nil, err
		}
		return b, nil, nil

	default:
		rodCfg := rod.DefaultConfig()
		rodCfg.Headless = cfg.Headless
		rodCfg.SlowMotion = cfg.SlowMotion
		rodCfg.NoSandbox = cfg.NoSandbox
		b, err := rod.NewBrowserAdapter(ctx, rodCfg)
		if err != nil {
			return nil, nil, err
		}
		return b, nil, nil
	}
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
