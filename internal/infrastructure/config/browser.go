package config

import (
	"fmt"
	"time"

	"storefront-e2e/internal/application/port/output"
)

const (
	DriverRod        = "rod"
	DriverPlaywright = "playwright"
	DriverStatic     = "static"

	defaultBaseURL = "https://www.saucedemo.com"
)

type BrowserConfig struct {
	Driver     string
	BaseURL    string
	Headless   bool
	SlowMotion time.Duration
	NoSandbox  bool
}

func LoadBrowserConfig(cfg output.ConfigPort) (BrowserConfig, error) {
	bc := BrowserConfig{
		Driver:     cfg.GetWithDefault("BROWSER_DRIVER", DriverRod),
		BaseURL:    cfg.GetWithDefault("BASE_URL", defaultBaseURL),
		Headless:   cfg.GetBool("HEADLESS", true),
		SlowMotion: cfg.GetDuration("SLOW_MOTION_MS", 0),
		NoSandbox:  cfg.GetBool("NO_SANDBOX", false),
	}
	switch bc.Driver {
	case DriverRod, DriverPlaywright, DriverStatic:
	default:
		return BrowserConfig{}, fmt.Errorf("unknown BROWSER_DRIVER %q", bc.Driver)
	}
	return bc, nil
}
