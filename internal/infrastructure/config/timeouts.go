package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

// LoadTimeouts builds the timeout table from the defaults, then the YAML
// file named by TIMEOUTS_FILE, then TIMEOUT_<NAME>_MS variables.
func LoadTimeouts(cfg output.ConfigPort) (entity.Timeouts, error) {
	t := entity.DefaultTimeouts()

	if path := cfg.Get("TIMEOUTS_FILE"); path != "" {
		fromFile, err := LoadTimeoutsFile(path)
		if err != nil {
			return entity.Timeouts{}, err
		}
		t = fromFile
	}

	override := func(key string, v *time.Duration) {
		*v = cfg.GetDuration(key, *v)
	}
	override("TIMEOUT_DEFAULT_MS", &t.Default)
	override("TIMEOUT_SHORT_MS", &t.Short)
	override("TIMEOUT_MEDIUM_MS", &t.Medium)
	override("TIMEOUT_LONG_MS", &t.Long)
	override("TIMEOUT_ELEMENT_LOAD_MS", &t.ElementLoad)
	override("TIMEOUT_PAGE_LOAD_MS", &t.PageLoad)
	override("TIMEOUT_POLL_MS", &t.Poll)

	return t.WithDefaults(), nil
}

// LoadTimeoutsFile reads a YAML table such as
//
//	short: 5s
//	page_load: 30s
//
// Absent keys keep their defaults.
func LoadTimeoutsFile(path string) (entity.Timeouts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Timeouts{}, fmt.Errorf("read timeouts file: %w", err)
	}
	var t entity.Timeouts
	if err := yaml.Unmarshal(data, &t); err != nil {
		return entity.Timeouts{}, fmt.Errorf("parse timeouts file %s: %w", path, err)
	}
	return t.WithDefaults(), nil
}
