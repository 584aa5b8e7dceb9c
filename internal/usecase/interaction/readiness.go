package interaction

import (
	"context"
	"fmt"
	"strings"

	"storefront-e2e/internal/domain/entity"
)

// Loaded evaluates a readiness description with the short probe budget per check
// and reports whether all of it holds. Like the Is* probes it never raises.
func (i *Interactor) Loaded(ctx context.Context, r entity.Readiness) bool {
	for _, c := range r.Checks {
		if err := i.waiter.Await(ctx, c, i.timeouts.Short); err != nil {
			i.logger.Debug("readiness check not met", "page", r.Name, "selector", c.Selector, "condition", c.Condition)
			return false
		}
	}
	if r.Title != "" {
		title, err := i.browser.Title(ctx)
		if err != nil || title != r.Title {
			return false
		}
	}
	if r.URL != "" {
		url, err := i.browser.CurrentURL(ctx)
		if err != nil || !strings.Contains(url, r.URL) {
			return false
		}
	}
	return true
}

// AssertReady checks the same readiness as Loaded but fails with an assertion
// naming the first unmet part.
func (i *Interactor) AssertReady(ctx context.Context, r entity.Readiness) error {
	for _, c := range r.Checks {
		if err := i.waiter.Await(ctx, c, 0); err != nil {
			expected := c.Text
			if expected == "" {
				expected = string(c.Condition)
			}
			return fmt.Errorf("%s not ready: %w", r.Name, i.assertion(err, c.Condition, c.Selector, expected, ""))
		}
	}
	if r.Title != "" {
		if err := i.AssertTitle(ctx, r.Title); err != nil {
			return fmt.Errorf("%s not ready: %w", r.Name, err)
		}
	}
	if r.URL != "" {
		if err := i.AssertURLContains(ctx, r.URL); err != nil {
			return fmt.Errorf("%s not ready: %w", r.Name, err)
		}
	}
	return nil
}

