package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-e2e/internal/domain/entity"
)

// URLMatches waits until the current URL satisfies pattern. An already
// matching URL returns after a single check.
func (w *Waiter) URLMatches(ctx context.Context, pattern URLPattern, timeout time.Duration) error {
	budget := w.timeouts.Resolve(entity.ConditionURLMatches, timeout)

	var current string
	var last error
	err := poll(ctx, budget, w.timeouts.Poll, func(ctx context.Context) (bool, error) {
		url, err := w.browser.CurrentURL(ctx)
		if err != nil {
			last = err
			return false, nil
		}
		current = url
		return pattern.Match(url), nil
	})
	if err != nil {
		err = w.fail(err, entity.ErrTimeout, entity.ConditionURLMatches, "", budget, last)
		var f *entity.Failure
		if errors.As(err, &f) {
			f.Expected = pattern.String()
			f.Actual = current
		}
		return err
	}
	return nil
}

// PageLoad waits for DOMContentLoaded and then network idle. Both
// milestones share one total budget: whatever the first consumes is not
// available to the second.
func (w *Waiter) PageLoad(ctx context.Context, timeout time.Duration) error {
	budget := w.timeouts.Resolve(entity.ConditionNetworkIdle, timeout)

	lctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	for _, state := range []entity.LoadState{entity.LoadStateDOMContentLoaded, entity.LoadStateNetworkIdle} {
		if err := w.browser.WaitLoadState(lctx, state); err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("wait for %s: %w", state, ctx.Err())
			}
			if lctx.Err() != nil {
				w.logger.Debug("page load timed out", "state", state, "budget_ms", budget.Milliseconds())
				return &entity.Failure{
					Kind:      entity.ErrTimeout,
					Condition: entity.ConditionNetworkIdle,
					Budget:    budget,
					Expected:  string(state),
					Err:       err,
				}
			}
			return fmt.Errorf("wait for %s: %w", state, err)
		}
	}
	return nil
}

// Await evaluates one declarative check.
func (w *Waiter) Await(ctx context.Context, check entity.Check, timeout time.Duration) error {
	var err error
	switch check.Condition {
	case entity.ConditionVisible:
		_, err = w.Visible(ctx, check.Selector, timeout)
	case entity.ConditionHidden:
		err = w.Hidden(ctx, check.Selector, timeout)
	case entity.ConditionAttached:
		_, err = w.Attached(ctx, check.Selector, timeout)
	case entity.ConditionDetached:
		err = w.Detached(ctx, check.Selector, timeout)
	case entity.ConditionEnabled:
		_, err = w.Enabled(ctx, check.Selector, timeout)
	case entity.ConditionTextContains:
		err = w.TextContains(ctx, check.Selector, check.Text, timeout)
	case entity.ConditionURLMatches:
		err = w.URLMatches(ctx, URLContains(check.Text), timeout)
	case entity.ConditionNetworkIdle:
		err = w.PageLoad(ctx, timeout)
	default:
		err = fmt.Errorf("unknown condition %q", check.Condition)
	}
	return err
}
