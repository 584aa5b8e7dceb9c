package wait

import (
	"context"
	"strconv"
	"strings"
	"time"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

func (w *Waiter) first(ctx context.Context, selector string) (output.ElementPort, error) {
	els, err := w.browser.Query(ctx, selector)
	if err != nil || len(els) == 0 {
		return nil, err
	}
	return els[0], nil
}

// Visible waits until the first element matching selector is rendered and
// returns it.
func (w *Waiter) Visible(ctx context.Context, selector string, timeout time.Duration) (output.ElementPort, error) {
	budget := w.timeouts.Resolve(entity.ConditionVisible, timeout)

	var found output.ElementPort
	var last error
	err := poll(ctx, budget, w.timeouts.Poll, func(ctx context.Context) (bool, error) {
		el, err := w.first(ctx, selector)
		if err != nil || el == nil {
			return false, settle(&last, err)
		}
		visible, err := el.Visible(ctx)
		if err != nil || !visible {
			return false, settle(&last, err)
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, w.fail(err, entity.ErrTimeout, entity.ConditionVisible, selector, budget, last)
	}
	return found, nil
}

// Hidden waits until nothing matches selector or the first match is not
// rendered.
func (w *Waiter) Hidden(ctx context.Context, selector string, timeout time.Duration) error {
	budget := w.timeouts.Resolve(entity.ConditionHidden, timeout)

	var last error
	err := poll(ctx, budget, w.timeouts.Poll, func(ctx context.Context) (bool, error) {
		el, err := w.first(ctx, selector)
		if err != nil {
			return false, settle(&last, err)
		}
		if el == nil {
			return true, nil
		}
		visible, err := el.Visible(ctx)
		if err != nil {
			return false, settle(&last, err)
		}
		return !visible, nil
	})
	if err != nil {
		return w.fail(err, entity.ErrTimeout, entity.ConditionHidden, selector, budget, last)
	}
	return nil
}

// Attached waits until at least one element matches selector and returns
// the first one.
func (w *Waiter) Attached(ctx context.Context, selector string, timeout time.Duration) (output.ElementPort, error) {
	budget := w.timeouts.Resolve(entity.ConditionAttached, timeout)

	var found output.ElementPort
	var last error
	err := poll(ctx, budget, w.timeouts.Poll, func(ctx context.Context) (bool, error) {
		el, err := w.first(ctx, selector)
		if err != nil || el == nil {
			return false, settle(&last, err)
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, w.fail(err, entity.ErrTimeout, entity.ConditionAttached, selector, budget, last)
	}
	return found, nil
}

func (w *Waiter) Detached(ctx context.Context, selector string, timeout time.Duration) error {
	budget := w.timeouts.Resolve(entity.ConditionDetached, timeout)

	var last error
	err := poll(ctx, budget, w.timeouts.Poll, func(ctx context.Context) (bool, error) {
		els, err := w.browser.Query(ctx, selector)
		if err != nil {
			return false, settle(&last, err)
		}
		return len(els) == 0, nil
	})
	if err != nil {
		return w.fail(err, entity.ErrTimeout, entity.ConditionDetached, selector, budget, last)
	}
	return nil
}

// Enabled waits until the first match is visible and not disabled. If it
// is visible but still disabled when the budget runs out the failure kind
// is ErrElementDisabled, otherwise ErrTimeout.
func (w *Waiter) Enabled(ctx context.Context, selector string, timeout time.Duration) (output.ElementPort, error) {
	budget := w.timeouts.Resolve(entity.ConditionEnabled, timeout)

	var found output.ElementPort
	var last error
	disabled := false
	err := poll(ctx, budget, w.timeouts.Poll, func(ctx context.Context) (bool, error) {
		disabled = false
		el, err := w.first(ctx, selector)
		if err != nil || el == nil {
			return false, settle(&last, err)
		}
		visible, err := el.Visible(ctx)
		if err != nil || !visible {
			return false, settle(&last, err)
		}
		enabled, err := el.Enabled(ctx)
		if err != nil {
			return false, settle(&last, err)
		}
		if !enabled {
			disabled = true
			return false, nil
		}
		found = el
		return true, nil
	})
	if err != nil {
		kind := entity.ErrTimeout
		if disabled {
			kind = entity.ErrElementDisabled
		}
		return nil, w.fail(err, kind, entity.ConditionEnabled, selector, budget, last)
	}
	return found, nil
}

// TextContains waits for the element to be visible, then checks its text
// once.
func (w *Waiter) TextContains(ctx context.Context, selector, expected string, timeout time.Duration) error {
	budget := w.timeouts.Resolve(entity.ConditionTextContains, timeout)

	el, err := w.Visible(ctx, selector, budget)
	if err != nil {
		return err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(text, expected) {
		return &entity.Failure{
			Kind:      entity.ErrTextMismatch,
			Condition: entity.ConditionTextContains,
			Selector:  selector,
			Expected:  expected,
			Actual:    text,
		}
	}
	return nil
}

// ElementCount waits for the selector to attach, then compares the live
// match count once. An expected count of zero waits for detachment.
func (w *Waiter) ElementCount(ctx context.Context, selector string, expected int, timeout time.Duration) error {
	if expected == 0 {
		return w.Detached(ctx, selector, timeout)
	}
	if _, err := w.Attached(ctx, selector, timeout); err != nil {
		return err
	}

	els, err := w.browser.Query(ctx, selector)
	if err != nil {
		return err
	}
	if len(els) != expected {
		return &entity.Failure{
			Kind:      entity.ErrCountMismatch,
			Condition: entity.ConditionAttached,
			Selector:  selector,
			Expected:  strconv.Itoa(expected),
			Actual:    strconv.Itoa(len(els)),
		}
	}
	return nil
}

// AnimationsDone waits for the element to attach and for its running
// animations to finish.
func (w *Waiter) AnimationsDone(ctx context.Context, selector string, timeout time.Duration) error {
	budget := timeout
	if budget <= 0 {
		budget = w.timeouts.Medium
	}

	el, err := w.Attached(ctx, selector, budget)
	if err != nil {
		return err
	}

	var last error
	err = poll(ctx, budget, w.timeouts.Poll, func(ctx context.Context) (bool, error) {
		animating, err := el.Animating(ctx)
		if err != nil {
			return false, settle(&last, err)
		}
		return !animating, nil
	})
	if err != nil {
		return w.fail(err, entity.ErrTimeout, entity.ConditionAttached, selector, budget, last)
	}
	return nil
}
