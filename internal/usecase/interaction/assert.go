package interaction

import (
	"context"
	"errors"
	"strings"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

// Assertions poll like waits but fail with entity.ErrAssertion, carrying
// what was expected and what was last observed.

func (i *Interactor) AssertVisible(ctx context.Context, selector string) error {
	if _, err := i.waiter.Visible(ctx, selector, 0); err != nil {
		return i.assertion(err, entity.ConditionVisible, selector, "visible", "not visible")
	}
	return nil
}

func (i *Interactor) AssertNotVisible(ctx context.Context, selector string) error {
	if err := i.waiter.Hidden(ctx, selector, 0); err != nil {
		return i.assertion(err, entity.ConditionHidden, selector, "hidden", "visible")
	}
	return nil
}

// AssertHasText requires the trimmed text to equal expected exactly.
func (i *Interactor) AssertHasText(ctx context.Context, selector, expected string) error {
	return i.assertText(ctx, selector, expected, func(actual string) bool {
		return actual == expected
	})
}

func (i *Interactor) AssertContainsText(ctx context.Context, selector, expected string) error {
	return i.assertText(ctx, selector, expected, func(actual string) bool {
		return strings.Contains(actual, expected)
	})
}

func (i *Interactor) assertText(ctx context.Context, selector, expected string, ok func(string) bool) error {
	var actual string
	err := i.waiter.Condition(ctx, func(ctx context.Context) (bool, error) {
		el, err := i.firstVisible(ctx, selector)
		if err != nil || el == nil {
			return false, err
		}
		text, err := el.Text(ctx)
		if err != nil {
			return false, nil
		}
		actual = strings.TrimSpace(text)
		return ok(actual), nil
	}, i.timeouts.ElementLoad, i.timeouts.Poll)
	if err != nil {
		return i.assertion(err, entity.ConditionTextContains, selector, expected, actual)
	}
	return nil
}

func (i *Interactor) AssertURLContains(ctx context.Context, fragment string) error {
	var actual string
	err := i.waiter.Condition(ctx, func(ctx context.Context) (bool, error) {
		url, err := i.browser.CurrentURL(ctx)
		if err != nil {
			return false, nil
		}
		actual = url
		return strings.Contains(url, fragment), nil
	}, i.timeouts.ElementLoad, i.timeouts.Poll)
	if err != nil {
		return i.assertion(err, entity.ConditionURLMatches, "", fragment, actual)
	}
	return nil
}

func (i *Interactor) AssertTitle(ctx context.Context, expected string) error {
	var actual string
	err := i.waiter.Condition(ctx, func(ctx context.Context) (bool, error) {
		title, err := i.browser.Title(ctx)
		if err != nil {
			return false, nil
		}
		actual = title
		return title == expected, nil
	}, i.timeouts.ElementLoad, i.timeouts.Poll)
	if err != nil {
		return i.assertion(err, "", "title", expected, actual)
	}
	return nil
}

func (i *Interactor) firstVisible(ctx context.Context, selector string) (output.ElementPort, error) {
	els, err := i.browser.Query(ctx, selector)
	if err != nil || len(els) == 0 {
		return nil, nil
	}
	visible, err := els[0].Visible(ctx)
	if err != nil || !visible {
		return nil, nil
	}
	return els[0], nil
}

// assertion converts an unmet readiness outcome into an assertion failure.
// Errors that are not outcomes, such as a cancelled context or a malformed
// selector, pass through.
func (i *Interactor) assertion(err error, cond entity.Condition, selector, expected, actual string) error {
	var f *entity.Failure
	if !errors.As(err, &f) || errors.Is(err, entity.ErrInvalidSelector) {
		return err
	}
	if actual == "" {
		actual = f.Actual
	}
	return &entity.Failure{
		Kind:      entity.ErrAssertion,
		Condition: cond,
		Selector:  selector,
		Budget:    f.Budget,
		Expected:  expected,
		Actual:    actual,
		Err:       f.Err,
	}
}
