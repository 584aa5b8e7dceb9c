package playwright

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

var _ output.ElementPort = (*element)(nil)

type element struct {
	loc playwright.Locator
}

func (e *element) Visible(ctx context.Context) (bool, error) {
	return e.loc.IsVisible()
}

func (e *element) Enabled(ctx context.Context) (bool, error) {
	return e.loc.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: timeout(ctx)})
}

func (e *element) Animating(ctx context.Context) (bool, error) {
	v, err := e.loc.Evaluate(`el => el.getAnimations().some(a => a.playState === 'running')`, nil,
		playwright.LocatorEvaluateOptions{Timeout: timeout(ctx)})
	if err != nil {
		return false, err
	}
	running, _ := v.(bool)
	return running, nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	return e.loc.TextContent(playwright.LocatorTextContentOptions{Timeout: timeout(ctx)})
}

func (e *element) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, err := e.loc.Evaluate(`(el, name) => el.getAttribute(name)`, name,
		playwright.LocatorEvaluateOptions{Timeout: timeout(ctx)})
	if err != nil {
		return "", false, err
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (e *element) Value(ctx context.Context) (string, error) {
	return e.loc.InputValue(playwright.LocatorInputValueOptions{Timeout: timeout(ctx)})
}

func (e *element) Click(ctx context.Context) error {
	if err := e.loc.Click(playwright.LocatorClickOptions{Timeout: timeout(ctx)}); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (e *element) DoubleClick(ctx context.Context) error {
	if err := e.loc.Dblclick(playwright.LocatorDblclickOptions{Timeout: timeout(ctx)}); err != nil {
		return fmt.Errorf("double click failed: %w", err)
	}
	return nil
}

func (e *element) RightClick(ctx context.Context) error {
	err := e.loc.Click(playwright.LocatorClickOptions{
		Button:  playwright.MouseButtonRight,
		Timeout: timeout(ctx),
	})
	if err != nil {
		return fmt.Errorf("right click failed: %w", err)
	}
	return nil
}

func (e *element) Hover(ctx context.Context) error {
	if err := e.loc.Hover(playwright.LocatorHoverOptions{Timeout: timeout(ctx)}); err != nil {
		return fmt.Errorf("hover failed: %w", err)
	}
	return nil
}

func (e *element) ScrollIntoView(ctx context.Context) error {
	err := e.loc.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{Timeout: timeout(ctx)})
	if err != nil {
		return fmt.Errorf("scroll into view failed: %w", err)
	}
	return nil
}

func (e *element) SetValue(ctx context.Context, value string) error {
	if err := e.loc.Fill(value, playwright.LocatorFillOptions{Timeout: timeout(ctx)}); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

func (e *element) Type(ctx context.Context, text string, perChar time.Duration) error {
	err := e.loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay:   playwright.Float(float64(perChar.Milliseconds())),
		Timeout: timeout(ctx),
	})
	if err != nil {
		return fmt.Errorf("type failed: %w", err)
	}
	return nil
}

func (e *element) Select(ctx context.Context, by entity.SelectBy, option string) error {
	values := playwright.SelectOptionValues{Values: &[]string{option}}
	if by == entity.SelectByLabel {
		values = playwright.SelectOptionValues{Labels: &[]string{option}}
	}
	if _, err := e.loc.SelectOption(values, playwright.LocatorSelectOptionOptions{Timeout: timeout(ctx)}); err != nil {
		return fmt.Errorf("select failed: %w", err)
	}
	return nil
}

func (e *element) Find(ctx context.Context, selector string) ([]output.ElementPort, error) {
	return all(e.loc.Locator(selector), selector)
}
