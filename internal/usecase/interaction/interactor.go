package interaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/wait"
)

// Interactor performs every action only after the target has just been
// confirmed ready. One Interactor serves one session and is shared by all
// page objects of a test.
type Interactor struct {
	browser  output.BrowserPort
	waiter   *wait.Waiter
	timeouts entity.Timeouts
	baseURL  string
	logger   output.LoggerPort
}

func New(browser output.BrowserPort, waiter *wait.Waiter, baseURL string, logger output.LoggerPort) *Interactor {
	return &Interactor{
		browser:  browser,
		waiter:   waiter,
		timeouts: waiter.Timeouts(),
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

func (i *Interactor) Waiter() *wait.Waiter {
	return i.waiter
}

func (i *Interactor) Timeouts() entity.Timeouts {
	return i.timeouts
}

// URL resolves a path against the configured base URL.
func (i *Interactor) URL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return i.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Navigate loads url (absolute, or a path under the base URL) and waits
// for the page to settle.
func (i *Interactor) Navigate(ctx context.Context, url string) error {
	target := i.URL(url)
	i.logger.Debug("navigate", "url", target)
	if err := i.browser.Navigate(ctx, target); err != nil {
		return fmt.Errorf("navigate to %s: %w", target, err)
	}
	return i.waiter.PageLoad(ctx, 0)
}

func (i *Interactor) Reload(ctx context.Context) error {
	if err := i.browser.Reload(ctx); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return i.waiter.PageLoad(ctx, 0)
}

// Back and Forward move through the session history and wait for the
// page to load. At either end they leave the page as it is.
func (i *Interactor) Back(ctx context.Context) error {
	i.logger.Debug("navigate back")
	if err := i.browser.Back(ctx); err != nil {
		return fmt.Errorf("go back: %w", err)
	}
	return i.waiter.PageLoad(ctx, 0)
}

func (i *Interactor) Forward(ctx context.Context) error {
	i.logger.Debug("navigate forward")
	if err := i.browser.Forward(ctx); err != nil {
		return fmt.Errorf("go forward: %w", err)
	}
	return i.waiter.PageLoad(ctx, 0)
}

func (i *Interactor) CurrentURL(ctx context.Context) (string, error) {
	return i.browser.CurrentURL(ctx)
}

func (i *Interactor) Title(ctx context.Context) (string, error) {
	return i.browser.Title(ctx)
}

// Click waits for selector to be visible and enabled, then clicks that
// element exactly once.
func (i *Interactor) Click(ctx context.Context, selector string) error {
	el, err := i.waiter.Enabled(ctx, selector, 0)
	if err != nil {
		return err
	}
	i.logger.Debug("click", "selector", selector)
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("click %q: %w", selector, err)
	}
	return nil
}

// ClickElement is Click for a handle the caller already resolved, such as
// the nth match of a list.
func (i *Interactor) ClickElement(ctx context.Context, el output.ElementPort) error {
	budget := i.timeouts.ElementLoad
	disabled := false
	err := i.waiter.Condition(ctx, func(ctx context.Context) (bool, error) {
		visible, err := el.Visible(ctx)
		if err != nil || !visible {
			return false, err
		}
		enabled, err := el.Enabled(ctx)
		if err != nil {
			return false, err
		}
		disabled = !enabled
		return enabled, nil
	}, budget, i.timeouts.Poll)
	if err != nil {
		var f *entity.Failure
		if errors.As(err, &f) {
			f.Condition = entity.ConditionEnabled
			if disabled {
				f.Kind = entity.ErrElementDisabled
			}
		}
		return err
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("click element: %w", err)
	}
	return nil
}

func (i *Interactor) DoubleClick(ctx context.Context, selector string) error {
	el, err := i.waiter.Enabled(ctx, selector, 0)
	if err != nil {
		return err
	}
	i.logger.Debug("double click", "selector", selector)
	if err := el.DoubleClick(ctx); err != nil {
		return fmt.Errorf("double click %q: %w", selector, err)
	}
	return nil
}

func (i *Interactor) RightClick(ctx context.Context, selector string) error {
	el, err := i.waiter.Enabled(ctx, selector, 0)
	if err != nil {
		return err
	}
	i.logger.Debug("right click", "selector", selector)
	if err := el.RightClick(ctx); err != nil {
		return fmt.Errorf("right click %q: %w", selector, err)
	}
	return nil
}

func (i *Interactor) Hover(ctx context.Context, selector string) error {
	el, err := i.waiter.Visible(ctx, selector, 0)
	if err != nil {
		return err
	}
	if err := el.Hover(ctx); err != nil {
		return fmt.Errorf("hover %q: %w", selector, err)
	}
	return nil
}

// ScrollIntoView only needs the element attached; hidden elements scroll
// too.
func (i *Interactor) ScrollIntoView(ctx context.Context, selector string) error {
	el, err := i.waiter.Attached(ctx, selector, 0)
	if err != nil {
		return err
	}
	if err := el.ScrollIntoView(ctx); err != nil {
		return fmt.Errorf("scroll %q into view: %w", selector, err)
	}
	return nil
}

func (i *Interactor) ScrollToTop(ctx context.Context) error {
	return i.scroll(ctx, entity.ScrollTop)
}

func (i *Interactor) ScrollToBottom(ctx context.Context) error {
	return i.scroll(ctx, entity.ScrollBottom)
}

func (i *Interactor) scroll(ctx context.Context, edge entity.ScrollEdge) error {
	if err := i.browser.Scroll(ctx, edge); err != nil {
		return fmt.Errorf("scroll to %s: %w", edge, err)
	}
	return nil
}

// Press sends key, a name such as "Enter" or a single character, to the
// focused element.
func (i *Interactor) Press(ctx context.Context, key string) error {
	i.logger.Debug("press", "key", key)
	if err := i.browser.Press(ctx, key); err != nil {
		return fmt.Errorf("press %s: %w", key, err)
	}
	return nil
}

// Fill waits for the field to be visible and sets its value in one step.
func (i *Interactor) Fill(ctx context.Context, selector, value string) error {
	el, err := i.waiter.Visible(ctx, selector, 0)
	if err != nil {
		return err
	}
	if err := el.SetValue(ctx, value); err != nil {
		return fmt.Errorf("fill %q: %w", selector, err)
	}
	return nil
}

func (i *Interactor) ClearAndFill(ctx context.Context, selector, value string) error {
	el, err := i.waiter.Visible(ctx, selector, 0)
	if err != nil {
		return err
	}
	if err := el.SetValue(ctx, ""); err != nil {
		return fmt.Errorf("clear %q: %w", selector, err)
	}
	if err := el.SetValue(ctx, value); err != nil {
		return fmt.Errorf("fill %q: %w", selector, err)
	}
	return nil
}

// TypeSlowly emits text one character at a time for inputs that debounce
// keystrokes. Zero perChar uses 100ms.
func (i *Interactor) TypeSlowly(ctx context.Context, selector, text string, perChar time.Duration) error {
	if perChar <= 0 {
		perChar = 100 * time.Millisecond
	}
	el, err := i.waiter.Visible(ctx, selector, 0)
	if err != nil {
		return err
	}
	if err := el.Type(ctx, text, perChar); err != nil {
		return fmt.Errorf("type into %q: %w", selector, err)
	}
	return nil
}

// ReadText returns the trimmed text of the first visible match.
func (i *Interactor) ReadText(ctx context.Context, selector string) (string, error) {
	el, err := i.waiter.Visible(ctx, selector, 0)
	if err != nil {
		return "", err
	}
	return i.ReadElementText(ctx, el)
}

func (i *Interactor) ReadElementText(ctx context.Context, el output.ElementPort) (string, error) {
	text, err := el.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ReadAttribute returns the attribute value, or "" when it is absent.
func (i *Interactor) ReadAttribute(ctx context.Context, selector, name string) (string, error) {
	el, err := i.waiter.Visible(ctx, selector, 0)
	if err != nil {
		return "", err
	}
	v, _, err := el.Attribute(ctx, name)
	if err != nil {
		return "", fmt.Errorf("read attribute %s of %q: %w", name, selector, err)
	}
	return v, nil
}

// ReadValue returns the current value of a form field.
func (i *Interactor) ReadValue(ctx context.Context, selector string) (string, error) {
	el, err := i.waiter.Visible(ctx, selector, 0)
	if err != nil {
		return "", err
	}
	v, err := el.Value(ctx)
	if err != nil {
		return "", fmt.Errorf("read value of %q: %w", selector, err)
	}
	return v, nil
}

func (i *Interactor) SelectOption(ctx context.Context, selector, value string) error {
	return i.selectOption(ctx, selector, entity.SelectByValue, value)
}

func (i *Interactor) SelectOptionByLabel(ctx context.Context, selector, label string) error {
	return i.selectOption(ctx, selector, entity.SelectByLabel, label)
}

func (i *Interactor) selectOption(ctx context.Context, selector string, by entity.SelectBy, option string) error {
	el, err := i.waiter.Visible(ctx, selector, 0)
	if err != nil {
		return err
	}
	if err := el.Select(ctx, by, option); err != nil {
		return fmt.Errorf("select %s %q in %q: %w", by, option, selector, err)
	}
	return nil
}

// All waits for selector to attach and returns a snapshot of the matches
// in document order. Later DOM changes are not reflected.
func (i *Interactor) All(ctx context.Context, selector string) ([]output.ElementPort, error) {
	if _, err := i.waiter.Attached(ctx, selector, 0); err != nil {
		return nil, err
	}
	els, err := i.browser.Query(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	return els, nil
}

// Count returns the current number of matches without waiting.
func (i *Interactor) Count(ctx context.Context, selector string) (int, error) {
	els, err := i.browser.Query(ctx, selector)
	if err != nil {
		return 0, fmt.Errorf("query %q: %w", selector, err)
	}
	return len(els), nil
}

func (i *Interactor) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	shot, err := i.browser.Screenshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return shot, nil
}
