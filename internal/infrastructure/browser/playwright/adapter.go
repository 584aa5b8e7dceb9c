// Package playwright is a BrowserPort on playwright-go. Browsers must be
// installed beforehand with the playwright CLI.
package playwright

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

var (
	ErrClosed          = errors.New("browser closed")
	ErrInvalidSelector = entity.ErrInvalidSelector
)

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{Headless: true}
}

type BrowserAdapter struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page

	mu     sync.Mutex
	closed bool
}

func NewBrowserAdapter(cfg BrowserConfig) (*BrowserAdapter, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMotion.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		pw:      pw,
		browser: browser,
		page:    page,
	}, nil
}

func (b *BrowserAdapter) ready() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return nil
}

// timeout converts the context deadline into a playwright timeout in
// milliseconds. Without a deadline playwright's own default applies.
func timeout(ctx context.Context) *float64 {
	deadline, ok := ctx.Deadline()
	if !ok {
		return nil
	}
	ms := float64(time.Until(deadline).Milliseconds())
	return playwright.Float(max(ms, 1))
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	if err := b.ready(); err != nil {
		return err
	}
	if _, err := b.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   timeout(ctx),
		WaitUntil: playwright.WaitUntilStateCommit,
	}); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Reload(ctx context.Context) error {
	if err := b.ready(); err != nil {
		return err
	}
	if _, err := b.page.Reload(playwright.PageReloadOptions{
		Timeout:   timeout(ctx),
		WaitUntil: playwright.WaitUntilStateCommit,
	}); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Back(ctx context.Context) error {
	if err := b.ready(); err != nil {
		return err
	}
	if _, err := b.page.GoBack(playwright.PageGoBackOptions{
		Timeout:   timeout(ctx),
		WaitUntil: playwright.WaitUntilStateCommit,
	}); err != nil {
		return fmt.Errorf("go back failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Forward(ctx context.Context) error {
	if err := b.ready(); err != nil {
		return err
	}
	if _, err := b.page.GoForward(playwright.PageGoForwardOptions{
		Timeout:   timeout(ctx),
		WaitUntil: playwright.WaitUntilStateCommit,
	}); err != nil {
		return fmt.Errorf("go forward failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) CurrentURL(ctx context.Context) (string, error) {
	if err := b.ready(); err != nil {
		return "", err
	}
	return b.page.URL(), nil
}

func (b *BrowserAdapter) Title(ctx context.Context) (string, error) {
	if err := b.ready(); err != nil {
		return "", err
	}
	return b.page.Title()
}

func (b *BrowserAdapter) WaitLoadState(ctx context.Context, state entity.LoadState) error {
	if err := b.ready(); err != nil {
		return err
	}

	var ls *playwright.LoadState
	switch state {
	case entity.LoadStateDOMContentLoaded:
		ls = playwright.LoadStateDomcontentloaded
	case entity.LoadStateLoad:
		ls = playwright.LoadStateLoad
	case entity.LoadStateNetworkIdle:
		ls = playwright.LoadStateNetworkidle
	default:
		return fmt.Errorf("unknown load state %q", state)
	}

	err := b.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   ls,
		Timeout: timeout(ctx),
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("wait for %s: %w", state, err)
	}
	return nil
}

func (b *BrowserAdapter) Query(ctx context.Context, selector string) ([]output.ElementPort, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	return all(b.page.Locator(selector), selector)
}

func all(loc playwright.Locator, selector string) ([]output.ElementPort, error) {
	locs, err := loc.All()
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "Unexpected token") ||
			strings.Contains(msg, "is not a valid selector") ||
			strings.Contains(msg, "Unknown engine") {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSelector, selector, err)
		}
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	out := make([]output.ElementPort, 0, len(locs))
	for _, l := range locs {
		out = append(out, &element{loc: l})
	}
	return out, nil
}

func (b *BrowserAdapter) Press(ctx context.Context, key string) error {
	if err := b.ready(); err != nil {
		return err
	}
	if err := b.page.Keyboard().Press(key); err != nil {
		return fmt.Errorf("press %s failed: %w", key, err)
	}
	return nil
}

func (b *BrowserAdapter) Scroll(ctx context.Context, edge entity.ScrollEdge) error {
	var js string
	switch edge {
	case entity.ScrollTop:
		js = `() => window.scrollTo(0, 0)`
	case entity.ScrollBottom:
		js = `() => window.scrollTo(0, document.body.scrollHeight)`
	default:
		return fmt.Errorf("unknown scroll edge %q", edge)
	}
	if err := b.ready(); err != nil {
		return err
	}
	if _, err := b.page.Evaluate(js); err != nil {
		return fmt.Errorf("scroll to %s failed: %w", edge, err)
	}
	return nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if err := b.ready(); err != nil {
		return nil, err
	}
	data, err := b.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
		Type:     playwright.ScreenshotTypeJpeg,
		Quality:  playwright.Int(80),
		Timeout:  timeout(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	size := b.page.ViewportSize()
	shot := &entity.Screenshot{Data: data, Format: "jpeg"}
	if size != nil {
		shot.Width, shot.Height = size.Width, size.Height
	}
	return shot, nil
}

func (b *BrowserAdapter) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.pw != nil {
		_ = b.pw.Stop()
	}
}
