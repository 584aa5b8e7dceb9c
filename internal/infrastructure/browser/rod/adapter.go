package rod

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidSelector = entity.ErrInvalidSelector
	ErrClosed          = errors.New("browser closed")
)

const (
	defaultSlowMotion = 0
	// networkIdleWindow is how long the page must go without requests to
	// count as network idle.
	networkIdleWindow = 500 * time.Millisecond
)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page

	mu     sync.Mutex
	closed bool
}

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	NoSandbox  bool
	DevTools   bool
	// Bin is an explicit Chrome binary; empty lets the launcher find or
	// download one.
	Bin string
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   true,
		SlowMotion: defaultSlowMotion,
		NoSandbox:  false,
		DevTools:   false,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(controlURL).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
	}, nil
}

func (b *BrowserAdapter) IsReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed && b.page != nil
}

func (b *BrowserAdapter) p(ctx context.Context) (*rod.Page, error) {
	if !b.IsReady() {
		return nil, ErrClosed
	}
	return b.page.Context(ctx), nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}
	page, err := b.p(ctx)
	if err != nil {
		return err
	}
	if err := page.Navigate(rawURL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func validateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "http", "https", "file", "about":
		return nil
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
}

func (b *BrowserAdapter) Reload(ctx context.Context) error {
	page, err := b.p(ctx)
	if err != nil {
		return err
	}
	if err := page.Reload(); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Back(ctx context.Context) error {
	page, err := b.p(ctx)
	if err != nil {
		return err
	}
	if err := page.NavigateBack(); err != nil {
		return fmt.Errorf("navigate back: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Forward(ctx context.Context) error {
	page, err := b.p(ctx)
	if err != nil {
		return err
	}
	if err := page.NavigateForward(); err != nil {
		return fmt.Errorf("navigate forward: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) CurrentURL(ctx context.Context) (string, error) {
	page, err := b.p(ctx)
	if err != nil {
		return "", err
	}
	info, err := page.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.URL, nil
}

func (b *BrowserAdapter) Title(ctx context.Context) (string, error) {
	page, err := b.p(ctx)
	if err != nil {
		return "", err
	}
	info, err := page.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.Title, nil
}

func (b *BrowserAdapter) WaitLoadState(ctx context.Context, state entity.LoadState) error {
	page, err := b.p(ctx)
	if err != nil {
		return err
	}

	switch state {
	case entity.LoadStateDOMContentLoaded:
		err = page.Wait(rod.Eval(`() => document.readyState !== 'loading'`))
	case entity.LoadStateLoad:
		err = page.WaitLoad()
	case entity.LoadStateNetworkIdle:
		page.WaitRequestIdle(networkIdleWindow, nil, nil, nil)()
		err = ctx.Err()
	default:
		err = fmt.Errorf("unknown load state %q", state)
	}
	if err != nil {
		return fmt.Errorf("wait for %s: %w", state, err)
	}
	return nil
}

func (b *BrowserAdapter) Query(ctx context.Context, selector string) ([]output.ElementPort, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, ErrInvalidSelector
	}
	page, err := b.p(ctx)
	if err != nil {
		return nil, err
	}

	var els rod.Elements
	if isXPath(selector) {
		els, err = page.ElementsX(selector)
	} else {
		els, err = page.Elements(selector)
	}
	if err != nil {
		return nil, queryError(selector, err)
	}
	return wrap(els), nil
}

// queryError tags the browser's syntax errors for selectors with
// ErrInvalidSelector.
func queryError(selector string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "is not a valid selector") ||
		strings.Contains(msg, "is not a valid XPath expression") ||
		strings.Contains(msg, "SyntaxError") {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSelector, selector, err)
	}
	return fmt.Errorf("query %q: %w", selector, err)
}

func isXPath(selector string) bool {
	return strings.HasPrefix(selector, "/") || strings.HasPrefix(selector, "(")
}

var namedKeys = map[string]input.Key{
	"Enter":      input.Enter,
	"Tab":        input.Tab,
	"Escape":     input.Escape,
	"Backspace":  input.Backspace,
	"Delete":     input.Delete,
	"Space":      input.Space,
	"Home":       input.Home,
	"End":        input.End,
	"PageUp":     input.PageUp,
	"PageDown":   input.PageDown,
	"ArrowUp":    input.ArrowUp,
	"ArrowDown":  input.ArrowDown,
	"ArrowLeft":  input.ArrowLeft,
	"ArrowRight": input.ArrowRight,
}

// keyFor resolves a key name, or a single ASCII character, to a key on the
// US layout.
func keyFor(name string) (input.Key, error) {
	if k, ok := namedKeys[name]; ok {
		return k, nil
	}
	if r := []rune(name); len(r) == 1 && r[0] > ' ' && r[0] < 0x7f {
		return input.Key(r[0]), nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

func (b *BrowserAdapter) Press(ctx context.Context, key string) error {
	k, err := keyFor(key)
	if err != nil {
		return err
	}
	page, err := b.p(ctx)
	if err != nil {
		return err
	}
	if err := page.Keyboard.Type(k); err != nil {
		return fmt.Errorf("press %s: %w", key, err)
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
	page, err := b.p(ctx)
	if err != nil {
		return err
	}
	if _, err := page.Eval(js); err != nil {
		return fmt.Errorf("scroll to %s: %w", edge, err)
	}
	return nil
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
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}
