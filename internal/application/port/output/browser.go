package output

import (
	"context"
	"time"

	"storefront-e2e/internal/domain/entity"
)

// BrowserPort is one exclusive browser session. Probe methods observe the
// current state once and return; waiting is the caller's concern.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	Reload(ctx context.Context) error
	// Back and Forward move through the session history. At either end
	// they do nothing.
	Back(ctx context.Context) error
	Forward(ctx context.Context) error
	CurrentURL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)

	// WaitLoadState blocks until the page reaches state or ctx is done.
	WaitLoadState(ctx context.Context, state entity.LoadState) error

	// Query returns the elements matching selector in document order.
	// No match is an empty slice, not an error.
	Query(ctx context.Context, selector string) ([]ElementPort, error)

	// Press sends a key, by name ("Enter", "Tab", "ArrowDown") or as a
	// single character, to the focused element.
	Press(ctx context.Context, key string) error
	Scroll(ctx context.Context, edge entity.ScrollEdge) error

	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	Close()
}

type ElementPort interface {
	Visible(ctx context.Context) (bool, error)
	Enabled(ctx context.Context) (bool, error)
	Animating(ctx context.Context) (bool, error)
	Text(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, bool, error)
	Value(ctx context.Context) (string, error)

	Click(ctx context.Context) error
	DoubleClick(ctx context.Context) error
	RightClick(ctx context.Context) error
	Hover(ctx context.Context) error
	ScrollIntoView(ctx context.Context) error
	SetValue(ctx context.Context, value string) error
	Type(ctx context.Context, text string, perChar time.Duration) error
	Select(ctx context.Context, by entity.SelectBy, option string) error

	Find(ctx context.Context, selector string) ([]ElementPort, error)
}
