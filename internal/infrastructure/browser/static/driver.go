// Package static is a BrowserPort over parsed HTML documents. It has no
// script engine or layout: pages change only through Navigate, handlers
// registered with On, and direct mutation with SetHTML or Mutate.
package static

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

var _ output.BrowserPort = (*Driver)(nil)

var (
	ErrUnknownPage     = errors.New("unknown page")
	ErrInvalidSelector = entity.ErrInvalidSelector
	ErrStaleElement    = errors.New("element is detached from the document")
	ErrNoOption        = errors.New("no matching option")
	ErrClosed          = errors.New("driver closed")
)

// ClickHandler runs after an event on an element matching the selector it
// was registered with. It may call back into the driver.
type ClickHandler func(d *Driver)

// Event is a user action handlers can be registered for.
type Event int

const (
	EventClick Event = iota
	EventChange
	EventDoubleClick
	EventContextMenu
	EventHover
	// EventKey fires on the focused element. Keys reports what was pressed.
	EventKey
	EventScrollIntoView
)

type counter struct {
	event Event
	node  *html.Node
}

type Driver struct {
	mu         sync.Mutex
	pages      map[string]func() string
	handlers   []handler
	loadDelays map[entity.LoadState]time.Duration
	doc        *goquery.Document
	url        string
	history    []string
	pos        int
	counts     map[counter]int
	focused    *html.Node
	keys       []string
	scroll     entity.ScrollEdge
	closed     bool
}

type handler struct {
	event   Event
	matcher cascadia.Selector
	fn      ClickHandler
}

func New() *Driver {
	d := &Driver{
		pages:      make(map[string]func() string),
		loadDelays: make(map[entity.LoadState]time.Duration),
		counts:     make(map[counter]int),
		url:        "about:blank",
	}
	d.doc, _ = parse("<html><head></head><body></body></html>")
	return d
}

// AddPage registers the document served at rawURL. Navigate matches on the
// full URL first and then on the path alone.
func (d *Driver) AddPage(rawURL, src string) *Driver {
	return d.AddPageFunc(rawURL, func() string { return src })
}

// AddPageFunc registers a page whose document is rendered on every load.
// render runs with the driver locked and must not call back into it.
func (d *Driver) AddPageFunc(rawURL string, render func() string) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pages[rawURL] = render
	return d
}

// Handle registers fn to run when an element matching selector is clicked.
func (d *Driver) Handle(selector string, fn ClickHandler) error {
	return d.On(EventClick, selector, fn)
}

// HandleChange registers fn to run after SetValue, Type or Select changes
// an element matching selector.
func (d *Driver) HandleChange(selector string, fn ClickHandler) error {
	return d.On(EventChange, selector, fn)
}

// On registers fn to run after ev on an element matching selector.
func (d *Driver) On(ev Event, selector string, fn ClickHandler) error {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSelector, selector, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, handler{event: ev, matcher: m, fn: fn})
	return nil
}

// fire counts ev on n and returns the handlers to run once d.mu is
// released. Callers hold d.mu.
func (d *Driver) fire(ev Event, n *html.Node) []ClickHandler {
	d.counts[counter{ev, n}]++
	return d.matching(ev, n)
}

// matching returns the handlers for ev that match n. Callers hold d.mu.
func (d *Driver) matching(ev Event, n *html.Node) []ClickHandler {
	var fns []ClickHandler
	for _, h := range d.handlers {
		if h.event == ev && h.matcher.Match(n) {
			fns = append(fns, h.fn)
		}
	}
	return fns
}

// SetLoadDelay makes WaitLoadState(state) block for delay.
func (d *Driver) SetLoadDelay(state entity.LoadState, delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loadDelays[state] = delay
}

// SetHTML replaces the current document. Handles into the old document
// become stale.
func (d *Driver) SetHTML(src string) error {
	doc, err := parse(src)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doc = doc
	return nil
}

// Mutate runs fn against the live document.
func (d *Driver) Mutate(fn func(doc *goquery.Document)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.doc)
}

// HTML renders the current document.
func (d *Driver) HTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out, _ := goquery.OuterHtml(d.doc.Selection)
	return out
}

// ClickCount returns how many clicks elements matching selector received
// in the current document.
func (d *Driver) ClickCount(selector string) int {
	return d.EventCount(EventClick, selector)
}

// EventCount returns how many times ev reached elements matching selector
// in the current document.
func (d *Driver) EventCount(ev Event, selector string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	total := 0
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		total += d.counts[counter{ev, s.Nodes[0]}]
	})
	return total
}

// Keys lists every key pressed in this session, oldest first.
func (d *Driver) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.keys...)
}

// ScrollPosition reports where the window was last scrolled. Every load
// resets it to the top.
func (d *Driver) ScrollPosition() entity.ScrollEdge {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scroll
}

// History returns the session history and the index of the current entry.
func (d *Driver) History() ([]string, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.history...), d.pos
}

func (d *Driver) Navigate(ctx context.Context, rawURL string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	return d.visit(rawURL)
}

// visit loads rawURL as a new history entry, dropping any forward entries.
// Callers hold d.mu.
func (d *Driver) visit(rawURL string) error {
	if err := d.load(rawURL); err != nil {
		return err
	}
	if len(d.history) > 0 {
		d.history = d.history[:d.pos+1]
	}
	d.history = append(d.history, rawURL)
	d.pos = len(d.history) - 1
	return nil
}

func (d *Driver) load(rawURL string) error {
	render, ok := d.pages[rawURL]
	if !ok {
		if u, err := url.Parse(rawURL); err == nil {
			render, ok = d.pages[u.Path]
		}
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, rawURL)
	}
	doc, err := parse(render())
	if err != nil {
		return err
	}
	d.doc = doc
	d.url = rawURL
	d.focused = nil
	d.scroll = entity.ScrollTop
	return nil
}

func (d *Driver) Reload(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(d.url)
}

// Back and Forward reload the neighbouring history entry from its page
// source.
func (d *Driver) Back(ctx context.Context) error {
	return d.traverse(-1)
}

func (d *Driver) Forward(ctx context.Context) error {
	return d.traverse(1)
}

func (d *Driver) traverse(delta int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	to := d.pos + delta
	if to < 0 || to >= len(d.history) {
		return nil
	}
	if err := d.load(d.history[to]); err != nil {
		return err
	}
	d.pos = to
	return nil
}

func (d *Driver) CurrentURL(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url, nil
}

// SetURL changes the reported URL without loading a document, the way a
// client-side route change would. It replaces the current history entry.
func (d *Driver) SetURL(rawURL string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = rawURL
	if len(d.history) > 0 {
		d.history[d.pos] = rawURL
	}
}

func (d *Driver) Title(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.TrimSpace(d.doc.Find("title").First().Text()), nil
}

func (d *Driver) WaitLoadState(ctx context.Context, state entity.LoadState) error {
	d.mu.Lock()
	delay := d.loadDelays[state]
	d.mu.Unlock()

	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Driver) Query(ctx context.Context, selector string) ([]output.ElementPort, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSelector, selector, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	return d.wrap(d.doc.FindMatcher(m)), nil
}

func (d *Driver) wrap(sel *goquery.Selection) []output.ElementPort {
	els := make([]output.ElementPort, 0, sel.Length())
	for _, n := range sel.Nodes {
		els = append(els, &element{driver: d, node: n})
	}
	return els
}

// Press records key and runs the EventKey handlers of the focused element.
// Nothing is typed into the field.
func (d *Driver) Press(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("press: empty key")
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.keys = append(d.keys, key)
	var fns []ClickHandler
	if d.focused != nil && d.attached(d.focused) {
		fns = d.fire(EventKey, d.focused)
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(d)
	}
	return nil
}

// Scroll records edge; there is no layout to move.
func (d *Driver) Scroll(ctx context.Context, edge entity.ScrollEdge) error {
	switch edge {
	case entity.ScrollTop, entity.ScrollBottom:
	default:
		return fmt.Errorf("unknown scroll edge %q", edge)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.scroll = edge
	return nil
}

// attached reports whether n belongs to the current document. Callers hold
// d.mu.
func (d *Driver) attached(n *html.Node) bool {
	root := d.doc.Nodes[0]
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// Screenshot has no pixels to capture; it returns the rendered document.
func (d *Driver) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	return &entity.Screenshot{
		Data:   []byte(d.HTML()),
		Format: "html",
	}, nil
}

func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

func parse(src string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}
