package static

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

var _ output.ElementPort = (*element)(nil)

var invisibleTags = map[string]bool{
	"head": true, "script": true, "style": true, "title": true,
	"meta": true, "link": true, "noscript": true, "template": true,
}

type element struct {
	driver *Driver
	node   *html.Node
}

// live reports whether the node still belongs to the current document.
// Callers hold driver.mu.
func (e *element) live() bool {
	return e.driver.attached(e.node)
}

func (e *element) lock() (func(), error) {
	e.driver.mu.Lock()
	if !e.live() {
		e.driver.mu.Unlock()
		return nil, ErrStaleElement
	}
	return e.driver.mu.Unlock, nil
}

func (e *element) sel() *goquery.Selection {
	return goquery.NewDocumentFromNode(e.node).Selection
}

func (e *element) Visible(ctx context.Context) (bool, error) {
	unlock, err := e.lock()
	if err != nil {
		return false, err
	}
	defer unlock()

	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if invisibleTags[n.Data] {
			return false, nil
		}
		if _, ok := attr(n, "hidden"); ok {
			return false, nil
		}
		if n.Data == "input" {
			if t, _ := attr(n, "type"); strings.EqualFold(t, "hidden") {
				return false, nil
			}
		}
		style, _ := attr(n, "style")
		style = strings.ReplaceAll(strings.ToLower(style), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false, nil
		}
	}
	return true, nil
}

func (e *element) Enabled(ctx context.Context) (bool, error) {
	unlock, err := e.lock()
	if err != nil {
		return false, err
	}
	defer unlock()

	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if _, ok := attr(n, "disabled"); ok {
			switch n.Data {
			case "button", "input", "select", "textarea", "option", "optgroup", "fieldset":
				return false, nil
			}
		}
	}
	return true, nil
}

// Animating reports data-animating="true"; the document has no CSS engine.
func (e *element) Animating(ctx context.Context) (bool, error) {
	unlock, err := e.lock()
	if err != nil {
		return false, err
	}
	defer unlock()

	v, _ := attr(e.node, "data-animating")
	return v == "true", nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	unlock, err := e.lock()
	if err != nil {
		return "", err
	}
	defer unlock()
	return e.sel().Text(), nil
}

func (e *element) Attribute(ctx context.Context, name string) (string, bool, error) {
	unlock, err := e.lock()
	if err != nil {
		return "", false, err
	}
	defer unlock()
	v, ok := attr(e.node, name)
	return v, ok, nil
}

func (e *element) Value(ctx context.Context) (string, error) {
	unlock, err := e.lock()
	if err != nil {
		return "", err
	}
	defer unlock()

	e.driver.focused = e.node
	switch e.node.Data {
	case "textarea":
		return e.sel().Text(), nil
	case "select":
		opt := e.sel().Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = e.sel().Find("option").First()
		}
		return optionValue(opt), nil
	default:
		v, _ := attr(e.node, "value")
		return v, nil
	}
}

func (e *element) Click(ctx context.Context) error {
	unlock, err := e.lock()
	if err != nil {
		return err
	}
	d := e.driver
	d.focused = e.node

	fns := d.fire(EventClick, e.node)
	var navErr error
	if e.node.Data == "a" {
		if href, ok := attr(e.node, "href"); ok && href != "" && !strings.HasPrefix(href, "#") {
			navErr = d.visit(resolve(d.url, href))
		}
	}
	unlock()

	for _, fn := range fns {
		fn(d)
	}
	return navErr
}

func (e *element) SetValue(ctx context.Context, value string) error {
	unlock, err := e.lock()
	if err != nil {
		return err
	}

	e.driver.focused = e.node
	switch e.node.Data {
	case "textarea":
		e.sel().SetText(value)
	case "input":
		e.sel().SetAttr("value", value)
	default:
		unlock()
		return fmt.Errorf("set value on <%s>: not a form field", e.node.Data)
	}
	e.changed(unlock)
	return nil
}

// changed releases the driver lock and runs the change handlers for e.
func (e *element) changed(unlock func()) {
	fns := e.driver.matching(EventChange, e.node)
	unlock()
	for _, fn := range fns {
		fn(e.driver)
	}
}

func (e *element) DoubleClick(ctx context.Context) error {
	return e.dispatch(EventDoubleClick)
}

func (e *element) RightClick(ctx context.Context) error {
	return e.dispatch(EventContextMenu)
}

func (e *element) Hover(ctx context.Context) error {
	return e.dispatch(EventHover)
}

func (e *element) ScrollIntoView(ctx context.Context) error {
	return e.dispatch(EventScrollIntoView)
}

// dispatch counts ev on e and runs its handlers. Unlike Click it never
// follows links.
func (e *element) dispatch(ev Event) error {
	unlock, err := e.lock()
	if err != nil {
		return err
	}
	if ev == EventDoubleClick || ev == EventContextMenu {
		e.driver.focused = e.node
	}
	fns := e.driver.fire(ev, e.node)
	unlock()

	for _, fn := range fns {
		fn(e.driver)
	}
	return nil
}

func (e *element) Type(ctx context.Context, text string, perChar time.Duration) error {
	for _, r := range text {
		current, err := e.Value(ctx)
		if err != nil {
			return err
		}
		if err := e.SetValue(ctx, current+string(r)); err != nil {
			return err
		}
		if perChar > 0 {
			timer := time.NewTimer(perChar)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}
	return nil
}

func (e *element) Select(ctx context.Context, by entity.SelectBy, option string) error {
	unlock, err := e.lock()
	if err != nil {
		return err
	}

	if e.node.Data != "select" {
		unlock()
		return fmt.Errorf("select option on <%s>: not a select", e.node.Data)
	}
	opts := e.sel().Find("option")
	target := opts.FilterFunction(func(_ int, o *goquery.Selection) bool {
		if by == entity.SelectByLabel {
			return strings.TrimSpace(o.Text()) == option
		}
		return optionValue(o) == option
	}).First()
	if target.Length() == 0 {
		unlock()
		return fmt.Errorf("%w: %s=%q", ErrNoOption, by, option)
	}
	e.driver.focused = e.node
	opts.RemoveAttr("selected")
	target.SetAttr("selected", "selected")
	e.changed(unlock)
	return nil
}

func (e *element) Find(ctx context.Context, selector string) ([]output.ElementPort, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSelector, selector, err)
	}
	unlock, err := e.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return e.driver.wrap(e.sel().FindMatcher(m)), nil
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func optionValue(o *goquery.Selection) string {
	if v, ok := o.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(o.Text())
}

func resolve(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
