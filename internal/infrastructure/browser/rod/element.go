package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

var _ output.ElementPort = (*element)(nil)

// setValueJS goes through the native setter so that frameworks tracking
// the value property see the change.
const setValueJS = `function (v) {
	const proto = this instanceof HTMLTextAreaElement ? HTMLTextAreaElement.prototype : HTMLInputElement.prototype;
	Object.getOwnPropertyDescriptor(proto, 'value').set.call(this, v);
	this.dispatchEvent(new Event('input', { bubbles: true }));
	this.dispatchEvent(new Event('change', { bubbles: true }));
}`

const selectJS = `function (by, opt) {
	const o = Array.from(this.options).find(o => by === 'label' ? o.text.trim() === opt : o.value === opt);
	if (!o) return false;
	Object.getOwnPropertyDescriptor(HTMLSelectElement.prototype, 'value').set.call(this, o.value);
	this.dispatchEvent(new Event('input', { bubbles: true }));
	this.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
}`

const animatingJS = `function () {
	return this.getAnimations().some(a => a.playState === 'running');
}`

type element struct {
	el *rod.Element
}

func wrap(els rod.Elements) []output.ElementPort {
	out := make([]output.ElementPort, 0, len(els))
	for _, el := range els {
		out = append(out, &element{el: el})
	}
	return out
}

func (e *element) with(ctx context.Context) *rod.Element {
	return e.el.Context(ctx)
}

func (e *element) Visible(ctx context.Context) (bool, error) {
	return e.with(ctx).Visible()
}

func (e *element) Enabled(ctx context.Context) (bool, error) {
	disabled, err := e.with(ctx).Disabled()
	return !disabled, err
}

func (e *element) Animating(ctx context.Context) (bool, error) {
	res, err := e.with(ctx).Eval(animatingJS)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	return e.with(ctx).Text()
}

func (e *element) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, err := e.with(ctx).Attribute(name)
	if err != nil || v == nil {
		return "", false, err
	}
	return *v, true, nil
}

func (e *element) Value(ctx context.Context) (string, error) {
	v, err := e.with(ctx).Property("value")
	if err != nil {
		return "", err
	}
	if v.Nil() {
		return "", nil
	}
	return v.Str(), nil
}

func (e *element) Click(ctx context.Context) error {
	if err := e.with(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (e *element) DoubleClick(ctx context.Context) error {
	if err := e.with(ctx).Click(proto.InputMouseButtonLeft, 2); err != nil {
		return fmt.Errorf("double click failed: %w", err)
	}
	return nil
}

func (e *element) RightClick(ctx context.Context) error {
	if err := e.with(ctx).Click(proto.InputMouseButtonRight, 1); err != nil {
		return fmt.Errorf("right click failed: %w", err)
	}
	return nil
}

func (e *element) Hover(ctx context.Context) error {
	if err := e.with(ctx).Hover(); err != nil {
		return fmt.Errorf("hover failed: %w", err)
	}
	return nil
}

func (e *element) ScrollIntoView(ctx context.Context) error {
	if err := e.with(ctx).ScrollIntoView(); err != nil {
		return fmt.Errorf("scroll into view failed: %w", err)
	}
	return nil
}

func (e *element) SetValue(ctx context.Context, value string) error {
	if _, err := e.with(ctx).Eval(setValueJS, value); err != nil {
		return fmt.Errorf("set value failed: %w", err)
	}
	return nil
}

func (e *element) Type(ctx context.Context, text string, perChar time.Duration) error {
	el := e.with(ctx)
	if err := el.Focus(); err != nil {
		return fmt.Errorf("focus failed: %w", err)
	}
	for _, r := range text {
		if err := el.Input(string(r)); err != nil {
			return fmt.Errorf("input failed: %w", err)
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
	res, err := e.with(ctx).Eval(selectJS, string(by), option)
	if err != nil {
		return fmt.Errorf("select failed: %w", err)
	}
	if !res.Value.Bool() {
		return fmt.Errorf("select failed: no option with %s %q", by, option)
	}
	return nil
}

func (e *element) Find(ctx context.Context, selector string) ([]output.ElementPort, error) {
	var (
		els rod.Elements
		err error
	)
	if isXPath(selector) {
		els, err = e.with(ctx).ElementsX(selector)
	} else {
		els, err = e.with(ctx).Elements(selector)
	}
	if err != nil {
		return nil, queryError(selector, err)
	}
	return wrap(els), nil
}
