package interaction

import (
	"context"
	"errors"

	"storefront-e2e/internal/domain/entity"
)

// The Is* probes use the short budget and report a timeout as false. They
// are the only façade calls that do not raise on an unmet condition.

func (i *Interactor) IsVisible(ctx context.Context, selector string) bool {
	_, err := i.waiter.Visible(ctx, selector, i.timeouts.Short)
	return i.probe(selector, err)
}

func (i *Interactor) IsEnabled(ctx context.Context, selector string) bool {
	el, err := i.waiter.Visible(ctx, selector, i.timeouts.Short)
	if !i.probe(selector, err) {
		return false
	}
	enabled, err := el.Enabled(ctx)
	return err == nil && enabled
}

func (i *Interactor) IsPresent(ctx context.Context, selector string) bool {
	_, err := i.waiter.Attached(ctx, selector, i.timeouts.Short)
	return i.probe(selector, err)
}

func (i *Interactor) probe(selector string, err error) bool {
	if err == nil {
		return true
	}
	if !errors.Is(err, entity.ErrTimeout) {
		i.logger.Warn("probe failed", "selector", selector, "error", err)
	}
	return false
}
