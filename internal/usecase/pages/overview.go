package pages

import (
	"context"
	"math"

	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/interaction"
)

// OverviewPage is step two of checkout: the order summary.
type OverviewPage struct {
	screen
}

func NewOverviewPage(ui *interaction.Interactor) *OverviewPage {
	return &OverviewPage{screen{
		ui: ui,
		ready: entity.Readiness{
			Name:   "checkout overview",
			Checks: visible(CheckoutSummary, FinishButton, CancelButton),
			Title:  PageTitle,
			URL:    PathCheckoutOverview,
		},
	}}
}

func (p *OverviewPage) Items(ctx context.Context) ([]entity.CartItem, error) {
	return readCartItems(ctx, p.ui)
}

func (p *OverviewPage) ItemNames(ctx context.Context) ([]string, error) {
	items, err := p.Items(ctx)
	if err != nil {
		return nil, err
	}
	return itemNames(items), nil
}

func (p *OverviewPage) ContainsAll(ctx context.Context, names []string) (bool, error) {
	have, err := p.ItemNames(ctx)
	if err != nil {
		return false, err
	}
	return containsAll(have, names), nil
}

func (p *OverviewPage) Subtotal(ctx context.Context) (float64, error) {
	return p.amount(ctx, SubtotalLabel)
}

func (p *OverviewPage) Tax(ctx context.Context) (float64, error) {
	return p.amount(ctx, TaxLabel)
}

func (p *OverviewPage) Total(ctx context.Context) (float64, error) {
	return p.amount(ctx, TotalLabel)
}

func (p *OverviewPage) amount(ctx context.Context, selector string) (float64, error) {
	text, err := p.ui.ReadText(ctx, selector)
	if err != nil {
		return 0, err
	}
	return ParsePrice(text), nil
}

// TotalsConsistent reports whether subtotal plus tax equals the total to
// the cent.
func (p *OverviewPage) TotalsConsistent(ctx context.Context) (bool, error) {
	sub, err := p.Subtotal(ctx)
	if err != nil {
		return false, err
	}
	tax, err := p.Tax(ctx)
	if err != nil {
		return false, err
	}
	total, err := p.Total(ctx)
	if err != nil {
		return false, err
	}
	return math.Abs(total-(sub+tax)) < 0.01, nil
}

func (p *OverviewPage) Finish(ctx context.Context) error {
	return p.ui.Click(ctx, FinishButton)
}

func (p *OverviewPage) Cancel(ctx context.Context) error {
	return p.ui.Click(ctx, CancelButton)
}

func (p *OverviewPage) AssertOnPage(ctx context.Context) error {
	return p.ui.AssertURLContains(ctx, PathCheckoutOverview)
}
