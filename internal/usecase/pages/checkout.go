package pages

import (
	"context"
	"fmt"

	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/interaction"
)

// CheckoutPage is step one of checkout, the buyer information form.
type CheckoutPage struct {
	screen
}

func NewCheckoutPage(ui *interaction.Interactor) *CheckoutPage {
	return &CheckoutPage{screen{
		ui: ui,
		ready: entity.Readiness{
			Name:   "checkout",
			Checks: visible(FirstNameInput, LastNameInput, PostalCodeInput, ContinueButton, CancelButton),
			Title:  PageTitle,
			URL:    PathCheckout,
		},
	}}
}

func (p *CheckoutPage) FillForm(ctx context.Context, info entity.CheckoutInfo) error {
	fields := []struct{ selector, value string }{
		{FirstNameInput, info.FirstName},
		{LastNameInput, info.LastName},
		{PostalCodeInput, info.PostalCode},
	}
	for _, f := range fields {
		if err := p.ui.ClearAndFill(ctx, f.selector, f.value); err != nil {
			return fmt.Errorf("checkout form: %w", err)
		}
	}
	return nil
}

func (p *CheckoutPage) Continue(ctx context.Context) error {
	return p.ui.Click(ctx, ContinueButton)
}

func (p *CheckoutPage) Cancel(ctx context.Context) error {
	return p.ui.Click(ctx, CancelButton)
}

func (p *CheckoutPage) Error(ctx context.Context) (string, error) {
	return p.ui.ReadText(ctx, ErrorMessage)
}

func (p *CheckoutPage) AssertOnPage(ctx context.Context) error {
	return p.ui.AssertURLContains(ctx, PathCheckout)
}
