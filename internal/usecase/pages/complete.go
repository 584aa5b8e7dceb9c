package pages

import (
	"context"

	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/interaction"
)

type CompletePage struct {
	screen
}

func NewCompletePage(ui *interaction.Interactor) *CompletePage {
	return &CompletePage{screen{
		ui: ui,
		ready: entity.Readiness{
			Name:   "checkout complete",
			Checks: visible(CompleteHeader, CompleteText, BackHomeButton),
			Title:  PageTitle,
			URL:    PathCheckoutComplete,
		},
	}}
}

func (p *CompletePage) Open(ctx context.Context) error {
	return p.ui.Navigate(ctx, PathCheckoutComplete)
}

func (p *CompletePage) Header(ctx context.Context) (string, error) {
	return p.ui.ReadText(ctx, CompleteHeader)
}

func (p *CompletePage) Text(ctx context.Context) (string, error) {
	return p.ui.ReadText(ctx, CompleteText)
}

func (p *CompletePage) IsBackHomeEnabled(ctx context.Context) bool {
	return p.ui.IsEnabled(ctx, BackHomeButton)
}

func (p *CompletePage) BackHome(ctx context.Context) error {
	return p.ui.Click(ctx, BackHomeButton)
}

// OrderConfirmed reports whether both confirmation messages are shown.
func (p *CompletePage) OrderConfirmed(ctx context.Context) bool {
	header, err := p.Header(ctx)
	if err != nil || header != OrderCompleteMessage {
		return false
	}
	text, err := p.Text(ctx)
	return err == nil && text == OrderDispatchedMessage
}

func (p *CompletePage) AssertOrderComplete(ctx context.Context) error {
	if err := p.ui.AssertHasText(ctx, CompleteHeader, OrderCompleteMessage); err != nil {
		return err
	}
	return p.ui.AssertHasText(ctx, CompleteText, OrderDispatchedMessage)
}

func (p *CompletePage) AssertOnPage(ctx context.Context) error {
	return p.ui.AssertURLContains(ctx, PathCheckoutComplete)
}
