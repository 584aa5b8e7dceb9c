// Package scenario holds the end-to-end flows the runner executes. Each
// flow drives the page objects of one shared session.
package scenario

import (
	"context"
	"fmt"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/interaction"
	"storefront-e2e/internal/usecase/pages"
)

const (
	userStandard  = "standardUser"
	userLockedOut = "lockedOutUser"
)

type Suite struct {
	data   output.FixturePort
	logger output.LoggerPort

	login     *pages.LoginPage
	inventory *pages.InventoryPage
	cart      *pages.CartPage
	checkout  *pages.CheckoutPage
	overview  *pages.OverviewPage
	complete  *pages.CompletePage
}

func NewSuite(ui *interaction.Interactor, data output.FixturePort, logger output.LoggerPort) *Suite {
	return &Suite{
		data:      data,
		logger:    logger,
		login:     pages.NewLoginPage(ui),
		inventory: pages.NewInventoryPage(ui),
		cart:      pages.NewCartPage(ui),
		checkout:  pages.NewCheckoutPage(ui),
		overview:  pages.NewOverviewPage(ui),
		complete:  pages.NewCompletePage(ui),
	}
}

type scenario struct {
	name        string
	description string
	run         func(ctx context.Context) error
}

func (s scenario) Name() string                  { return s.name }
func (s scenario) Description() string           { return s.description }
func (s scenario) Run(ctx context.Context) error { return s.run(ctx) }

// Scenarios returns the flows in the order a full run executes them.
func (s *Suite) Scenarios() []output.ScenarioPort {
	return []output.ScenarioPort{
		scenario{"login", "Standard user signs in and lands on an empty catalog", s.loginFlow},
		scenario{"locked-out", "Locked out user is refused with an error banner", s.lockedOutFlow},
		scenario{"sort", "Catalog follows every sort option", s.sortFlow},
		scenario{"cart", "Three random products reach the cart with the right total", s.cartFlow},
		scenario{"checkout-validation", "Buyer form rejects each missing field", s.checkoutValidationFlow},
		scenario{"purchase", "Browse, add two products and complete an order", s.purchaseFlow},
	}
}

// Register adds every flow of the suite to reg.
func (s *Suite) Register(reg output.ScenarioRegistry) {
	for _, sc := range s.Scenarios() {
		reg.Register(sc)
	}
}

func (s *Suite) signIn(ctx context.Context, userType string) error {
	creds, err := s.data.Credentials(userType)
	if err != nil {
		return err
	}
	if err := s.login.Open(ctx); err != nil {
		return err
	}
	if err := s.login.LoginAs(ctx, creds); err != nil {
		return err
	}
	return s.inventory.AssertLoaded(ctx)
}

// fresh signs the standard user in and leaves the catalog showing with an
// empty cart, whatever earlier flows left behind.
func (s *Suite) fresh(ctx context.Context) error {
	if err := s.signIn(ctx, userStandard); err != nil {
		return err
	}
	if err := s.cart.Open(ctx); err != nil {
		return err
	}
	if err := s.cart.AssertLoaded(ctx); err != nil {
		return err
	}
	if err := s.cart.RemoveAll(ctx); err != nil {
		return fmt.Errorf("empty cart: %w", err)
	}
	if err := s.inventory.Open(ctx); err != nil {
		return err
	}
	return s.inventory.AssertLoaded(ctx)
}

// mismatch reports an unmet expectation about storefront state.
func mismatch(what string, expected, actual any) error {
	return fmt.Errorf("%s: %w", what, &entity.Failure{
		Kind:     entity.ErrAssertion,
		Expected: fmt.Sprint(expected),
		Actual:   fmt.Sprint(actual),
	})
}
