package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/interaction"
)

type CartPage struct {
	screen
}

func NewCartPage(ui *interaction.Interactor) *CartPage {
	return &CartPage{screen{
		ui: ui,
		ready: entity.Readiness{
			Name:   "cart",
			Checks: visible(CheckoutButton, ContinueShoppingButton),
			Title:  PageTitle,
			URL:    PathCart,
		},
	}}
}

func (p *CartPage) Open(ctx context.Context) error {
	return p.ui.Navigate(ctx, PathCart)
}

// ItemCount is the number of rows right now; it does not wait.
func (p *CartPage) ItemCount(ctx context.Context) (int, error) {
	return p.ui.Count(ctx, CartItem)
}

func (p *CartPage) IsEmpty(ctx context.Context) (bool, error) {
	n, err := p.ItemCount(ctx)
	return n == 0, err
}

func (p *CartPage) Items(ctx context.Context) ([]entity.CartItem, error) {
	return readCartItems(ctx, p.ui)
}

func (p *CartPage) ItemNames(ctx context.Context) ([]string, error) {
	items, err := p.Items(ctx)
	if err != nil {
		return nil, err
	}
	return itemNames(items), nil
}

func (p *CartPage) Item(ctx context.Context, name string) (entity.CartItem, error) {
	items, err := p.Items(ctx)
	if err != nil {
		return entity.CartItem{}, err
	}
	for _, it := range items {
		if it.Name == name {
			return it, nil
		}
	}
	return entity.CartItem{}, fmt.Errorf("%w: %s", ErrItemNotInCart, name)
}

func (p *CartPage) HasItem(ctx context.Context, name string) (bool, error) {
	_, err := p.Item(ctx, name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrItemNotInCart) {
		return false, nil
	}
	return false, err
}

// ContainsAll reports whether every named item is in the cart.
func (p *CartPage) ContainsAll(ctx context.Context, names []string) (bool, error) {
	have, err := p.ItemNames(ctx)
	if err != nil {
		return false, err
	}
	return containsAll(have, names), nil
}

func (p *CartPage) RemoveItem(ctx context.Context, name string) error {
	rows, err := cartRows(ctx, p.ui)
	if err != nil {
		return err
	}
	for _, row := range rows {
		text, err := childText(ctx, p.ui, row, ItemName)
		if err != nil {
			return err
		}
		if text != name {
			continue
		}
		buttons, err := row.Find(ctx, RemoveButton)
		if err != nil {
			return fmt.Errorf("find remove button for %q: %w", name, err)
		}
		if len(buttons) == 0 {
			return fmt.Errorf("%q has no remove button", name)
		}
		return p.ui.ClickElement(ctx, buttons[0])
	}
	return fmt.Errorf("%w: %s", ErrItemNotInCart, name)
}

// RemoveAll clears the cart one row at a time, re-reading the list after
// every removal.
func (p *CartPage) RemoveAll(ctx context.Context) error {
	n, err := p.ItemCount(ctx)
	if err != nil {
		return err
	}
	for range n {
		buttons, err := p.ui.All(ctx, RemoveButton)
		if err != nil {
			return err
		}
		if err := p.ui.ClickElement(ctx, buttons[0]); err != nil {
			return err
		}
	}
	return p.ui.Waiter().ElementCount(ctx, CartItem, 0, 0)
}

// Total sums price times quantity over the listed rows.
func (p *CartPage) Total(ctx context.Context) (float64, error) {
	items, err := p.Items(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, it := range items {
		qty, err := strconv.Atoi(it.Quantity)
		if err != nil {
			return 0, fmt.Errorf("quantity of %q: %w", it.Name, err)
		}
		total += ParsePrice(it.Price) * float64(qty)
	}
	return total, nil
}

// WaitForItems waits for the list to hold exactly expected rows.
func (p *CartPage) WaitForItems(ctx context.Context, expected int) error {
	return p.ui.Waiter().ElementCount(ctx, CartItem, expected, 0)
}

func (p *CartPage) Checkout(ctx context.Context) error {
	return p.ui.Click(ctx, CheckoutButton)
}

func (p *CartPage) ContinueShopping(ctx context.Context) error {
	return p.ui.Click(ctx, ContinueShoppingButton)
}

func (p *CartPage) IsCheckoutButtonVisible(ctx context.Context) bool {
	return p.ui.IsVisible(ctx, CheckoutButton)
}

func (p *CartPage) IsCheckoutButtonEnabled(ctx context.Context) bool {
	return p.ui.IsEnabled(ctx, CheckoutButton)
}
