package pages

import (
	"context"
	"fmt"
	"strconv"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/interaction"
)

type InventoryPage struct {
	screen
}

func NewInventoryPage(ui *interaction.Interactor) *InventoryPage {
	return &InventoryPage{screen{
		ui: ui,
		ready: entity.Readiness{
			Name:   "inventory",
			Checks: visible(InventoryList, ShoppingCartLink),
			Title:  PageTitle,
			URL:    PathInventory,
		},
	}}
}

func (p *InventoryPage) Open(ctx context.Context) error {
	return p.ui.Navigate(ctx, PathInventory)
}

// Products lists the catalog in display order.
func (p *InventoryPage) Products(ctx context.Context) ([]entity.Product, error) {
	items, err := p.ui.All(ctx, InventoryItem)
	if err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(items))
	for _, item := range items {
		var prod entity.Product
		for sel, dst := range map[string]*string{ItemName: &prod.Name, ItemPrice: &prod.Price, ItemDesc: &prod.Description} {
			if *dst, err = childText(ctx, p.ui, item, sel); err != nil {
				return nil, err
			}
		}
		if prod.Name != "" && prod.Price != "" {
			products = append(products, prod)
		}
	}
	return products, nil
}

func (p *InventoryPage) ProductNames(ctx context.Context) ([]string, error) {
	products, err := p.Products(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(products))
	for _, prod := range products {
		names = append(names, prod.Name)
	}
	return names, nil
}

func (p *InventoryPage) ProductPrices(ctx context.Context) ([]float64, error) {
	products, err := p.Products(ctx)
	if err != nil {
		return nil, err
	}
	prices := make([]float64, 0, len(products))
	for _, prod := range products {
		prices = append(prices, ParsePrice(prod.Price))
	}
	return prices, nil
}

func (p *InventoryPage) AddToCart(ctx context.Context, name string) error {
	return p.clickInItem(ctx, name, AddToCartButton)
}

func (p *InventoryPage) RemoveFromCart(ctx context.Context, name string) error {
	return p.clickInItem(ctx, name, RemoveButton)
}

func (p *InventoryPage) clickInItem(ctx context.Context, name, button string) error {
	item, err := p.item(ctx, name)
	if err != nil {
		return err
	}
	buttons, err := item.Find(ctx, button)
	if err != nil {
		return fmt.Errorf("find %q in %q: %w", button, name, err)
	}
	if len(buttons) == 0 {
		return fmt.Errorf("%q has no %s button", name, button)
	}
	return p.ui.ClickElement(ctx, buttons[0])
}

func (p *InventoryPage) item(ctx context.Context, name string) (output.ElementPort, error) {
	items, err := p.ui.All(ctx, InventoryItem)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		text, err := childText(ctx, p.ui, item, ItemName)
		if err != nil {
			return nil, err
		}
		if text == name {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProductNotFound, name)
}

// CartCount reads the cart badge. A missing badge means an empty cart.
func (p *InventoryPage) CartCount(ctx context.Context) (int, error) {
	if !p.ui.IsVisible(ctx, CartBadge) {
		return 0, nil
	}
	text, err := p.ui.ReadText(ctx, CartBadge)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("cart badge %q: %w", text, err)
	}
	return n, nil
}

func (p *InventoryPage) IsCartBadgeVisible(ctx context.Context) bool {
	return p.ui.IsVisible(ctx, CartBadge)
}

func (p *InventoryPage) Sort(ctx context.Context, option string) error {
	return p.ui.SelectOption(ctx, ProductSort, option)
}

func (p *InventoryPage) OpenCart(ctx context.Context) error {
	return p.ui.Click(ctx, ShoppingCartLink)
}

func (p *InventoryPage) AssertOnPage(ctx context.Context) error {
	return p.ui.AssertURLContains(ctx, PathInventory)
}
