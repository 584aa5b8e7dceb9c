package pages

import (
	"context"
	"fmt"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/interaction"
)

// readCartItems reads the rows currently listed on the cart or the
// checkout overview. An empty list is not waited for.
func readCartItems(ctx context.Context, ui *interaction.Interactor) ([]entity.CartItem, error) {
	rows, err := cartRows(ctx, ui)
	if err != nil {
		return nil, err
	}

	items := make([]entity.CartItem, 0, len(rows))
	for _, row := range rows {
		name, err := childText(ctx, ui, row, ItemName)
		if err != nil {
			return nil, err
		}
		price, err := childText(ctx, ui, row, ItemPrice)
		if err != nil {
			return nil, err
		}
		qty, err := childText(ctx, ui, row, CartItemQuantity)
		if err != nil {
			return nil, err
		}
		if qty == "" {
			qty = "0"
		}
		items = append(items, entity.CartItem{Name: name, Price: price, Quantity: qty})
	}
	return items, nil
}

func cartRows(ctx context.Context, ui *interaction.Interactor) ([]output.ElementPort, error) {
	n, err := ui.Count(ctx, CartItem)
	if err != nil || n == 0 {
		return nil, err
	}
	return ui.All(ctx, CartItem)
}

// childText returns the trimmed text of the first match of selector inside
// parent, or "" when nothing matches.
func childText(ctx context.Context, ui *interaction.Interactor, parent output.ElementPort, selector string) (string, error) {
	els, err := parent.Find(ctx, selector)
	if err != nil {
		return "", fmt.Errorf("find %q: %w", selector, err)
	}
	if len(els) == 0 {
		return "", nil
	}
	return ui.ReadElementText(ctx, els[0])
}

func itemNames(items []entity.CartItem) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

func containsAll(have []string, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}
