package scenario

import (
	"cmp"
	"context"
	"math"
	"slices"
	"strings"

	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/pages"
)

func (s *Suite) loginFlow(ctx context.Context) error {
	if err := s.fresh(ctx); err != nil {
		return err
	}
	if err := s.inventory.AssertOnPage(ctx); err != nil {
		return err
	}
	if s.inventory.IsCartBadgeVisible(ctx) {
		return mismatch("cart badge", "hidden", "visible")
	}
	products, err := s.inventory.Products(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return mismatch("catalog size", "at least 1", 0)
	}
	return nil
}

func (s *Suite) lockedOutFlow(ctx context.Context) error {
	creds, err := s.data.Credentials(userLockedOut)
	if err != nil {
		return err
	}
	want, err := s.data.ErrorMessage("lockedOut")
	if err != nil {
		return err
	}
	if err := s.login.Open(ctx); err != nil {
		return err
	}
	if err := s.login.LoginAs(ctx, creds); err != nil {
		return err
	}

	got, err := s.login.Error(ctx)
	if err != nil {
		return err
	}
	if got != want {
		return mismatch("login error", want, got)
	}
	if s.inventory.IsLoaded(ctx) {
		return mismatch("locked out user", "kept on login", "reached inventory")
	}
	return nil
}

func (s *Suite) sortFlow(ctx context.Context) error {
	if err := s.fresh(ctx); err != nil {
		return err
	}

	byName := func(desc bool) func(a, b entity.Product) int {
		return func(a, b entity.Product) int {
			if desc {
				a, b = b, a
			}
			return strings.Compare(a.Name, b.Name)
		}
	}
	byPrice := func(desc bool) func(a, b entity.Product) int {
		return func(a, b entity.Product) int {
			if desc {
				a, b = b, a
			}
			return cmp.Compare(priceOf(a), priceOf(b))
		}
	}
	orders := []struct {
		key   string
		order func(a, b entity.Product) int
	}{
		{"nameAZ", byName(false)},
		{"nameZA", byName(true)},
		{"priceLowHigh", byPrice(false)},
		{"priceHighLow", byPrice(true)},
	}

	for _, o := range orders {
		option, err := s.data.SortOption(o.key)
		if err != nil {
			return err
		}
		if err := s.inventory.Sort(ctx, option); err != nil {
			return err
		}
		products, err := s.inventory.Products(ctx)
		if err != nil {
			return err
		}
		if !slices.IsSortedFunc(products, o.order) {
			return mismatch("catalog order after "+option, o.key, names(products))
		}
	}
	return nil
}

func (s *Suite) cartFlow(ctx context.Context) error {
	if err := s.fresh(ctx); err != nil {
		return err
	}
	picked := names(s.data.RandomProducts(3))
	for _, name := range picked {
		if err := s.inventory.AddToCart(ctx, name); err != nil {
			return err
		}
	}
	if n, err := s.inventory.CartCount(ctx); err != nil {
		return err
	} else if n != len(picked) {
		return mismatch("cart badge", len(picked), n)
	}

	if err := s.inventory.OpenCart(ctx); err != nil {
		return err
	}
	if err := s.cart.AssertLoaded(ctx); err != nil {
		return err
	}
	if err := s.cart.WaitForItems(ctx, len(picked)); err != nil {
		return err
	}
	ok, err := s.cart.ContainsAll(ctx, picked)
	if err != nil {
		return err
	}
	if !ok {
		got, _ := s.cart.ItemNames(ctx)
		return mismatch("cart contents", picked, got)
	}

	total, err := s.cart.Total(ctx)
	if err != nil {
		return err
	}
	want, err := s.data.TotalPrice(picked)
	if err != nil {
		return err
	}
	if math.Abs(total-want) >= 0.005 {
		return mismatch("cart total", want, total)
	}
	return nil
}

func (s *Suite) checkoutValidationFlow(ctx context.Context) error {
	if err := s.fresh(ctx); err != nil {
		return err
	}
	if err := s.inventory.AddToCart(ctx, s.data.RandomProduct().Name); err != nil {
		return err
	}
	if err := s.inventory.OpenCart(ctx); err != nil {
		return err
	}
	if err := s.cart.Checkout(ctx); err != nil {
		return err
	}
	if err := s.checkout.AssertLoaded(ctx); err != nil {
		return err
	}

	cases := []struct{ info, message string }{
		{"missingFirstName", "emptyFirstName"},
		{"missingLastName", "emptyLastName"},
		{"missingPostalCode", "emptyPostalCode"},
	}
	for _, c := range cases {
		info, err := s.data.CheckoutInfo(c.info)
		if err != nil {
			return err
		}
		want, err := s.data.ErrorMessage(c.message)
		if err != nil {
			return err
		}
		if err := s.checkout.FillForm(ctx, info); err != nil {
			return err
		}
		if err := s.checkout.Continue(ctx); err != nil {
			return err
		}
		got, err := s.checkout.Error(ctx)
		if err != nil {
			return err
		}
		if got != want {
			return mismatch("checkout error for "+c.info, want, got)
		}
	}
	return s.checkout.Cancel(ctx)
}

func (s *Suite) purchaseFlow(ctx context.Context) error {
	if err := s.fresh(ctx); err != nil {
		return err
	}
	listed, err := s.inventory.Products(ctx)
	if err != nil {
		return err
	}
	if len(listed) == 0 {
		return mismatch("catalog size", "at least 1", 0)
	}

	picked := names(s.data.RandomProducts(2))
	for _, name := range picked {
		if err := s.inventory.AddToCart(ctx, name); err != nil {
			return err
		}
	}
	if n, err := s.inventory.CartCount(ctx); err != nil {
		return err
	} else if n != len(picked) {
		return mismatch("cart badge", len(picked), n)
	}

	if err := s.inventory.OpenCart(ctx); err != nil {
		return err
	}
	if err := s.cart.AssertLoaded(ctx); err != nil {
		return err
	}
	inCart, err := s.cart.ItemNames(ctx)
	if err != nil {
		return err
	}
	if !slices.Equal(inCart, picked) {
		return mismatch("cart contents", picked, inCart)
	}

	if err := s.cart.Checkout(ctx); err != nil {
		return err
	}
	if err := s.checkout.AssertLoaded(ctx); err != nil {
		return err
	}
	buyer, err := s.data.CheckoutInfo("valid")
	if err != nil {
		return err
	}
	if err := s.checkout.FillForm(ctx, buyer); err != nil {
		return err
	}
	if err := s.checkout.Continue(ctx); err != nil {
		return err
	}

	if err := s.overview.AssertLoaded(ctx); err != nil {
		return err
	}
	if ok, err := s.overview.ContainsAll(ctx, inCart); err != nil {
		return err
	} else if !ok {
		got, _ := s.overview.ItemNames(ctx)
		return mismatch("overview contents", inCart, got)
	}
	if ok, err := s.overview.TotalsConsistent(ctx); err != nil {
		return err
	} else if !ok {
		return mismatch("order total", "subtotal + tax", "different")
	}

	if err := s.overview.Finish(ctx); err != nil {
		return err
	}
	if err := s.complete.AssertLoaded(ctx); err != nil {
		return err
	}
	if err := s.complete.AssertOrderComplete(ctx); err != nil {
		return err
	}
	if err := s.complete.BackHome(ctx); err != nil {
		return err
	}
	return s.inventory.AssertLoaded(ctx)
}

func names(products []entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func priceOf(p entity.Product) float64 {
	return pages.ParsePrice(p.Price)
}
