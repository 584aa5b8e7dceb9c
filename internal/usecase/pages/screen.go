package pages

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/interaction"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotInCart   = errors.New("item not in cart")
)

// screen carries what every page object shares: the session façade and
// the declarative contract for "this screen is showing".
type screen struct {
	ui    *interaction.Interactor
	ready entity.Readiness
}

func (s screen) Readiness() entity.Readiness {
	return s.ready
}

// IsLoaded reports whether the screen is showing. It never fails.
func (s screen) IsLoaded(ctx context.Context) bool {
	return s.ui.Loaded(ctx, s.ready)
}

func (s screen) AssertLoaded(ctx context.Context) error {
	return s.ui.AssertReady(ctx, s.ready)
}

func visible(selectors ...string) []entity.Check {
	checks := make([]entity.Check, 0, len(selectors))
	for _, sel := range selectors {
		checks = append(checks, entity.Check{Selector: sel, Condition: entity.ConditionVisible})
	}
	return checks
}

var amount = regexp.MustCompile(`\$([\d.]+)`)

// ParsePrice extracts the first dollar amount from s, or 0 when there is
// none.
func ParsePrice(s string) float64 {
	m := amount.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}
