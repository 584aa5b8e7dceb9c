package output

import "storefront-e2e/internal/domain/entity"

type FixturePort interface {
	Credentials(userType string) (entity.Credentials, error)
	Products() []entity.Product
	ProductByName(name string) (entity.Product, bool)
	RandomProduct() entity.Product
	RandomProducts(n int) []entity.Product
	TotalPrice(names []string) (float64, error)
	CheckoutInfo(kind string) (entity.CheckoutInfo, error)
	ErrorMessage(key string) (string, error)
	SuccessMessage(key string) (string, error)
	SortOption(key string) (string, error)
}
