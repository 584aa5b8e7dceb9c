// Package fixtures serves the catalog and form data scenarios run with, and
// resolves account credentials from the environment.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

//go:embed data/products.json
var productsJSON []byte

//go:embed data/test-data.json
var testDataJSON []byte

var (
	ErrUnknownUserType = errors.New("unknown user type")
	ErrUnknownKey      = errors.New("unknown fixture key")
	ErrUnknownProduct  = errors.New("unknown product")
)

const (
	StandardUser          = "standardUser"
	LockedOutUser         = "lockedOutUser"
	ProblemUser           = "problemUser"
	PerformanceGlitchUser = "performanceGlitchUser"
	ErrorUser             = "errorUser"
	VisualUser            = "visualUser"
)

// userEnv maps a user type to the variable holding its username.
var userEnv = map[string]string{
	StandardUser:          "STANDARD_USER",
	LockedOutUser:         "LOCKED_OUT_USER",
	ProblemUser:           "PROBLEM_USER",
	PerformanceGlitchUser: "PERFORMANCE_GLITCH_USER",
	ErrorUser:             "ERROR_USER",
	VisualUser:            "VISUAL_USER",
}

const defaultPassword = "secret_sauce"

type testData struct {
	CheckoutInfo    map[string]entity.CheckoutInfo `json:"checkoutInfo"`
	ErrorMessages   map[string]string              `json:"errorMessages"`
	SuccessMessages map[string]string              `json:"successMessages"`
	SortOptions     map[string]string              `json:"sortOptions"`
}

type Fixtures struct {
	cfg      output.ConfigPort
	products []entity.Product
	data     testData
	rand     *rand.Rand
}

func Load(cfg output.ConfigPort) (*Fixtures, error) {
	var catalog struct {
		Products []entity.Product `json:"products"`
	}
	if err := json.Unmarshal(productsJSON, &catalog); err != nil {
		return nil, fmt.Errorf("parse products.json: %w", err)
	}

	var data testData
	if err := json.Unmarshal(testDataJSON, &data); err != nil {
		return nil, fmt.Errorf("parse test-data.json: %w", err)
	}

	return &Fixtures{
		cfg:      cfg,
		products: catalog.Products,
		data:     data,
		rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}, nil
}

// Credentials resolves the username for userType from the environment.
// PASSWORD falls back to the storefront's shared demo password.
func (f *Fixtures) Credentials(userType string) (entity.Credentials, error) {
	key, ok := userEnv[userType]
	if !ok {
		return entity.Credentials{}, fmt.Errorf("%w: %s", ErrUnknownUserType, userType)
	}
	username, err := f.cfg.MustGet(key)
	if err != nil {
		return entity.Credentials{}, fmt.Errorf("credentials for %s: %w", userType, err)
	}
	return entity.Credentials{
		Username: username,
		Password: f.cfg.GetWithDefault("PASSWORD", defaultPassword),
	}, nil
}

func (f *Fixtures) UserTypes() []string {
	return []string{StandardUser, LockedOutUser, ProblemUser, PerformanceGlitchUser, ErrorUser, VisualUser}
}

// Products returns a copy of the catalog in file order.
func (f *Fixtures) Products() []entity.Product {
	return append([]entity.Product(nil), f.products...)
}

func (f *Fixtures) ProductNames() []string {
	names := make([]string, 0, len(f.products))
	for _, p := range f.products {
		names = append(names, p.Name)
	}
	return names
}

func (f *Fixtures) ProductByName(name string) (entity.Product, bool) {
	for _, p := range f.products {
		if p.Name == name {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (f *Fixtures) RandomProduct() entity.Product {
	return f.products[f.rand.IntN(len(f.products))]
}

// RandomProducts returns up to n distinct products in random order.
func (f *Fixtures) RandomProducts(n int) []entity.Product {
	shuffled := f.Products()
	f.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:min(max(n, 0), len(shuffled))]
}

func (f *Fixtures) ProductPrice(name string) (float64, error) {
	p, ok := f.ProductByName(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownProduct, name)
	}
	return PriceValue(p.Price)
}

func (f *Fixtures) TotalPrice(names []string) (float64, error) {
	var total float64
	for _, name := range names {
		price, err := f.ProductPrice(name)
		if err != nil {
			return 0, err
		}
		total += price
	}
	return total, nil
}

// CheckoutInfo returns the named buyer record; "valid" is a complete one.
func (f *Fixtures) CheckoutInfo(kind string) (entity.CheckoutInfo, error) {
	info, ok := f.data.CheckoutInfo[kind]
	if !ok {
		return entity.CheckoutInfo{}, fmt.Errorf("%w: checkoutInfo.%s", ErrUnknownKey, kind)
	}
	return info, nil
}

func (f *Fixtures) ErrorMessage(key string) (string, error) {
	return lookup(f.data.ErrorMessages, "errorMessages", key)
}

func (f *Fixtures) SuccessMessage(key string) (string, error) {
	return lookup(f.data.SuccessMessages, "successMessages", key)
}

func (f *Fixtures) SortOption(key string) (string, error) {
	return lookup(f.data.SortOptions, "sortOptions", key)
}

func lookup(m map[string]string, section, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownKey, section, key)
	}
	return v, nil
}

// PriceValue parses a price such as "$29.99".
func PriceValue(price string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(price), "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", price, err)
	}
	return v, nil
}

// FormatPrice renders v the way the storefront shows prices.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
