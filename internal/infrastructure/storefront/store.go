// Package storefront is a scripted Swag Labs replica served through the
// static driver. It backs offline runs and the scenario tests; the markup
// follows the live site closely enough for the page objects to drive it.
package storefront

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/infrastructure/browser/static"
	"storefront-e2e/internal/infrastructure/fixtures"
)

const Password = "secret_sauce"

const (
	msgUsernameRequired   = "Epic sadface: Username is required"
	msgPasswordRequired   = "Epic sadface: Password is required"
	msgLockedOut          = "Epic sadface: Sorry, this user has been locked out."
	msgNoMatch            = "Epic sadface: Username and password do not match any user in this service"
	msgFirstNameRequired  = "Error: First Name is required"
	msgLastNameRequired   = "Error: Last Name is required"
	msgPostalCodeRequired = "Error: Postal Code is required"
)

// Users lists the accepted usernames. locked_out_user is refused and
// performance_glitch_user lands on the inventory after GlitchDelay.
var Users = []string{
	"standard_user",
	"locked_out_user",
	"problem_user",
	"performance_glitch_user",
	"error_user",
	"visual_user",
}

var sortOptions = []struct{ Value, Label string }{
	{"az", "Name (A to Z)"},
	{"za", "Name (Z to A)"},
	{"lohi", "Price (low to high)"},
	{"hilo", "Price (high to low)"},
}

type Store struct {
	driver   *static.Driver
	base     string
	products []entity.Product

	// GlitchDelay is how long performance_glitch_user waits after login.
	GlitchDelay time.Duration

	mu         sync.Mutex
	user       string
	cart       []string
	sort       string
	loginError string
	loginUser  string
	formError  string
	buyer      entity.CheckoutInfo
}

// Mount registers the storefront's pages and controls on d under baseURL.
func Mount(d *static.Driver, baseURL string, products []entity.Product) (*Store, error) {
	s := &Store{
		driver:      d,
		base:        strings.TrimRight(baseURL, "/"),
		products:    products,
		sort:        "az",
		GlitchDelay: 300 * time.Millisecond,
	}

	d.AddPageFunc("/", s.renderLogin).
		AddPageFunc("/inventory.html", s.guard(s.renderInventory)).
		AddPageFunc("/cart.html", s.guard(s.renderCart)).
		AddPageFunc("/checkout-step-one.html", s.guard(s.renderCheckout)).
		AddPageFunc("/checkout-step-two.html", s.guard(s.renderOverview)).
		AddPageFunc("/checkout-complete.html", s.guard(s.renderComplete))

	handlers := map[string]static.ClickHandler{
		`[data-test="login-button"]`:      s.login,
		`[data-test="error-button"]`:      s.dismissError,
		`[data-test="checkout"]`:          s.goTo("/checkout-step-one.html"),
		`[data-test="continue-shopping"]`: s.goTo("/inventory.html"),
		`[data-test="continue"]`:          s.submitBuyer,
		`[data-test="cancel"]`:            s.cancel,
		`[data-test="finish"]`:            s.finish,
		`[data-test="back-to-products"]`:  s.goTo("/inventory.html"),
	}
	for _, p := range products {
		name := p.Name
		handlers[fmt.Sprintf(`[data-test="add-to-cart-%s"]`, Slug(name))] = s.edit(func() { s.add(name) })
		handlers[fmt.Sprintf(`[data-test="remove-%s"]`, Slug(name))] = s.edit(func() { s.remove(name) })
	}
	for sel, fn := range handlers {
		if err := d.Handle(sel, fn); err != nil {
			return nil, err
		}
	}
	if err := d.HandleChange(`[data-test="product-sort-container"]`, s.resort); err != nil {
		return nil, err
	}
	return s, nil
}

// Slug is the suffix the storefront uses in per-product data-test ids.
func Slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// Cart returns the names in the cart in the order they were added.
func (s *Store) Cart() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cart)
}

func (s *Store) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) Buyer() entity.CheckoutInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buyer
}

func (s *Store) navigate(d *static.Driver, path string) {
	// Handlers have no caller to report to; an unknown page leaves the
	// current document in place, which the next wait surfaces.
	_ = d.Navigate(context.Background(), s.base+path)
}

func (s *Store) goTo(path string) static.ClickHandler {
	return func(d *static.Driver) { s.navigate(d, path) }
}

// edit applies fn to the store state and re-renders the current page.
func (s *Store) edit(fn func()) static.ClickHandler {
	return func(d *static.Driver) {
		s.mu.Lock()
		fn()
		s.mu.Unlock()
		_ = d.Reload(context.Background())
	}
}

func (s *Store) add(name string) {
	if !slices.Contains(s.cart, name) {
		s.cart = append(s.cart, name)
	}
}

func (s *Store) remove(name string) {
	s.cart = slices.DeleteFunc(s.cart, func(n string) bool { return n == name })
}

func value(d *static.Driver, selector string) string {
	els, err := d.Query(context.Background(), selector)
	if err != nil || len(els) == 0 {
		return ""
	}
	v, _ := els[0].Value(context.Background())
	return v
}

func (s *Store) login(d *static.Driver) {
	username := value(d, `[data-test="username"]`)
	password := value(d, `[data-test="password"]`)

	s.mu.Lock()
	s.loginUser = username
	switch {
	case username == "":
		s.loginError = msgUsernameRequired
	case password == "":
		s.loginError = msgPasswordRequired
	case !slices.Contains(Users, username) || password != Password:
		s.loginError = msgNoMatch
	case username == "locked_out_user":
		s.loginError = msgLockedOut
	default:
		s.loginError = ""
		s.loginUser = ""
		s.user = username
	}
	failed := s.loginError != ""
	glitch := username == "performance_glitch_user"
	s.mu.Unlock()

	switch {
	case failed:
		s.navigate(d, "/")
	case glitch && s.GlitchDelay > 0:
		time.AfterFunc(s.GlitchDelay, func() { s.navigate(d, "/inventory.html") })
	default:
		s.navigate(d, "/inventory.html")
	}
}

func (s *Store) dismissError(d *static.Driver) {
	s.mu.Lock()
	s.loginError = ""
	s.formError = ""
	s.mu.Unlock()
	_ = d.Reload(context.Background())
}

func (s *Store) resort(d *static.Driver) {
	option := value(d, `[data-test="product-sort-container"]`)
	s.mu.Lock()
	s.sort = option
	s.mu.Unlock()
	_ = d.Reload(context.Background())
}

func (s *Store) submitBuyer(d *static.Driver) {
	buyer := entity.CheckoutInfo{
		FirstName:  value(d, `[data-test="firstName"]`),
		LastName:   value(d, `[data-test="lastName"]`),
		PostalCode: value(d, `[data-test="postalCode"]`),
	}

	s.mu.Lock()
	switch {
	case buyer.FirstName == "":
		s.formError = msgFirstNameRequired
	case buyer.LastName == "":
		s.formError = msgLastNameRequired
	case buyer.PostalCode == "":
		s.formError = msgPostalCodeRequired
	default:
		s.formError = ""
		s.buyer = buyer
	}
	failed := s.formError != ""
	s.mu.Unlock()

	if failed {
		_ = d.Reload(context.Background())
		return
	}
	s.navigate(d, "/checkout-step-two.html")
}

func (s *Store) cancel(d *static.Driver) {
	url, _ := d.CurrentURL(context.Background())
	if strings.Contains(url, "checkout-step-one") {
		s.navigate(d, "/cart.html")
		return
	}
	s.navigate(d, "/inventory.html")
}

func (s *Store) finish(d *static.Driver) {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
	s.navigate(d, "/checkout-complete.html")
}

type productView struct {
	entity.Product
	Slug   string
	InCart bool
}

type sortView struct {
	Value, Label string
	Selected     bool
}

type pageView struct {
	Title       string
	CartCount   int
	Error       string
	Username    string
	SortOptions []sortView
	Products    []productView
	Items       []productView
	Removable   bool
	Subtotal    string
	Tax         string
	Total       string
}

// guard renders the login screen with an access error for signed-out
// visitors.
func (s *Store) guard(render func() string) func() string {
	return func() string {
		s.mu.Lock()
		signedIn := s.user != ""
		s.mu.Unlock()
		if signedIn {
			return render()
		}
		return s.execute("login", pageView{Error: "Epic sadface: You can only access that page when you are logged in."})
	}
}

func (s *Store) renderLogin() string {
	s.mu.Lock()
	v := pageView{Error: s.loginError, Username: s.loginUser}
	s.mu.Unlock()
	return s.execute("login", v)
}

func (s *Store) renderInventory() string {
	s.mu.Lock()
	v := s.view("Products")
	for _, o := range sortOptions {
		v.SortOptions = append(v.SortOptions, sortView{Value: o.Value, Label: o.Label, Selected: o.Value == s.sort})
	}
	v.Products = s.sorted()
	s.mu.Unlock()
	return s.execute("inventory", v)
}

func (s *Store) renderCart() string {
	s.mu.Lock()
	v := s.view("Your Cart")
	v.Items = s.cartItems()
	v.Removable = true
	s.mu.Unlock()
	return s.execute("cart", v)
}

func (s *Store) renderCheckout() string {
	s.mu.Lock()
	v := s.view("Checkout: Your Information")
	v.Error = s.formError
	s.mu.Unlock()
	return s.execute("checkout", v)
}

func (s *Store) renderOverview() string {
	s.mu.Lock()
	v := s.view("Checkout: Overview")
	v.Items = s.cartItems()
	var subtotal float64
	for _, it := range v.Items {
		price, _ := fixtures.PriceValue(it.Price)
		subtotal += price
	}
	tax := math.Round(subtotal*8) / 100
	v.Subtotal = fixtures.FormatPrice(subtotal)
	v.Tax = fixtures.FormatPrice(tax)
	v.Total = fixtures.FormatPrice(subtotal + tax)
	s.mu.Unlock()
	return s.execute("overview", v)
}

func (s *Store) renderComplete() string {
	s.mu.Lock()
	v := s.view("Checkout: Complete!")
	s.mu.Unlock()
	return s.execute("complete", v)
}

// view starts a page model. Callers hold s.mu.
func (s *Store) view(title string) pageView {
	return pageView{Title: title, CartCount: len(s.cart)}
}

// sorted returns the catalog in the selected order. Callers hold s.mu.
func (s *Store) sorted() []productView {
	out := make([]productView, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, productView{Product: p, Slug: Slug(p.Name), InCart: slices.Contains(s.cart, p.Name)})
	}
	price := func(p productView) float64 {
		v, _ := fixtures.PriceValue(p.Price)
		return v
	}
	slices.SortStableFunc(out, func(a, b productView) int {
		switch s.sort {
		case "za":
			return strings.Compare(b.Name, a.Name)
		case "lohi":
			return cmp.Compare(price(a), price(b))
		case "hilo":
			return cmp.Compare(price(b), price(a))
		default:
			return strings.Compare(a.Name, b.Name)
		}
	})
	return out
}

// cartItems returns the cart rows in insertion order. Callers hold s.mu.
func (s *Store) cartItems() []productView {
	out := make([]productView, 0, len(s.cart))
	for _, name := range s.cart {
		for _, p := range s.products {
			if p.Name == name {
				out = append(out, productView{Product: p, Slug: Slug(p.Name), InCart: true})
			}
		}
	}
	return out
}

func (s *Store) execute(name string, v pageView) string {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, v); err != nil {
		return fmt.Sprintf("<html><body><pre>%s</pre></body></html>", err)
	}
	return buf.String()
}
