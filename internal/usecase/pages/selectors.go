package pages

// Paths are resolved against the configured base URL by the Interactor.
const (
	PathLogin            = "/"
	PathInventory        = "/inventory.html"
	PathCart             = "/cart.html"
	PathCheckout         = "/checkout-step-one.html"
	PathCheckoutOverview = "/checkout-step-two.html"
	PathCheckoutComplete = "/checkout-complete.html"
)

// PageTitle is the document title every Swag Labs screen shares.
const PageTitle = "Swag Labs"

const (
	Header       = ".header_container"
	Title        = ".title"
	ErrorMessage = `[data-test="error"]`
	ErrorButton  = ".error-button"

	UsernameInput = `[data-test="username"]`
	PasswordInput = `[data-test="password"]`
	LoginButton   = `[data-test="login-button"]`

	InventoryList    = ".inventory_list"
	InventoryItem    = ".inventory_item"
	ItemName         = ".inventory_item_name"
	ItemPrice        = ".inventory_item_price"
	ItemDesc         = ".inventory_item_desc"
	AddToCartButton  = `[data-test^="add-to-cart"]`
	RemoveButton     = `[data-test^="remove"]`
	ShoppingCartLink = `[data-test="shopping-cart-link"]`
	CartBadge        = `[data-test="shopping-cart-badge"]`
	ProductSort      = `[data-test="product-sort-container"]`

	CartItem               = ".cart_item"
	CartItemQuantity       = ".cart_quantity"
	CheckoutButton         = `[data-test="checkout"]`
	ContinueShoppingButton = `[data-test="continue-shopping"]`

	FirstNameInput  = `[data-test="firstName"]`
	LastNameInput   = `[data-test="lastName"]`
	PostalCodeInput = `[data-test="postalCode"]`
	ContinueButton  = `[data-test="continue"]`
	CancelButton    = `[data-test="cancel"]`

	CheckoutSummary = ".summary_info"
	SubtotalLabel   = ".summary_subtotal_label"
	TaxLabel        = ".summary_tax_label"
	TotalLabel      = ".summary_total_label"
	FinishButton    = `[data-test="finish"]`

	CompleteHeader = ".complete-header"
	CompleteText   = ".complete-text"
	BackHomeButton = `[data-test="back-to-products"]`
)

const (
	SortNameAZ    = "az"
	SortNameZA    = "za"
	SortPriceLoHi = "lohi"
	SortPriceHiLo = "hilo"
)

const (
	OrderCompleteMessage   = "Thank you for your order!"
	OrderDispatchedMessage = "Your order has been dispatched, and will arrive just as fast as the pony can get there!"
)
