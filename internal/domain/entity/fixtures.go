package entity

type Credentials struct {
	Username string
	Password string
}

type Product struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

type CheckoutInfo struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	PostalCode string `json:"postalCode"`
}

type CartItem struct {
	Name     string
	Price    string
	Quantity string
}
