package storefront

import "html/template"

var pages = template.Must(template.New("storefront").Parse(`
{{define "head"}}<!DOCTYPE html><html><head><title>Swag Labs</title></head><body>{{end}}

{{define "header"}}<div class="header_container" data-test="header-container">
<div class="app_logo">Swag Labs</div>
<a class="shopping_cart_link" data-test="shopping-cart-link" href="/cart.html">{{if .CartCount}}<span class="shopping_cart_badge" data-test="shopping-cart-badge">{{.CartCount}}</span>{{end}}</a>
<span class="title" data-test="title">{{.Title}}</span>
</div>{{end}}

{{define "error"}}{{if .Error}}<div class="error-message-container error"><h3 data-test="error">{{.Error}}</h3><button class="error-button" data-test="error-button"></button></div>{{end}}{{end}}

{{define "rows"}}<div class="cart_list">{{range .Items}}
<div class="cart_item" data-test="inventory-item"><div class="cart_quantity" data-test="item-quantity">1</div>
<div class="inventory_item_name" data-test="inventory-item-name">{{.Name}}</div>
<div class="inventory_item_desc">{{.Description}}</div>
<div class="inventory_item_price" data-test="inventory-item-price">{{.Price}}</div>
{{if $.Removable}}<button data-test="remove-{{.Slug}}">Remove</button>{{end}}</div>{{end}}
</div>{{end}}

{{define "login"}}{{template "head"}}
<div class="login_logo">Swag Labs</div>
<form>
<input data-test="username" id="user-name" type="text" placeholder="Username" value="{{.Username}}">
<input data-test="password" id="password" type="password" placeholder="Password">
{{template "error" .}}
<input data-test="login-button" id="login-button" type="submit" value="Login">
</form>
</body></html>{{end}}

{{define "inventory"}}{{template "head"}}{{template "header" .}}
<select class="product_sort_container" data-test="product-sort-container">{{range .SortOptions}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
</select>
<div class="inventory_list" data-test="inventory-list">{{range .Products}}
<div class="inventory_item" data-test="inventory-item">
<div class="inventory_item_name" data-test="inventory-item-name">{{.Name}}</div>
<div class="inventory_item_desc" data-test="inventory-item-desc">{{.Description}}</div>
<div class="inventory_item_price" data-test="inventory-item-price">{{.Price}}</div>
{{if .InCart}}<button data-test="remove-{{.Slug}}">Remove</button>{{else}}<button data-test="add-to-cart-{{.Slug}}">Add to cart</button>{{end}}
</div>{{end}}
</div>
</body></html>{{end}}

{{define "cart"}}{{template "head"}}{{template "header" .}}
{{template "rows" .}}
<button data-test="continue-shopping">Continue Shopping</button>
<button data-test="checkout">Checkout</button>
</body></html>{{end}}

{{define "checkout"}}{{template "head"}}{{template "header" .}}
<form>
<input data-test="firstName" id="first-name" type="text" placeholder="First Name">
<input data-test="lastName" id="last-name" type="text" placeholder="Last Name">
<input data-test="postalCode" id="postal-code" type="text" placeholder="Zip/Postal Code">
{{template "error" .}}
<button data-test="cancel">Cancel</button>
<input data-test="continue" type="submit" value="Continue">
</form>
</body></html>{{end}}

{{define "overview"}}{{template "head"}}{{template "header" .}}
{{template "rows" .}}
<div class="summary_info" data-test="summary-info">
<div class="summary_subtotal_label" data-test="subtotal-label">Item total: {{.Subtotal}}</div>
<div class="summary_tax_label" data-test="tax-label">Tax: {{.Tax}}</div>
<div class="summary_total_label" data-test="total-label">Total: {{.Total}}</div>
</div>
<button data-test="cancel">Cancel</button>
<button data-test="finish">Finish</button>
</body></html>{{end}}

{{define "complete"}}{{template "head"}}{{template "header" .}}
<h2 class="complete-header" data-test="complete-header">Thank you for your order!</h2>
<div class="complete-text" data-test="complete-text">Your order has been dispatched, and will arrive just as fast as the pony can get there!</div>
<button data-test="back-to-products">Back Home</button>
</body></html>{{end}}
`))
