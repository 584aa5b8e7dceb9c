package interaction

import (
	"context"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/infrastructure/browser/static"
	"storefront-e2e/internal/infrastructure/logger"
	"storefront-e2e/internal/usecase/wait"
)

const baseURL = "https://www.saucedemo.com"

const loginHTML = `<html><head><title>Swag Labs</title></head><body>
<div class="login_logo">Swag Labs</div>
<form>
  <input data-test="username" id="user-name" type="text">
  <input data-test="password" id="password" type="password">
  <input data-test="login-button" id="login-button" type="submit" value="Login">
</form>
<a id="to-inventory" href="/inventory.html">inventory</a>
</body></html>`

const inventoryHTML = `<html><head><title>Swag Labs</title></head><body>
<span class="title">Products</span>
<select data-test="product-sort-container">
  <option value="az">Name (A to Z)</option>
  <option value="za">Name (Z to A)</option>
  <option value="lohi">Price (low to high)</option>
</select>
<div class="inventory_list">
  <div class="inventory_item"><div class="inventory_item_name">Sauce Labs Backpack</div><button data-test="add-backpack">Add to cart</button></div>
  <div class="inventory_item"><div class="inventory_item_name">Sauce Labs Bike Light</div><button data-test="add-bike-light" disabled>Add to cart</button></div>
</div>
</body></html>`

func newTestInteractor(t *testing.T) (*Interactor, *static.Driver) {
	t.Helper()
	d := static.New().
		AddPage("/", loginHTML).
		AddPage("/inventory.html", inventoryHTML)

	timeouts := entity.DefaultTimeouts()
	timeouts.Poll = 10 * time.Millisecond
	timeouts.Short = 50 * time.Millisecond
	timeouts.ElementLoad = 150 * time.Millisecond
	timeouts.PageLoad = time.Second

	log := logger.NewNop()
	i := New(d, wait.New(d, timeouts, log), baseURL, log)
	require.NoError(t, i.Navigate(context.Background(), "/"))
	return i, d
}

func TestInteractor_URL(t *testing.T) {
	i, _ := newTestInteractor(t)
	assert.Equal(t, baseURL+"/inventory.html", i.URL("/inventory.html"))
	assert.Equal(t, baseURL+"/cart.html", i.URL("cart.html"))
	assert.Equal(t, "http://localhost:3000/x", i.URL("http://localhost:3000/x"))
}

func TestInteractor_Navigate(t *testing.T) {
	i, _ := newTestInteractor(t)
	ctx := context.Background()

	require.NoError(t, i.Navigate(ctx, "/inventory.html"))
	url, err := i.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, baseURL+"/inventory.html", url)

	title, err := i.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Swag Labs", title)

	err = i.Navigate(ctx, "/nowhere.html")
	assert.ErrorIs(t, err, static.ErrUnknownPage)
}

func TestInteractor_ClickNeverMatchingSelector(t *testing.T) {
	i, d := newTestInteractor(t)

	start := time.Now()
	err := i.Click(context.Background(), "#does-not-exist")

	assert.ErrorIs(t, err, entity.ErrTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
	assert.Zero(t, d.ClickCount("*"))
}

func TestInteractor_ClickOnce(t *testing.T) {
	i, d := newTestInteractor(t)
	handled := 0
	require.NoError(t, d.Handle(`[data-test="login-button"]`, func(*static.Driver) { handled++ }))

	require.NoError(t, i.Click(context.Background(), `[data-test="login-button"]`))

	assert.Equal(t, 1, d.ClickCount(`[data-test="login-button"]`))
	assert.Equal(t, 1, handled)
}

func TestInteractor_ClickWaitsForLateElement(t *testing.T) {
	i, d := newTestInteractor(t)
	time.AfterFunc(40*time.Millisecond, func() {
		d.Mutate(func(doc *goquery.Document) {
			doc.Find("body").AppendHtml(`<button id="react-burger-menu-btn">Open Menu</button>`)
		})
	})

	require.NoError(t, i.Click(context.Background(), "#react-burger-menu-btn"))
	assert.Equal(t, 1, d.ClickCount("#react-burger-menu-btn"))
}

func TestInteractor_ClickDisabled(t *testing.T) {
	i, d := newTestInteractor(t)
	ctx := context.Background()
	require.NoError(t, i.Navigate(ctx, "/inventory.html"))

	err := i.Click(ctx, `[data-test="add-bike-light"]`)
	assert.ErrorIs(t, err, entity.ErrElementDisabled)
	assert.Zero(t, d.ClickCount(`[data-test="add-bike-light"]`))
}

func TestInteractor_ClickLinkNavigates(t *testing.T) {
	i, _ := newTestInteractor(t)
	ctx := context.Background()

	require.NoError(t, i.Click(ctx, "#to-inventory"))
	assert.NoError(t, i.AssertURLContains(ctx, "/inventory.html"))
}

func TestInteractor_ClickElement(t *testing.T) {
	i, d := newTestInteractor(t)
	ctx := context.Background()
	require.NoError(t, i.Navigate(ctx, "/inventory.html"))

	buttons, err := i.All(ctx, ".inventory_item button")
	require.NoError(t, err)
	require.Len(t, buttons, 2)

	require.NoError(t, i.ClickElement(ctx, buttons[0]))
	assert.Equal(t, 1, d.ClickCount(`[data-test="add-backpack"]`))

	err = i.ClickElement(ctx, buttons[1])
	assert.ErrorIs(t, err, entity.ErrElementDisabled)
	var f *entity.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, entity.ConditionEnabled, f.Condition)
}

func TestInteractor_FillRoundTrip(t *testing.T) {
	i, _ := newTestInteractor(t)
	ctx := context.Background()

	require.NoError(t, i.Fill(ctx, `[data-test="username"]`, "abc"))
	v, err := i.ReadValue(ctx, `[data-test="username"]`)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, i.ClearAndFill(ctx, `[data-test="username"]`, ""))
	v, err = i.ReadValue(ctx, `[data-test="username"]`)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, i.ClearAndFill(ctx, `[data-test="username"]`, "standard_user"))
	v, err = i.ReadValue(ctx, `[data-test="username"]`)
	require.NoError(t, err)
	assert.Equal(t, "standard_user", v)
}

func TestInteractor_TypeSlowly(t *testing.T) {
	i, _ := newTestInteractor(t)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, i.TypeSlowly(ctx, `[data-test="password"]`, "secret", 5*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	v, err := i.ReadValue(ctx, `[data-test="password"]`)
	require.NoError(t, err)
	assert.Equal(t, "secret", v)
}

func TestInteractor_Read(t *testing.T) {
	i, _ := newTestInteractor(t)
	ctx := context.Background()
	require.NoError(t, i.Navigate(ctx, "/inventory.html"))

	text, err := i.ReadText(ctx, ".title")
	require.NoError(t, err)
	assert.Equal(t, "Products", text)

	v, err := i.ReadAttribute(ctx, `[data-test="add-backpack"]`, "data-test")
	require.NoError(t, err)
	assert.Equal(t, "add-backpack", v)

	v, err = i.ReadAttribute(ctx, `[data-test="add-backpack"]`, "aria-label")
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = i.ReadText(ctx, ".missing")
	assert.ErrorIs(t, err, entity.ErrTimeout)
}

func TestInteractor_SelectOption(t *testing.T) {
	i, _ := newTestInteractor(t)
	ctx := context.Background()
	require.NoError(t, i.Navigate(ctx, "/inventory.html"))
	sel := `[data-test="product-sort-container"]`

	v, err := i.ReadValue(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, "az", v)

	require.NoError(t, i.SelectOption(ctx, sel, "lohi"))
	v, err = i.ReadValue(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, "lohi", v)

	require.NoError(t, i.SelectOptionByLabel(ctx, sel, "Name (Z to A)"))
	v, err = i.ReadValue(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, "za", v)

	assert.ErrorIs(t, i.SelectOption(ctx, sel, "hilo"), static.ErrNoOption)
}

func TestInteractor_AllIsSnapshot(t *testing.T) {
	i, d := newTestInteractor(t)
	ctx := context.Background()
	require.NoError(t, i.Navigate(ctx, "/inventory.html"))

	items, err := i.All(ctx, ".inventory_item")
	require.NoError(t, err)
	require.Len(t, items, 2)

	d.Mutate(func(doc *goquery.Document) {
		doc.Find(".inventory_list").AppendHtml(`<div class="inventory_item"><div class="inventory_item_name">Sauce Labs Onesie</div></div>`)
	})
	assert.Len(t, items, 2)

	n, err := i.Count(ctx, ".inventory_item")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	names, err := items[1].Find(ctx, ".inventory_item_name")
	require.NoError(t, err)
	require.Len(t, names, 1)
	name, err := i.ReadElementText(ctx, names[0])
	require.NoError(t, err)
	assert.Equal(t, "Sauce Labs Bike Light", name)
}

func TestInteractor_CountDoesNotWait(t *testing.T) {
	i, _ := newTestInteractor(t)

	start := time.Now()
	n, err := i.Count(context.Background(), ".cart_item")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Less(t, time.Since(start), 20*time.Millisecond)
}

func TestInteractor_Screenshot(t *testing.T) {
	i, _ := newTestInteractor(t)

	shot, err := i.Screenshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "html", shot.Format)
	assert.Contains(t, string(shot.Data), "login-button")
}

func TestInteractor_RightAndDoubleClick(t *testing.T) {
	i, d := newTestInteractor(t)
	ctx := context.Background()
	require.NoError(t, i.Navigate(ctx, "/inventory.html"))

	opened := 0
	require.NoError(t, d.On(static.EventContextMenu, `[data-test="add-backpack"]`, func(*static.Driver) { opened++ }))

	require.NoError(t, i.RightClick(ctx, `[data-test="add-backpack"]`))
	require.NoError(t, i.DoubleClick(ctx, `[data-test="add-backpack"]`))

	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, d.EventCount(static.EventContextMenu, `[data-test="add-backpack"]`))
	assert.Equal(t, 1, d.EventCount(static.EventDoubleClick, `[data-test="add-backpack"]`))
	assert.Zero(t, d.ClickCount(`[data-test="add-backpack"]`))
}

func TestInteractor_RightClickWaitsForEnabled(t *testing.T) {
	i, d := newTestInteractor(t)
	ctx := context.Background()
	require.NoError(t, i.Navigate(ctx, "/inventory.html"))

	err := i.RightClick(ctx, `[data-test="add-bike-light"]`)
	assert.ErrorIs(t, err, entity.ErrElementDisabled)
	assert.ErrorIs(t, i.DoubleClick(ctx, `[data-test="add-bike-light"]`), entity.ErrElementDisabled)
	assert.Zero(t, d.EventCount(static.EventContextMenu, `[data-test="add-bike-light"]`))
}

func TestInteractor_HoverNeedsVisible(t *testing.T) {
	i, d := newTestInteractor(t)
	ctx := context.Background()
	d.Mutate(func(doc *goquery.Document) {
		doc.Find("body").AppendHtml(`<div id="tooltip" hidden>tip</div>`)
	})

	require.NoError(t, i.Hover(ctx, ".login_logo"))
	assert.Equal(t, 1, d.EventCount(static.EventHover, ".login_logo"))

	assert.ErrorIs(t, i.Hover(ctx, "#tooltip"), entity.ErrTimeout)
	require.NoError(t, i.ScrollIntoView(ctx, "#tooltip"))
	assert.Equal(t, 1, d.EventCount(static.EventScrollIntoView, "#tooltip"))
}

func TestInteractor_PressAndScroll(t *testing.T) {
	i, d := newTestInteractor(t)
	ctx := context.Background()

	submitted := 0
	require.NoError(t, d.On(static.EventKey, `[data-test="password"]`, func(*static.Driver) { submitted++ }))
	require.NoError(t, i.Fill(ctx, `[data-test="password"]`, "secret_sauce"))
	require.NoError(t, i.Press(ctx, "Enter"))
	assert.Equal(t, 1, submitted)

	require.NoError(t, i.ScrollToBottom(ctx))
	assert.Equal(t, entity.ScrollBottom, d.ScrollPosition())
	require.NoError(t, i.ScrollToTop(ctx))
	assert.Equal(t, entity.ScrollTop, d.ScrollPosition())
}

func TestInteractor_BackAndForward(t *testing.T) {
	i, _ := newTestInteractor(t)
	ctx := context.Background()
	require.NoError(t, i.Click(ctx, "#to-inventory"))

	require.NoError(t, i.Back(ctx))
	url, err := i.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, baseURL+"/", url)
	assert.NoError(t, i.AssertVisible(ctx, `[data-test="username"]`))

	require.NoError(t, i.Forward(ctx))
	assert.NoError(t, i.AssertURLContains(ctx, "/inventory.html"))
	assert.NoError(t, i.AssertVisible(ctx, ".inventory_list"))

	// Already at the newest entry.
	require.NoError(t, i.Forward(ctx))
	assert.NoError(t, i.AssertURLContains(ctx, "/inventory.html"))
}
