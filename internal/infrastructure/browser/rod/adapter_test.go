package rod

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-e2e/internal/domain/entity"
)

func newTestAdapter(t *testing.T) *BrowserAdapter {
	t.Helper()
	if testing.Short() {
		t.Skip("launches a real browser")
	}
	adapter, err := NewBrowserAdapter(context.Background(), DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(adapter.Close)
	return adapter
}

func serve(t *testing.T, body string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Headless)
	assert.Equal(t, time.Duration(defaultSlowMotion), cfg.SlowMotion)
	assert.False(t, cfg.NoSandbox, "Should be secure by default")
	assert.False(t, cfg.DevTools)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"Empty URL", "", true},
		{"Invalid scheme", "ftp://example.com", true},
		{"JavaScript URL", "javascript:alert(1)", true},
		{"HTTPS", "https://www.saucedemo.com/inventory.html", false},
		{"Blank", "about:blank", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsXPath(t *testing.T) {
	assert.True(t, isXPath("//button[@id='x']"))
	assert.True(t, isXPath("(//li)[2]"))
	assert.False(t, isXPath("[data-test=\"login-button\"]"))
	assert.False(t, isXPath(".inventory_item"))
}

func TestBrowserAdapter_IsReady(t *testing.T) {
	adapter := newTestAdapter(t)

	assert.True(t, adapter.IsReady())

	adapter.Close()
	assert.False(t, adapter.IsReady())

	_, err := adapter.Query(context.Background(), "body")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBrowserAdapter_NavigateAndLoadStates(t *testing.T) {
	url := serve(t, `<!DOCTYPE html><html><head><title>Swag Labs</title></head><body><h1>Hello</h1></body></html>`)
	adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Navigate(ctx, url))
	require.NoError(t, adapter.WaitLoadState(ctx, entity.LoadStateDOMContentLoaded))
	require.NoError(t, adapter.WaitLoadState(ctx, entity.LoadStateNetworkIdle))

	current, err := adapter.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, url+"/", current)

	title, err := adapter.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Swag Labs", title)
}

func TestBrowserAdapter_Navigate_InvalidURL(t *testing.T) {
	adapter := newTestAdapter(t)
	err := adapter.Navigate(context.Background(), "javascript:alert(1)")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestBrowserAdapter_QueryAndElementState(t *testing.T) {
	url := serve(t, `<!DOCTYPE html>
<html>
<body>
	<button id="go">Go</button>
	<button id="off" disabled>Off</button>
	<div id="ghost" style="display:none">boo</div>
	<ul><li class="item">a</li><li class="item">b</li><li class="item">c</li></ul>
	<input id="name" type="text" data-test="name" />
	<select id="sort"><option value="az">Name (A to Z)</option><option value="za">Name (Z to A)</option></select>
</body>
</html>`)
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, url))

	items, err := adapter.Query(ctx, ".item")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	none, err := adapter.Query(ctx, "#missing")
	require.NoError(t, err)
	assert.Empty(t, none)

	first := func(sel string) *element {
		els, err := adapter.Query(ctx, sel)
		require.NoError(t, err)
		require.Len(t, els, 1)
		return els[0].(*element)
	}

	visible, err := first("#ghost").Visible(ctx)
	require.NoError(t, err)
	assert.False(t, visible)

	enabled, err := first("#off").Enabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	name := first("#name")
	require.NoError(t, name.SetValue(ctx, "abc"))
	v, err := name.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	testAttr, ok, err := name.Attribute(ctx, "data-test")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "name", testAttr)

	sort := first("#sort")
	require.NoError(t, sort.Select(ctx, entity.SelectByLabel, "Name (Z to A)"))
	v, err = sort.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, "za", v)
	assert.Error(t, sort.Select(ctx, entity.SelectByValue, "hilo"))

	require.NoError(t, first("#go").Click(ctx))
}

func TestBrowserAdapter_Query_XPath(t *testing.T) {
	url := serve(t, `<!DOCTYPE html><html><body><button id="testBtn">Click Me</button></body></html>`)
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, url))

	els, err := adapter.Query(ctx, "//button[@id='testBtn']")
	require.NoError(t, err)
	assert.Len(t, els, 1)
}

func TestBrowserAdapter_Query_InvalidSelector(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	_, err := adapter.Query(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidSelector)

	require.NoError(t, adapter.Navigate(ctx, serve(t, `<html><body><p>x</p></body></html>`)))
	_, err = adapter.Query(ctx, "[[[")
	assert.ErrorIs(t, err, ErrInvalidSelector)
	assert.ErrorIs(t, err, entity.ErrInvalidSelector)
}

func TestQueryError(t *testing.T) {
	bad := queryError("[[[", errors.New("{-32000 DOM Error while querying: '[[[' is not a valid selector}"))
	assert.ErrorIs(t, bad, ErrInvalidSelector)
	assert.Contains(t, bad.Error(), "[[[")

	other := queryError(".item", errors.New("context deadline exceeded"))
	assert.NotErrorIs(t, other, ErrInvalidSelector)
	assert.Contains(t, other.Error(), `query ".item"`)
}

func TestBrowserAdapter_Screenshot(t *testing.T) {
	url := serve(t, `<!DOCTYPE html><html><body style="width:2000px"><h1>Wide</h1></body></html>`)
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, url))

	shot, err := adapter.Screenshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", shot.Format)
	assert.LessOrEqual(t, shot.Width, maxScreenshotWidth)
	assert.NotEmpty(t, shot.Data)
}

func TestKeyFor(t *testing.T) {
	k, err := keyFor("Enter")
	require.NoError(t, err)
	assert.Equal(t, "Enter", k.Info().Code)

	k, err = keyFor("a")
	require.NoError(t, err)
	assert.Equal(t, "KeyA", k.Info().Code)

	for _, bad := range []string{"", "Hyper", "é", "ab"} {
		_, err := keyFor(bad)
		assert.Error(t, err, bad)
	}
}

func TestBrowserAdapter_PointerKeysAndHistory(t *testing.T) {
	url := serve(t, `<!DOCTYPE html>
<html>
<body style="height:5000px">
	<div id="target" style="width:100px;height:40px"
		oncontextmenu="this.dataset.menu = 'yes'; return false"
		ondblclick="this.dataset.dbl = 'yes'"
		onmouseover="this.dataset.hover = 'yes'">target</div>
	<input id="field" onkeydown="this.dataset.key = event.key">
	<a id="next" href="#next">next</a>
</body>
</html>`)
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, url))
	require.NoError(t, adapter.WaitLoadState(ctx, entity.LoadStateLoad))

	els, err := adapter.Query(ctx, "#target")
	require.NoError(t, err)
	require.Len(t, els, 1)
	target := els[0]
	require.NoError(t, target.Hover(ctx))
	require.NoError(t, target.RightClick(ctx))
	require.NoError(t, target.DoubleClick(ctx))
	for _, name := range []string{"data-hover", "data-menu", "data-dbl"} {
		v, ok, err := target.Attribute(ctx, name)
		require.NoError(t, err)
		assert.True(t, ok, name)
		assert.Equal(t, "yes", v)
	}

	fields, err := adapter.Query(ctx, "#field")
	require.NoError(t, err)
	require.NoError(t, fields[0].Click(ctx))
	require.NoError(t, adapter.Press(ctx, "Escape"))
	key, _, err := fields[0].Attribute(ctx, "data-key")
	require.NoError(t, err)
	assert.Equal(t, "Escape", key)

	require.NoError(t, adapter.Scroll(ctx, entity.ScrollBottom))
	require.NoError(t, adapter.Scroll(ctx, entity.ScrollTop))

	links, err := adapter.Query(ctx, "#next")
	require.NoError(t, err)
	require.NoError(t, links[0].Click(ctx))
	require.NoError(t, adapter.Back(ctx))
	current, err := adapter.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, url+"/", current)

	require.NoError(t, adapter.Forward(ctx))
	current, err = adapter.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, url+"/#next", current)
}
