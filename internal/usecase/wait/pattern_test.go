package wait

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern URLPattern
		url     string
		want    bool
	}{
		{"contains path", URLContains("/inventory.html"), "https://www.saucedemo.com/inventory.html", true},
		{"contains miss", URLContains("/cart.html"), "https://www.saucedemo.com/inventory.html", false},
		{"glob double star", URLGlob("**/checkout-step-one.html"), "https://www.saucedemo.com/checkout-step-one.html", true},
		{"glob single star stops at slash", URLGlob("https://*/cart.html"), "https://www.saucedemo.com/a/cart.html", false},
		{"glob single star", URLGlob("https://*/cart.html"), "https://www.saucedemo.com/cart.html", true},
		{"glob is anchored", URLGlob("**/cart"), "https://www.saucedemo.com/cart.html", false},
		{"glob escapes dots", URLGlob("**/cart.html"), "https://www.saucedemo.com/cartxhtml", false},
		{"regexp", URLRegexp(regexp.MustCompile(`checkout-step-(one|two)\.html$`)), "https://www.saucedemo.com/checkout-step-two.html", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Match(tt.url))
		})
	}
}

func TestURLPattern_String(t *testing.T) {
	assert.Equal(t, "**/cart.html", URLGlob("**/cart.html").String())
	assert.Equal(t, "/inventory.html", URLContains("/inventory.html").String())
	assert.Equal(t, `^a$`, URLRegexp(regexp.MustCompile(`^a$`)).String())
}
