package interaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractor_ProbesNeverRaise(t *testing.T) {
	i, _ := newTestInteractor(t)
	ctx := context.Background()

	start := time.Now()
	assert.False(t, i.IsVisible(ctx, `[data-test="error"]`))
	assert.False(t, i.IsEnabled(ctx, `[data-test="error"]`))
	assert.False(t, i.IsPresent(ctx, `[data-test="error"]`))
	assert.Less(t, time.Since(start), time.Second, "probes should use the short budget")

	assert.True(t, i.IsVisible(ctx, `[data-test="username"]`))
	assert.True(t, i.IsEnabled(ctx, `[data-test="login-button"]`))
	assert.True(t, i.IsPresent(ctx, "title"))
	assert.False(t, i.IsVisible(ctx, "title"))
}

func TestInteractor_IsEnabledDisabledButton(t *testing.T) {
	i, _ := newTestInteractor(t)
	ctx := context.Background()
	require.NoError(t, i.Navigate(ctx, "/inventory.html"))

	assert.True(t, i.IsVisible(ctx, `[data-test="add-bike-light"]`))
	assert.False(t, i.IsEnabled(ctx, `[data-test="add-bike-light"]`))
}

func TestInteractor_ProbeInvalidSelector(t *testing.T) {
	i, _ := newTestInteractor(t)
	assert.False(t, i.IsVisible(context.Background(), "[[["))
}
