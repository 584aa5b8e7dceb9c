package entity

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeouts_For(t *testing.T) {
	to := DefaultTimeouts()

	assert.Equal(t, 5*time.Second, to.For(ConditionVisible))
	assert.Equal(t, 5*time.Second, to.For(ConditionEnabled))
	assert.Equal(t, 5*time.Second, to.For(ConditionTextContains))
	assert.Equal(t, 30*time.Second, to.For(ConditionURLMatches))
	assert.Equal(t, 30*time.Second, to.For(ConditionNetworkIdle))
	assert.Equal(t, 30*time.Second, to.For(""))
}

func TestTimeouts_Resolve(t *testing.T) {
	to := DefaultTimeouts()

	assert.Equal(t, 2*time.Second, to.Resolve(ConditionVisible, 2*time.Second))
	assert.Equal(t, to.ElementLoad, to.Resolve(ConditionVisible, 0))
	assert.Equal(t, to.PageLoad, to.Resolve(ConditionURLMatches, -time.Second))
}

func TestTimeouts_WithDefaults(t *testing.T) {
	to := Timeouts{Short: time.Second}.WithDefaults()

	assert.Equal(t, time.Second, to.Short)
	assert.Equal(t, 100*time.Millisecond, to.Poll)
	assert.Equal(t, 60*time.Second, to.Long)
}

func TestFailure(t *testing.T) {
	cause := errors.New("node detached")
	f := &Failure{
		Kind:      ErrTimeout,
		Condition: ConditionVisible,
		Selector:  ".inventory_list",
		Budget:    5 * time.Second,
		Err:       cause,
	}
	wrapped := fmt.Errorf("inventory: %w", f)

	assert.ErrorIs(t, wrapped, ErrTimeout)
	assert.ErrorIs(t, wrapped, cause)
	assert.NotErrorIs(t, wrapped, ErrAssertion)
	assert.Equal(t, `timeout: visible ".inventory_list" after 5s: node detached`, f.Error())

	m := &Failure{Kind: ErrCountMismatch, Selector: ".cart_item", Expected: "3", Actual: "2"}
	assert.Equal(t, `count mismatch ".cart_item" (expected "3", got "2")`, m.Error())
}
