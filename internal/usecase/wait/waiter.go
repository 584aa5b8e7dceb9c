package wait

import (
	"context"
	"errors"
	"time"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

// errExpired is returned by poll when the budget runs out before the check
// reports done. Callers turn it into a typed *entity.Failure.
var errExpired = errors.New("budget expired")

// Waiter turns eventually-consistent browser state into bounded waits.
// It holds no state of its own besides the injected session and config.
type Waiter struct {
	browser  output.BrowserPort
	timeouts entity.Timeouts
	logger   output.LoggerPort
}

func New(browser output.BrowserPort, timeouts entity.Timeouts, logger output.LoggerPort) *Waiter {
	return &Waiter{
		browser:  browser,
		timeouts: timeouts.WithDefaults(),
		logger:   logger,
	}
}

func (w *Waiter) Timeouts() entity.Timeouts {
	return w.timeouts
}

// Condition polls pred at a fixed interval until it returns true. A
// predicate error aborts the wait and is returned as is. Zero timeout and
// interval fall back to Timeouts.Default and Timeouts.Poll.
func (w *Waiter) Condition(ctx context.Context, pred func(ctx context.Context) (bool, error), timeout, interval time.Duration) error {
	budget := w.timeouts.Resolve("", timeout)
	if interval <= 0 {
		interval = w.timeouts.Poll
	}

	err := poll(ctx, budget, interval, pred)
	if errors.Is(err, errExpired) {
		return &entity.Failure{Kind: entity.ErrTimeout, Budget: budget}
	}
	return err
}

// poll runs check immediately and then every interval until it reports
// done, returns an error, or budget elapses. The last check always runs at
// or after the deadline, so expiry is never reported early.
func poll(ctx context.Context, budget, interval time.Duration, check func(ctx context.Context) (bool, error)) error {
	deadline := time.Now().Add(budget)

	pctx, cancel := context.WithDeadline(ctx, deadline.Add(interval))
	defer cancel()

	for {
		done, err := check(pctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return errExpired
		}

		if err := sleep(ctx, min(interval, remaining)); err != nil {
			return err
		}
	}
}

var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// settle records a check error and decides whether polling goes on.
// Errors no amount of waiting fixes, such as a malformed selector, stop
// the poll at once.
func settle(last *error, err error) error {
	*last = err
	if errors.Is(err, entity.ErrInvalidSelector) {
		return err
	}
	return nil
}

func (w *Waiter) fail(err error, kind error, cond entity.Condition, selector string, budget time.Duration, last error) error {
	if errors.Is(err, entity.ErrInvalidSelector) {
		w.logger.Debug("wait aborted", "condition", cond, "selector", selector, "error", err)
		return &entity.Failure{
			Kind:      entity.ErrInvalidSelector,
			Condition: cond,
			Selector:  selector,
			Err:       err,
		}
	}
	if !errors.Is(err, errExpired) {
		return err
	}
	f := &entity.Failure{
		Kind:      kind,
		Condition: cond,
		Selector:  selector,
		Budget:    budget,
		Err:       last,
	}
	w.logger.Debug("wait failed", "condition", cond, "selector", selector, "budget_ms", budget.Milliseconds(), "kind", kind.Error())
	return f
}
