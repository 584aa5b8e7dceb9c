package input

import (
	"context"

	"storefront-e2e/internal/domain/entity"
)

type ScenarioRunner interface {
	// Run executes the named scenarios in order, or all of them when names
	// is empty. The error reports setup problems only; scenario failures
	// are in the results.
	Run(ctx context.Context, names []string) ([]entity.ScenarioResult, error)
	List() []entity.ScenarioInfo
}
