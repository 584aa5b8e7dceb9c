package output

import (
	"context"

	"storefront-e2e/internal/domain/entity"
)

// ScenarioPort is one named end-to-end flow bound to a browser session.
type ScenarioPort interface {
	Name() string
	Description() string
	Run(ctx context.Context) error
}

type ScenarioRegistry interface {
	Register(scenario ScenarioPort)
	Get(name string) (ScenarioPort, bool)
	All() []ScenarioPort
	Definitions() []entity.ScenarioInfo
}
