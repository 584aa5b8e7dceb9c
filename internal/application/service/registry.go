package service

import (
	"sort"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

var _ output.ScenarioRegistry = (*ScenarioRegistryImpl)(nil)

// ScenarioRegistryImpl keeps scenarios in registration order, which is
// also the order a full run executes them in.
type ScenarioRegistryImpl struct {
	scenarios map[string]output.ScenarioPort
	order     []string
}

func NewScenarioRegistry() *ScenarioRegistryImpl {
	return &ScenarioRegistryImpl{
		scenarios: make(map[string]output.ScenarioPort),
	}
}

// Register adds scenario, replacing any earlier one with the same name in
// place.
func (r *ScenarioRegistryImpl) Register(scenario output.ScenarioPort) {
	name := scenario.Name()
	if _, ok := r.scenarios[name]; !ok {
		r.order = append(r.order, name)
	}
	r.scenarios[name] = scenario
}

func (r *ScenarioRegistryImpl) Get(name string) (output.ScenarioPort, bool) {
	scenario, ok := r.scenarios[name]
	return scenario, ok
}

func (r *ScenarioRegistryImpl) All() []output.ScenarioPort {
	result := make([]output.ScenarioPort, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.scenarios[name])
	}
	return result
}

// Definitions lists name and description sorted by name.
func (r *ScenarioRegistryImpl) Definitions() []entity.ScenarioInfo {
	result := make([]entity.ScenarioInfo, 0, len(r.scenarios))
	for _, scenario := range r.scenarios {
		result = append(result, entity.ScenarioInfo{
			Name:        scenario.Name(),
			Description: scenario.Description(),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
