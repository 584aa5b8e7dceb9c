package output

import (
	"context"

	"storefront-e2e/internal/domain/entity"
)

// ReporterPort shows run progress to whoever started the run.
type ReporterPort interface {
	ShowRunStart(ctx context.Context, runID string, scenarios int)
	ShowAttempt(ctx context.Context, scenario string, attempt, maxAttempts int)
	ShowResult(ctx context.Context, result entity.ScenarioResult)
	ShowSummary(ctx context.Context, results []entity.ScenarioResult)
}
