package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"storefront-e2e/internal/application/port/input"
	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/usecase/wait"
)

var _ input.ScenarioRunner = (*RunScenariosUseCase)(nil)

var ErrUnknownScenario = errors.New("unknown scenario")

type RunScenariosUseCase struct {
	scenarios     output.ScenarioRegistry
	browser       output.BrowserPort
	reporter      output.ReporterPort
	logger        output.LoggerPort
	retries       int
	retryDelay    time.Duration
	screenshotDir string
	resultsDir    string
}

type RunScenariosConfig struct {
	// Retries is how many times a failed scenario is re-run.
	Retries    int
	RetryDelay time.Duration
	// ScreenshotDir receives a capture of the page for every failed
	// scenario. Empty disables captures.
	ScreenshotDir string
	// ResultsDir receives results.json after every run. Empty disables it.
	ResultsDir string
}

func DefaultRunScenariosConfig() RunScenariosConfig {
	return RunScenariosConfig{
		Retries:       0,
		RetryDelay:    time.Second,
		ScreenshotDir: "screenshots",
		ResultsDir:    "test-results",
	}
}

func NewRunScenariosUseCase(
	scenarios output.ScenarioRegistry,
	browser output.BrowserPort,
	reporter output.ReporterPort,
	logger output.LoggerPort,
	cfg RunScenariosConfig,
) *RunScenariosUseCase {
	return &RunScenariosUseCase{
		scenarios:     scenarios,
		browser:       browser,
		reporter:      reporter,
		logger:        logger,
		retries:       cfg.Retries,
		retryDelay:    cfg.RetryDelay,
		screenshotDir: cfg.ScreenshotDir,
		resultsDir:    cfg.ResultsDir,
	}
}

func (uc *RunScenariosUseCase) List() []entity.ScenarioInfo {
	return uc.scenarios.Definitions()
}

// Run executes the named scenarios in order on the shared browser session.
// Unknown names are rejected before anything runs.
func (uc *RunScenariosUseCase) Run(ctx context.Context, names []string) ([]entity.ScenarioResult, error) {
	selected, err := uc.resolve(names)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	started := time.Now()
	log := uc.logger.WithField("run", runID)
	log.Info("Starting run", "scenarios", len(selected), "retries", uc.retries)
	uc.reporter.ShowRunStart(ctx, runID, len(selected))

	results := make([]entity.ScenarioResult, 0, len(selected))
	for _, sc := range selected {
		if err := ctx.Err(); err != nil {
			uc.save(log, runID, started, results)
			return results, fmt.Errorf("run %s interrupted: %w", runID, err)
		}
		result := uc.runOne(ctx, log, runID, sc)
		uc.reporter.ShowResult(ctx, result)
		results = append(results, result)
	}

	passed := 0
	for _, r := range results {
		if r.Status == entity.ScenarioStatusPassed {
			passed++
		}
	}
	log.Info("Run finished", "passed", passed, "failed", len(results)-passed)
	uc.save(log, runID, started, results)
	uc.reporter.ShowSummary(ctx, results)
	return results, nil
}

type runReport struct {
	RunID   string         `json:"run_id"`
	Started time.Time      `json:"started"`
	Passed  int            `json:"passed"`
	Failed  int            `json:"failed"`
	Results []resultRecord `json:"results"`
}

type resultRecord struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Attempts   int    `json:"attempts"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
}

// save writes results.json. A write failure is logged and does not fail
// the run.
func (uc *RunScenariosUseCase) save(log output.LoggerPort, runID string, started time.Time, results []entity.ScenarioResult) {
	if uc.resultsDir == "" {
		return
	}
	path, err := writeResults(uc.resultsDir, runID, started, results)
	if err != nil {
		log.Warn("Failed to write results", "error", err)
		return
	}
	log.Info("Results written", "path", path)
}

func writeResults(dir, runID string, started time.Time, results []entity.ScenarioResult) (string, error) {
	report := runReport{RunID: runID, Started: started.UTC(), Results: make([]resultRecord, 0, len(results))}
	for _, r := range results {
		if r.Status == entity.ScenarioStatusPassed {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, resultRecord{
			Name:       r.Name,
			Status:     string(r.Status),
			Attempts:   r.Attempts,
			DurationMS: r.Duration.Milliseconds(),
			Error:      r.Error,
			Screenshot: r.Screenshot,
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	path := filepath.Join(dir, "results.json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}
	return path, nil
}

func (uc *RunScenariosUseCase) resolve(names []string) ([]output.ScenarioPort, error) {
	if len(names) == 0 {
		return uc.scenarios.All(), nil
	}
	selected := make([]output.ScenarioPort, 0, len(names))
	for _, name := range names {
		sc, ok := uc.scenarios.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
		}
		selected = append(selected, sc)
	}
	return selected, nil
}

func (uc *RunScenariosUseCase) runOne(ctx context.Context, log output.LoggerPort, runID string, sc output.ScenarioPort) entity.ScenarioResult {
	log = log.WithField("scenario", sc.Name())
	result := entity.ScenarioResult{RunID: runID, Name: sc.Name()}

	start := time.Now()
	err := wait.RetryWithBackoff(ctx, func(ctx context.Context) error {
		result.Attempts++
		log.Info("Running scenario", "attempt", result.Attempts)
		uc.reporter.ShowAttempt(ctx, sc.Name(), result.Attempts, max(uc.retries, 0)+1)
		err := sc.Run(ctx)
		if err != nil {
			log.Warn("Scenario attempt failed", "attempt", result.Attempts, "error", err)
		}
		return err
	}, uc.retries, uc.retryDelay)
	result.Duration = time.Since(start)

	if err == nil {
		result.Status = entity.ScenarioStatusPassed
		log.Info("Scenario passed", "attempts", result.Attempts, "duration", result.Duration)
		return result
	}

	result.Status = entity.ScenarioStatusFailed
	result.Error = err.Error()
	log.Error("Scenario failed", "attempts", result.Attempts, "error", err)

	path, shotErr := uc.capture(ctx, runID, sc.Name())
	if shotErr != nil {
		log.Warn("Failed to capture screenshot", "error", shotErr)
	}
	result.Screenshot = path
	return result
}

func (uc *RunScenariosUseCase) capture(ctx context.Context, runID, name string) (string, error) {
	if uc.screenshotDir == "" {
		return "", nil
	}
	shot, err := uc.browser.Screenshot(context.WithoutCancel(ctx))
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	if err := os.MkdirAll(uc.screenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	path := filepath.Join(uc.screenshotDir, fmt.Sprintf("%s_%s.%s", runID, name, shot.Format))
	if err := os.WriteFile(path, shot.Data, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}
