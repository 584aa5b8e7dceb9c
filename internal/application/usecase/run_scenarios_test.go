package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-e2e/internal/application/service"
	"storefront-e2e/internal/domain/entity"
	"storefront-e2e/internal/infrastructure/browser/static"
	"storefront-e2e/internal/infrastructure/logger"
)

type stubScenario struct {
	name  string
	fails int
	calls int
}

func (s *stubScenario) Name() string        { return s.name }
func (s *stubScenario) Description() string { return "stub " + s.name }

func (s *stubScenario) Run(ctx context.Context) error {
	s.calls++
	if s.calls <= s.fails {
		return errors.New("flaky")
	}
	return nil
}

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) ShowRunStart(ctx context.Context, runID string, scenarios int) {
	r.events = append(r.events, fmt.Sprintf("start %d", scenarios))
}

func (r *recordingReporter) ShowAttempt(ctx context.Context, scenario string, attempt, maxAttempts int) {
	r.events = append(r.events, fmt.Sprintf("attempt %s %d/%d", scenario, attempt, maxAttempts))
}

func (r *recordingReporter) ShowResult(ctx context.Context, result entity.ScenarioResult) {
	r.events = append(r.events, fmt.Sprintf("result %s %s", result.Name, result.Status))
}

func (r *recordingReporter) ShowSummary(ctx context.Context, results []entity.ScenarioResult) {
	r.events = append(r.events, fmt.Sprintf("summary %d", len(results)))
}

func newRunner(t *testing.T, cfg RunScenariosConfig, scenarios ...*stubScenario) *RunScenariosUseCase {
	uc, _ := newRecordedRunner(t, cfg, scenarios...)
	return uc
}

func newRecordedRunner(t *testing.T, cfg RunScenariosConfig, scenarios ...*stubScenario) (*RunScenariosUseCase, *recordingReporter) {
	t.Helper()
	reg := service.NewScenarioRegistry()
	for _, sc := range scenarios {
		reg.Register(sc)
	}
	d := static.New()
	require.NoError(t, d.SetHTML("<html><body><p>state</p></body></html>"))
	rep := &recordingReporter{}
	return NewRunScenariosUseCase(reg, d, rep, logger.NewNop(), cfg), rep
}

func TestRunScenarios_AllInOrder(t *testing.T) {
	a, b := &stubScenario{name: "b-first"}, &stubScenario{name: "a-second"}
	uc := newRunner(t, RunScenariosConfig{}, a, b)

	results, err := uc.Run(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "b-first", results[0].Name)
	assert.Equal(t, "a-second", results[1].Name)
	assert.Equal(t, results[0].RunID, results[1].RunID)
	_, err = uuid.Parse(results[0].RunID)
	assert.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, entity.ScenarioStatusPassed, r.Status)
		assert.Equal(t, 1, r.Attempts)
	}
}

func TestRunScenarios_Selected(t *testing.T) {
	a, b := &stubScenario{name: "a"}, &stubScenario{name: "b"}
	uc := newRunner(t, RunScenariosConfig{}, a, b)

	results, err := uc.Run(context.Background(), []string{"b"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Name)
	assert.Zero(t, a.calls)
}

func TestRunScenarios_UnknownNameRunsNothing(t *testing.T) {
	a := &stubScenario{name: "a"}
	uc := newRunner(t, RunScenariosConfig{}, a)

	_, err := uc.Run(context.Background(), []string{"a", "missing"})
	assert.ErrorIs(t, err, ErrUnknownScenario)
	assert.Zero(t, a.calls)
}

func TestRunScenarios_RetriesFlaky(t *testing.T) {
	flaky := &stubScenario{name: "flaky", fails: 2}
	uc := newRunner(t, RunScenariosConfig{Retries: 2, RetryDelay: time.Millisecond}, flaky)

	results, err := uc.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.ScenarioStatusPassed, results[0].Status)
	assert.Equal(t, 3, results[0].Attempts)
}

func TestRunScenarios_ReportsProgress(t *testing.T) {
	flaky := &stubScenario{name: "flaky", fails: 1}
	ok := &stubScenario{name: "ok"}
	uc, rep := newRecordedRunner(t, RunScenariosConfig{Retries: 1, RetryDelay: time.Millisecond}, flaky, ok)

	_, err := uc.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"start 2",
		"attempt flaky 1/2",
		"attempt flaky 2/2",
		"result flaky passed",
		"attempt ok 1/2",
		"result ok passed",
		"summary 2",
	}, rep.events)
}

func TestRunScenarios_FailureCapturesPage(t *testing.T) {
	dir := t.TempDir()
	broken := &stubScenario{name: "broken", fails: 10}
	ok := &stubScenario{name: "ok"}
	uc := newRunner(t, RunScenariosConfig{Retries: 1, RetryDelay: time.Millisecond, ScreenshotDir: dir}, broken, ok)

	results, err := uc.Run(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	failed := results[0]
	assert.Equal(t, entity.ScenarioStatusFailed, failed.Status)
	assert.Equal(t, 2, failed.Attempts)
	assert.Equal(t, "flaky", failed.Error)
	require.NotEmpty(t, failed.Screenshot)
	assert.Contains(t, failed.Screenshot, failed.RunID+"_broken.html")

	data, err := os.ReadFile(failed.Screenshot)
	require.NoError(t, err)
	assert.Contains(t, string(data), "state")

	assert.Equal(t, entity.ScenarioStatusPassed, results[1].Status)
}

func TestRunScenarios_NoScreenshotDir(t *testing.T) {
	broken := &stubScenario{name: "broken", fails: 1}
	uc := newRunner(t, RunScenariosConfig{}, broken)

	results, err := uc.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.ScenarioStatusFailed, results[0].Status)
	assert.Empty(t, results[0].Screenshot)
}

func TestRunScenarios_Cancelled(t *testing.T) {
	a := &stubScenario{name: "a"}
	uc := newRunner(t, RunScenariosConfig{}, a)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := uc.Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Zero(t, a.calls)
}

func TestRunScenarios_List(t *testing.T) {
	uc := newRunner(t, RunScenariosConfig{}, &stubScenario{name: "zeta"}, &stubScenario{name: "alpha"})

	assert.Equal(t, []entity.ScenarioInfo{
		{Name: "alpha", Description: "stub alpha"},
		{Name: "zeta", Description: "stub zeta"},
	}, uc.List())
}

func TestRunScenarios_WritesResultsFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	broken := &stubScenario{name: "broken", fails: 10}
	ok := &stubScenario{name: "ok"}
	uc := newRunner(t, RunScenariosConfig{ResultsDir: dir}, broken, ok)

	results, err := uc.Run(context.Background(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "results.json"))
	require.NoError(t, err)

	var report struct {
		RunID   string `json:"run_id"`
		Passed  int    `json:"passed"`
		Failed  int    `json:"failed"`
		Results []struct {
			Name     string `json:"name"`
			Status   string `json:"status"`
			Attempts int    `json:"attempts"`
			Error    string `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, results[0].RunID, report.RunID)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "broken", report.Results[0].Name)
	assert.Equal(t, "failed", report.Results[0].Status)
	assert.Equal(t, "flaky", report.Results[0].Error)
	assert.Equal(t, "passed", report.Results[1].Status)
}

func TestRunScenarios_ResultsWriteFailureKeepsRun(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	uc := newRunner(t, RunScenariosConfig{ResultsDir: filepath.Join(blocker, "results")}, &stubScenario{name: "ok"})

	results, err := uc.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.ScenarioStatusPassed, results[0].Status)
}

func TestRunScenarios_CancelledStillWritesResults(t *testing.T) {
	dir := t.TempDir()
	uc := newRunner(t, RunScenariosConfig{ResultsDir: dir}, &stubScenario{name: "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := uc.Run(ctx, nil)
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "results.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"results": []`)
}
