package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"storefront-e2e/internal/application/port/output"
	"storefront-e2e/internal/domain/entity"
)

var _ output.ReporterPort = (*Reporter)(nil)

const maxErrorLen = 300

type Reporter struct {
	out io.Writer
}

func NewReporter() *Reporter {
	return &Reporter{out: color.Output}
}

// NewReporterTo writes to w. Colors still follow color.NoColor.
func NewReporterTo(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{out: w}
}

func (r *Reporter) ShowRunStart(ctx context.Context, runID string, scenarios int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(r.out, "\n━━━ Run %s: %d scenario(s) ━━━\n", runID, scenarios)
}

func (r *Reporter) ShowAttempt(ctx context.Context, scenario string, attempt, maxAttempts int) {
	yellow := color.New(color.FgYellow, color.Bold)
	if attempt == 1 {
		yellow.Fprintf(r.out, "\n▶ %s\n", scenario)
		return
	}
	dim := color.New(color.Faint)
	dim.Fprintf(r.out, "   retry %d/%d\n", attempt-1, maxAttempts-1)
}

func (r *Reporter) ShowResult(ctx context.Context, result entity.ScenarioResult) {
	took := result.Duration.Round(time.Millisecond)
	if result.Status == entity.ScenarioStatusPassed {
		green := color.New(color.FgGreen)
		green.Fprintf(r.out, "✓ passed in %s%s\n", took, attemptsNote(result.Attempts))
		return
	}

	red := color.New(color.FgRed)
	red.Fprintf(r.out, "✗ failed in %s%s: ", took, attemptsNote(result.Attempts))
	dim := color.New(color.Faint)
	dim.Fprintln(r.out, truncate(result.Error, maxErrorLen))
	if result.Screenshot != "" {
		dim.Fprintf(r.out, "   screenshot: %s\n", result.Screenshot)
	}
}

func (r *Reporter) ShowSummary(ctx context.Context, results []entity.ScenarioResult) {
	var failed []string
	for _, res := range results {
		if res.Status != entity.ScenarioStatusPassed {
			failed = append(failed, res.Name)
		}
	}

	bold := color.New(color.Bold)
	bold.Fprintf(r.out, "\n%d passed, %d failed\n", len(results)-len(failed), len(failed))
	if len(failed) > 0 {
		red := color.New(color.FgRed)
		red.Fprintf(r.out, "failed: %s\n", strings.Join(failed, ", "))
	}
}

// List prints the registered scenarios, one per line.
func (r *Reporter) List(scenarios []entity.ScenarioInfo) {
	width := 0
	for _, s := range scenarios {
		width = max(width, len(s.Name))
	}
	name := color.New(color.FgCyan)
	for _, s := range scenarios {
		name.Fprintf(r.out, "%-*s", width, s.Name)
		fmt.Fprintf(r.out, "  %s\n", s.Description)
	}
}

func attemptsNote(attempts int) string {
	if attempts <= 1 {
		return ""
	}
	return fmt.Sprintf(" after %d attempts", attempts)
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
