package entity

import "time"

type ScenarioStatus string

const (
	ScenarioStatusPassed ScenarioStatus = "passed"
	ScenarioStatusFailed ScenarioStatus = "failed"
)

type ScenarioResult struct {
	RunID      string
	Name       string
	Status     ScenarioStatus
	Attempts   int
	Duration   time.Duration
	Error      string
	Screenshot string
}

type ScenarioInfo struct {
	Name        string
	Description string
}
