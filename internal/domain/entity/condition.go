package entity

type Condition string

const (
	ConditionVisible      Condition = "visible"
	ConditionHidden       Condition = "hidden"
	ConditionAttached     Condition = "attached"
	ConditionDetached     Condition = "detached"
	ConditionEnabled      Condition = "enabled"
	ConditionTextContains Condition = "text-contains"
	ConditionURLMatches   Condition = "url-matches"
	ConditionNetworkIdle  Condition = "network-idle"
)

func (c Condition) String() string {
	return string(c)
}

// Check is one declarative readiness requirement. Text is the expected
// substring for ConditionTextContains and the URL fragment for
// ConditionURLMatches; other conditions ignore it.
type Check struct {
	Selector  string
	Condition Condition
	Text      string
}

type LoadState string

const (
	LoadStateDOMContentLoaded LoadState = "domcontentloaded"
	LoadStateLoad             LoadState = "load"
	LoadStateNetworkIdle      LoadState = "networkidle"
)

type SelectBy string

const (
	SelectByValue SelectBy = "value"
	SelectByLabel SelectBy = "label"
)
