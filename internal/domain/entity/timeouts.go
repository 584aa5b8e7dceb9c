package entity

import "time"

// Timeouts is the per-category default budget table shared by every wait.
type Timeouts struct {
	Default     time.Duration `yaml:"default"`
	Short       time.Duration `yaml:"short"`
	Medium      time.Duration `yaml:"medium"`
	Long        time.Duration `yaml:"long"`
	ElementLoad time.Duration `yaml:"element_load"`
	PageLoad    time.Duration `yaml:"page_load"`
	Poll        time.Duration `yaml:"poll"`
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Default:     30 * time.Second,
		Short:       5 * time.Second,
		Medium:      10 * time.Second,
		Long:        60 * time.Second,
		ElementLoad: 5 * time.Second,
		PageLoad:    30 * time.Second,
		Poll:        100 * time.Millisecond,
	}
}

// For returns the default budget for a condition category: element
// probes get ElementLoad, navigation and load milestones get PageLoad.
func (t Timeouts) For(c Condition) time.Duration {
	switch c {
	case ConditionURLMatches, ConditionNetworkIdle:
		return t.PageLoad
	case "":
		return t.Default
	default:
		return t.ElementLoad
	}
}

// Resolve returns d, or the category default when d is zero or negative.
func (t Timeouts) Resolve(c Condition, d time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return t.For(c)
}

// WithDefaults fills zero fields from DefaultTimeouts.
func (t Timeouts) WithDefaults() Timeouts {
	def := DefaultTimeouts()
	fill := func(v *time.Duration, d time.Duration) {
		if *v <= 0 {
			*v = d
		}
	}
	fill(&t.Default, def.Default)
	fill(&t.Short, def.Short)
	fill(&t.Medium, def.Medium)
	fill(&t.Long, def.Long)
	fill(&t.ElementLoad, def.ElementLoad)
	fill(&t.PageLoad, def.PageLoad)
	fill(&t.Poll, def.Poll)
	return t
}
