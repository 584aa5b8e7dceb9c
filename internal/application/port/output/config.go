package output

import "time"

type ConfigPort interface {
	Get(key string) string
	MustGet(key string) (string, error)
	GetWithDefault(key string, defaultValue string) string
	GetBool(key string, defaultValue bool) bool
	GetInt(key string, defaultValue int) int
	GetDuration(key string, defaultValue time.Duration) time.Duration
}
