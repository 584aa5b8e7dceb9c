package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"storefront-e2e/internal/application/port/output"
)

var _ output.ConfigPort = (*EnvService)(nil)

var ErrMissing = errors.New("environment variable is not set")

type EnvService struct {
	AppEnv string
	// Loaded lists the dotenv files that were found and applied.
	Loaded []string
}

// NewEnvService loads .env and then .env.<APP_ENV> from dir, the second
// overriding the first. Missing files are fine; CI sets real variables.
func NewEnvService(dir string) *EnvService {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}
	s := &EnvService{AppEnv: appEnv}

	base := join(dir, ".env")
	if err := godotenv.Load(base); err == nil {
		s.Loaded = append(s.Loaded, base)
	}

	envFile := join(dir, fmt.Sprintf(".env.%s", appEnv))
	if err := godotenv.Overload(envFile); err == nil {
		s.Loaded = append(s.Loaded, envFile)
	}
	return s
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + string(os.PathSeparator) + name
}

func (e *EnvService) Get(key string) string {
	return os.Getenv(key)
}

func (e *EnvService) MustGet(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%w: %s", ErrMissing, key)
	}
	return val, nil
}

func (e *EnvService) GetWithDefault(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDuration reads a whole number of milliseconds, or a Go duration
// string such as "1.5s".
func (e *EnvService) GetDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	return defaultValue
}
