package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable polling and retry bounds.
// These values can be customized via environment variables.
type Timeouts struct {
	PollInterval       time.Duration // Interval between cluster status polls
	PollMaxAttempts    int           // Maximum status polls before the deployment times out
	PollMaxFailures    int           // Consecutive failed polls tolerated before surfacing a polling error
	CreateMaxAttempts  int           // Attempts for cluster creation during the IAM propagation window
	CreateInitialDelay time.Duration // Initial backoff delay for cluster creation retries
}

// LoadTimeouts loads polling and retry bounds from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - EKSDEPLOY_POLL_INTERVAL (default: 15s)
//   - EKSDEPLOY_POLL_MAX_ATTEMPTS (default: 30)
//   - EKSDEPLOY_POLL_MAX_FAILURES (default: 3)
//   - EKSDEPLOY_CREATE_MAX_ATTEMPTS (default: 4)
//   - EKSDEPLOY_CREATE_INITIAL_DELAY (default: 5s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		PollInterval:       parseDuration("EKSDEPLOY_POLL_INTERVAL", 15*time.Second),
		PollMaxAttempts:    parseInt("EKSDEPLOY_POLL_MAX_ATTEMPTS", 30),
		PollMaxFailures:    parseInt("EKSDEPLOY_POLL_MAX_FAILURES", 3),
		CreateMaxAttempts:  parseInt("EKSDEPLOY_CREATE_MAX_ATTEMPTS", 4),
		CreateInitialDelay: parseDuration("EKSDEPLOY_CREATE_INITIAL_DELAY", 5*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
