package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the limits applied to cloud volume operations.
type Timeouts struct {
	EBSAvailable      time.Duration // Wait for a created volume to become available
	EBSAttach         time.Duration // Wait for an attachment to complete
	RetryMaxAttempts  int           // Maximum number of polls per wait
	RetryInitialDelay time.Duration // Initial delay between polls
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - VOLPLAN_TIMEOUT_EBS_AVAILABLE (default: 5m)
//   - VOLPLAN_TIMEOUT_EBS_ATTACH (default: 5m)
//   - VOLPLAN_RETRY_MAX_ATTEMPTS (default: 30)
//   - VOLPLAN_RETRY_INITIAL_DELAY (default: 2s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		EBSAvailable:      parseDuration("VOLPLAN_TIMEOUT_EBS_AVAILABLE", 5*time.Minute),
		EBSAttach:         parseDuration("VOLPLAN_TIMEOUT_EBS_ATTACH", 5*time.Minute),
		RetryMaxAttempts:  parseInt("VOLPLAN_RETRY_MAX_ATTEMPTS", 30),
		RetryInitialDelay: parseDuration("VOLPLAN_RETRY_INITIAL_DELAY", 2*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
