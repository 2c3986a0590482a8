package config

import (
	"testing"
	"time"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	t.Setenv("VOLPLAN_TIMEOUT_EBS_AVAILABLE", "")
	t.Setenv("VOLPLAN_TIMEOUT_EBS_ATTACH", "")
	t.Setenv("VOLPLAN_RETRY_MAX_ATTEMPTS", "")
	t.Setenv("VOLPLAN_RETRY_INITIAL_DELAY", "")

	timeouts := LoadTimeouts()

	if timeouts.EBSAvailable != 5*time.Minute {
		t.Errorf("Expected EBSAvailable default 5m, got %v", timeouts.EBSAvailable)
	}
	if timeouts.EBSAttach != 5*time.Minute {
		t.Errorf("Expected EBSAttach default 5m, got %v", timeouts.EBSAttach)
	}
	if timeouts.RetryMaxAttempts != 30 {
		t.Errorf("Expected RetryMaxAttempts default 30, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.RetryInitialDelay != 2*time.Second {
		t.Errorf("Expected RetryInitialDelay default 2s, got %v", timeouts.RetryInitialDelay)
	}
}

func TestLoadTimeouts_Overrides(t *testing.T) {
	t.Setenv("VOLPLAN_TIMEOUT_EBS_AVAILABLE", "90s")
	t.Setenv("VOLPLAN_TIMEOUT_EBS_ATTACH", "2m")
	t.Setenv("VOLPLAN_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("VOLPLAN_RETRY_INITIAL_DELAY", "500ms")

	timeouts := LoadTimeouts()

	if timeouts.EBSAvailable != 90*time.Second {
		t.Errorf("Expected EBSAvailable 90s, got %v", timeouts.EBSAvailable)
	}
	if timeouts.EBSAttach != 2*time.Minute {
		t.Errorf("Expected EBSAttach 2m, got %v", timeouts.EBSAttach)
	}
	if timeouts.RetryMaxAttempts != 7 {
		t.Errorf("Expected RetryMaxAttempts 7, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.RetryInitialDelay != 500*time.Millisecond {
		t.Errorf("Expected RetryInitialDelay 500ms, got %v", timeouts.RetryInitialDelay)
	}
}

func TestLoadTimeouts_InvalidValues(t *testing.T) {
	t.Setenv("VOLPLAN_TIMEOUT_EBS_AVAILABLE", "soon")
	t.Setenv("VOLPLAN_TIMEOUT_EBS_ATTACH", "-1m")
	t.Setenv("VOLPLAN_RETRY_MAX_ATTEMPTS", "many")
	t.Setenv("VOLPLAN_RETRY_INITIAL_DELAY", "")

	timeouts := LoadTimeouts()

	if timeouts.EBSAvailable != 5*time.Minute {
		t.Errorf("Expected EBSAvailable fallback 5m, got %v", timeouts.EBSAvailable)
	}
	if timeouts.EBSAttach != 5*time.Minute {
		t.Errorf("Expected EBSAttach fallback 5m, got %v", timeouts.EBSAttach)
	}
	if timeouts.RetryMaxAttempts != 30 {
		t.Errorf("Expected RetryMaxAttempts fallback 30, got %d", timeouts.RetryMaxAttempts)
	}
}
