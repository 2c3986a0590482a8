// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - PlanBuilder: Fluent builder for creating volume plans
//   - DBTierPlan: The single group, single volume plan used across scenario tests
//   - RecordingObserver: Observer that keeps every event for assertions
//   - MockVolumeManager, MockFilesystemManager, MockCloudVolumes, MockSecrets: testify mocks
//
// Usage:
//
//	p := testing.NewPlanBuilder("db-tier").
//	    WithGroup("data", "/dev/sdb").
//	    WithVolume("logs", "100%FREE", "/mnt/logs").
//	    Build()
//
//	obs := testing.NewRecordingObserver()
//	ctx := testing.NewProvisioningContext(t, p, obs)
package testing
