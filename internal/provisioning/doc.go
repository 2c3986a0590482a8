// Package provisioning provides shared types, interfaces, and orchestration for applying volume plans.
//
// # Subpackages
//
//   - ebs/ — EBS volume creation and credential resolution
//   - lvm/ — Physical volumes, volume groups, logical volumes, filesystems and mounts
//   - dryrun/ — Simulated host used by `volplan plan` and scenario tests
//
// # Core Types
//
// Context carries configuration, run state, the plan being applied, and the observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// Applier resolves requested plan names against a registry and runs the phases for each plan.
// State holds run-scoped namespaces shared by every plan of one invocation.
package provisioning
