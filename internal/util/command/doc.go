// Package command runs host binaries through k8s.io/utils/exec and reports
// failures as structured errors carrying the exit code and stderr.
package command
