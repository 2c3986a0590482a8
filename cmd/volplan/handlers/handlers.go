// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/imamik/volplan/internal/config"
	"github.com/imamik/volplan/internal/plan"
	platformebs "github.com/imamik/volplan/internal/platform/ebs"
	"github.com/imamik/volplan/internal/platform/filesystem"
	platformlvm "github.com/imamik/volplan/internal/platform/lvm"
	"github.com/imamik/volplan/internal/platform/secrets"
	"github.com/imamik/volplan/internal/provisioning"
	ebsphase "github.com/imamik/volplan/internal/provisioning/ebs"
	lvmphase "github.com/imamik/volplan/internal/provisioning/lvm"
	"github.com/imamik/volplan/internal/ui/report"
	"github.com/imamik/volplan/internal/util/prerequisites"
)

// Log formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default config file (for testing injection).
	findConfigFile = config.FindConfigFile

	// newRegistry creates the plan registry.
	newRegistry = func(cfg *config.Config) plan.Registry {
		return plan.NewDirRegistry(cfg.Registry.Dir)
	}

	// newSecrets creates the secrets provider for the configured backend.
	newSecrets = newSecretsProvider

	// newVolumeManager creates the LVM volume manager.
	newVolumeManager = func(cfg *config.Config) lvmphase.VolumeManager {
		return platformlvm.NewClient(platformlvm.WithBinary(cfg.LVM.Binary))
	}

	// newFilesystem creates the filesystem manager.
	newFilesystem = func(cfg *config.Config) lvmphase.FilesystemManager {
		return filesystem.NewManager(filesystem.WithFstab(cfg.Filesystem.Fstab))
	}

	// newCloudVolumes creates the EBS collaborator.
	newCloudVolumes = func(cfg *config.Config, timeouts *config.Timeouts) ebsphase.CloudVolumes {
		return platformebs.NewClient(cfg.AWS, timeouts)
	}

	// newProvisioningContext creates the run context.
	newProvisioningContext = provisioning.NewContext

	// checkPrereqs runs the host tool checks.
	checkPrereqs = func(lvmBinary string) *prerequisites.CheckResults {
		return prerequisites.Check(nil, prerequisites.DefaultTools(lvmBinary))
	}

	// checkAllPrereqs runs the required and optional host tool checks.
	checkAllPrereqs = func(lvmBinary string) *prerequisites.CheckResults {
		return prerequisites.CheckAll(nil, lvmBinary)
	}

	// writeMetrics writes the metrics textfile.
	writeMetrics = provisioning.WriteMetricsTextfile

	// isInteractive reports whether output is going to a terminal.
	isInteractive = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && report.IsInteractive(f)
	}

	// stderr receives log output.
	stderr io.Writer = os.Stderr
)

// loadConfig loads the configuration from configPath, falling back to
// volplan.yaml in the working directory and then to the defaults.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		found, err := findConfigFile()
		if err != nil {
			return config.Default(), nil
		}
		configPath = found
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// requestedPlans returns the plan names to apply: flags win over the
// configuration.
func requestedPlans(cfg *config.Config, flagPlans []string) []string {
	if len(flagPlans) > 0 {
		return flagPlans
	}
	return cfg.Volumes.Plans
}

// newSecretsProvider builds the provider selected by secrets.backend.
func newSecretsProvider(cfg *config.Config) (secrets.Provider, error) {
	switch cfg.Secrets.Backend {
	case config.SecretsBackendEnv:
		return secrets.NewEnvProvider(""), nil
	case config.SecretsBackendVault:
		token := os.Getenv(cfg.Secrets.Vault.TokenEnv)
		return secrets.NewVaultProvider(cfg.Secrets.Vault.Address, cfg.Secrets.Vault.Mount, token)
	case config.SecretsBackendFile:
		return secrets.NewFileProvider(cfg.Secrets.File), nil
	default:
		return nil, fmt.Errorf("unknown secrets backend %q", cfg.Secrets.Backend)
	}
}

// newObserver returns the observer for format.
func newObserver(format string, w io.Writer) (provisioning.Observer, error) {
	switch format {
	case "", LogFormatText:
		return provisioning.NewConsoleObserverWithLogger(newLogger(w)), nil
	case LogFormatJSON:
		return provisioning.NewJSONObserver(w), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, LogFormatText, LogFormatJSON)
	}
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "", log.LstdFlags)
}

// newApplier wires the EBS and LVM phases.
func newApplier(cfg *config.Config, timeouts *config.Timeouts, provider secrets.Provider, registry plan.Registry) *provisioning.Applier {
	return provisioning.NewApplier(registry,
		ebsphase.NewPhase(provider, newCloudVolumes(cfg, timeouts)),
		lvmphase.NewPhase(newVolumeManager(cfg), newFilesystem(cfg)),
	)
}

// finishRun writes the metrics textfile when configured. A write failure
// only fails the run when the run itself succeeded.
func finishRun(cfg *config.Config, runErr error) error {
	if cfg.Metrics.Textfile == "" {
		return runErr
	}
	if err := writeMetrics(cfg.Metrics.Textfile); err != nil {
		return errors.Join(runErr, fmt.Errorf("failed to write metrics: %w", err))
	}
	return runErr
}
