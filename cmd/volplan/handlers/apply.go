package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/volplan/internal/config"
)

// Apply applies the requested volume plans to this node.
//
// This function orchestrates one run:
//  1. Loads configuration and resolves the plan names (--plan wins over volumes.plans)
//  2. Checks that lvm, mkfs and mount are installed
//  3. Runs the EBS and LVM phases for every registered plan, in request order
//  4. Writes the metrics textfile when metrics.textfile is set
//
// Missing plans are logged and skipped. Any other failure stops the run.
func Apply(ctx context.Context, configPath string, plans []string, logFormat string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	observer, err := newObserver(logFormat, stderr)
	if err != nil {
		return err
	}

	names := requestedPlans(cfg, plans)
	if len(names) == 0 {
		observer.Printf("No volume plans requested")
		return nil
	}

	if err := checkPrerequisites(cfg); err != nil {
		return err
	}

	provider, err := newSecrets(cfg)
	if err != nil {
		return fmt.Errorf("failed to create secrets provider: %w", err)
	}

	pctx := newProvisioningContext(ctx, cfg, observer)
	applier := newApplier(cfg, pctx.Timeouts, provider, newRegistry(cfg))

	runErr := applier.Apply(pctx, names)
	if runErr == nil {
		observer.Printf("Applied %d volume plan(s): %s", len(pctx.State.Applied), strings.Join(pctx.State.Applied, ", "))
	}
	return finishRun(cfg, runErr)
}

// checkPrerequisites fails when a required host tool is missing.
func checkPrerequisites(cfg *config.Config) error {
	results := checkPrereqs(cfg.LVM.Binary)
	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}
	return nil
}
