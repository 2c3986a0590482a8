package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/imamik/volplan/internal/ui/report"
)

// PlansList prints the names of all registered volume plans.
func PlansList(ctx context.Context, configPath string, out io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	names, err := newRegistry(cfg).List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list volume plans: %w", err)
	}
	if len(names) == 0 {
		fmt.Fprintf(out, "No volume plans registered in %s\n", cfg.Registry.Dir)
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

// PlansShow prints the layout of one registered volume plan.
func PlansShow(ctx context.Context, configPath, name string, out io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	p, err := newRegistry(cfg).Get(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprint(out, report.New(isInteractive(out)).VolumePlan(p))
	return nil
}
