package handlers

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/imamik/volplan/internal/provisioning"
	"github.com/imamik/volplan/internal/provisioning/dryrun"
	ebsphase "github.com/imamik/volplan/internal/provisioning/ebs"
	lvmphase "github.com/imamik/volplan/internal/provisioning/lvm"
	"github.com/imamik/volplan/internal/ui/report"
)

// Plan prints the operations apply would run on a fresh host. Every
// collaborator is replaced by one simulated host shared by all plans.
func Plan(ctx context.Context, configPath string, plans []string, out io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	provider, err := newSecrets(cfg)
	if err != nil {
		return fmt.Errorf("failed to create secrets provider: %w", err)
	}

	host := dryrun.NewHost()
	applier := provisioning.NewApplier(newRegistry(cfg),
		ebsphase.NewPhase(provider, host),
		lvmphase.NewPhase(host, host),
	)
	observer := provisioning.NewConsoleObserverWithLogger(log.New(io.Discard, "", 0))
	pctx := newProvisioningContext(ctx, cfg, observer)

	sections, err := dryRun(pctx, applier, host, requestedPlans(cfg, plans))
	fmt.Fprint(out, report.New(isInteractive(out)).Plan(sections))
	return err
}

// dryRun applies names one at a time so every plan gets its own section.
func dryRun(pctx *provisioning.Context, applier *provisioning.Applier, host *dryrun.Host, names []string) ([]report.PlanSection, error) {
	var sections []report.PlanSection
	for _, name := range names {
		start := len(host.Calls)
		missing := len(pctx.State.Missing)

		err := applier.Apply(pctx, []string{name})
		sections = append(sections, report.PlanSection{
			Name:    name,
			Missing: len(pctx.State.Missing) > missing,
			Calls:   append([]dryrun.Call(nil), host.Calls[start:]...),
		})
		if err != nil {
			return sections, err
		}
	}
	return sections, nil
}
