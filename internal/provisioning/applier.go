package provisioning

import (
	"fmt"
	"time"

	"github.com/imamik/volplan/internal/plan"
)

// Applier resolves requested plan names and applies each registered plan.
type Applier struct {
	registry plan.Registry
	phases   []Phase
}

// NewApplier creates an applier running phases, in order, for every plan.
func NewApplier(registry plan.Registry, phases ...Phase) *Applier {
	return &Applier{registry: registry, phases: phases}
}

// Apply applies the named plans in order. Names that are not registered
// are reported and skipped. Any phase error stops the run.
func (a *Applier) Apply(ctx *Context, names []string) error {
	start := time.Now()
	defer func() { recordApplyDuration(time.Since(start)) }()

	known, err := a.registry.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list volume plans: %w", err)
	}
	registered := make(map[string]bool, len(known))
	for _, name := range known {
		registered[name] = true
	}

	for _, name := range names {
		if !registered[name] {
			LogPlanMissing(ctx.Observer, name)
			recordPlan(PlanMissing)
			ctx.State.Missing = append(ctx.State.Missing, name)
			continue
		}

		p, err := a.registry.Get(ctx, name)
		if err != nil {
			recordPlan(PlanFailed)
			return fmt.Errorf("failed to load volume plan %s: %w", name, err)
		}

		LogPlanApplying(ctx.Observer, name)
		if err := RunPhases(ctx.ForPlan(p), a.phases); err != nil {
			recordPlan(PlanFailed)
			return fmt.Errorf("volume plan %s: %w", name, err)
		}
		recordPlan(PlanApplied)
		ctx.State.Applied = append(ctx.State.Applied, name)
	}
	return nil
}
