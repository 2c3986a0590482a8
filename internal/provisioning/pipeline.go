package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes all provisioning phases sequentially against ctx.Plan.
func RunPhases(ctx *Context, phases []Phase) error {
	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return err
		}

		phaseStart := time.Now()
		LogPhaseStart(ctx.Observer, phase.Name())

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(phaseStart))
	}
	return nil
}
