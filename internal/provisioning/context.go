package provisioning

import (
	"context"

	"github.com/imamik/volplan/internal/config"
	"github.com/imamik/volplan/internal/plan"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Observer Observer
	Timeouts *config.Timeouts

	// Plan is the plan being applied. It is set by ForPlan.
	Plan *plan.VolumePlan
}

// NewContext creates a new provisioning context. A nil observer logs to the
// console.
func NewContext(ctx context.Context, cfg *config.Config, observer Observer) *Context {
	if observer == nil {
		observer = NewConsoleObserver()
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Observer: observer,
		Timeouts: config.LoadTimeouts(),
	}
}

// ForPlan returns a copy of the context scoped to p. The state is shared.
func (c *Context) ForPlan(p *plan.VolumePlan) *Context {
	scoped := *c
	scoped.Plan = p
	scoped.Observer = c.Observer.WithFields(map[string]string{"plan": p.ID})
	return &scoped
}
