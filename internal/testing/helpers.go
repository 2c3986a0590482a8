package testing

import (
	"context"
	"testing"
	"time"

	"github.com/imamik/volplan/internal/config"
	"github.com/imamik/volplan/internal/plan"
	"github.com/imamik/volplan/internal/provisioning"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// NewProvisioningContext returns a provisioning context scoped to p with
// default configuration. A nil plan leaves the context unscoped.
func NewProvisioningContext(t *testing.T, p *plan.VolumePlan, obs provisioning.Observer) *provisioning.Context {
	t.Helper()
	ctx := provisioning.NewContext(TestContext(t), config.Default(), obs)
	if p == nil {
		return ctx
	}
	return ctx.ForPlan(p)
}
