package provisioning

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision applies this phase to ctx.Plan.
	Provision(ctx *Context) error
}

// Logger is the printf-style subset of Observer.
type Logger interface {
	Printf(format string, v ...interface{})
}
