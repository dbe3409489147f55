package agent

import (
	"context"
	"fmt"

	"github.com/codefionn/wayfinder/internal/logger"
)

// Executor resolves invocations against a registry and normalizes success
// and failure into the one Outcome shape. It never returns an error: a
// missing tool, a handler error and a handler panic all become
// Outcome.Error strings the model can reason about.
type Executor struct {
	registry *Registry
	log      *logger.Logger
}

// NewExecutor creates an executor over the given registry.
func NewExecutor(registry *Registry, log *logger.Logger) *Executor {
	if log == nil {
		log = logger.Global()
	}
	return &Executor{registry: registry, log: log}
}

// Execute runs a single invocation.
func (e *Executor) Execute(ctx context.Context, inv Invocation) Outcome {
	d, err := e.registry.Resolve(inv.Name)
	if err != nil {
		e.log.Warn("tool %q not found", inv.Name)
		msg := fmt.Sprintf("Unknown tool: %s", inv.Name)
		return Outcome{Name: inv.Name, Error: &msg}
	}

	value, err := e.invoke(ctx, d, inv.Args)
	if err != nil {
		e.log.Debug("tool %q failed: %v", inv.Name, err)
		msg := err.Error()
		return Outcome{Name: inv.Name, Error: &msg}
	}

	return Outcome{Name: inv.Name, Value: value}
}

// invoke calls the handler, converting a panic into an ordinary error so a
// misbehaving tool cannot take down the loop.
func (e *Executor) invoke(ctx context.Context, d *Descriptor, args map[string]any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return d.Handler(ctx, args)
}
