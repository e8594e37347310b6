package core

import "context"

// Invoker is the minimal capability the instrumentation layer requires of
// a wrapped action: invoke it with the current state and get back a raw
// result. Concrete actions (tool executors, chains, sub-graphs) typically
// expose a richer API; only this entry point is intercepted for timing.
type Invoker interface {
	Invoke(ctx context.Context, state State) (any, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context, state State) (any, error)

// Invoke calls the underlying function.
func (f InvokerFunc) Invoke(ctx context.Context, state State) (any, error) {
	return f(ctx, state)
}
