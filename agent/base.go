package agent

import (
	"context"
	"encoding/json"
	"os"

	"github.com/hupe1980/agentmetrics/core"
	"github.com/hupe1980/agentmetrics/logging"
	"github.com/hupe1980/agentmetrics/metrics"
	"github.com/hupe1980/agentmetrics/model"
	"github.com/hupe1980/agentmetrics/node"
)

// Options configures construction of a BaseAgent.
type Options struct {
	// MaxTokens caps the completion size when the model is resolved from a
	// provider/model spec string.
	MaxTokens int64
	// MaxRetries is passed to the resolved provider client.
	MaxRetries int
	// Logger receives diagnostic output; defaults to NoOpLogger.
	Logger logging.Logger
}

// BaseAgent is the owner of one logical agent's instrumentation: its name
// (the ledger bucket all records land under), its single-slot run timer
// and its proxied action. Embed or compose it in concrete agents.
//
// The timer is shared by all nodes produced via TimedNode, so nodes of one
// BaseAgent must not execute concurrently; use one BaseAgent per logical
// agent instance.
type BaseAgent struct {
	name   string
	model  model.Model
	timer  *metrics.RunTimer
	action core.Invoker
	logger logging.Logger
}

// New constructs a BaseAgent around an existing model instance. The model
// may be nil for agents that only instrument non-model actions.
func New(name string, m model.Model, optFns ...func(o *Options)) *BaseAgent {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &BaseAgent{
		name:   name,
		model:  m,
		timer:  metrics.NewRunTimer(name),
		logger: opts.Logger,
	}
}

// NewFromSpec constructs a BaseAgent whose model is resolved from a
// "provider/model" spec string (for example "openai/gpt-4o-mini").
func NewFromSpec(name, spec string, optFns ...func(o *Options)) (*BaseAgent, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	m, err := ResolveModel(spec, opts)
	if err != nil {
		return nil, err
	}

	return &BaseAgent{
		name:   name,
		model:  m,
		timer:  metrics.NewRunTimer(name),
		logger: opts.Logger,
	}, nil
}

func defaultOptions() Options {
	return Options{
		MaxTokens:  10000,
		MaxRetries: 2,
		Logger:     logging.NoOpLogger{},
	}
}

// Name returns the logical agent identifier.
func (b *BaseAgent) Name() string { return b.name }

// Model returns the configured language model (may be nil).
func (b *BaseAgent) Model() model.Model { return b.model }

// Timer returns the agent's run timer, the side channel for records that
// have no attachment point (failed runs, opaque returns).
func (b *BaseAgent) Timer() *metrics.RunTimer { return b.timer }

// Logger returns the agent's diagnostic logger.
func (b *BaseAgent) Logger() logging.Logger { return b.logger }

// SetAction assigns the agent's action, wrapping it in an ActionProxy so
// every invocation gets a run-level metric. Assigning an already-proxied
// action keeps the existing proxy instead of double wrapping.
func (b *BaseAgent) SetAction(inv core.Invoker) {
	if inv == nil {
		b.action = nil
		return
	}
	if _, wrapped := inv.(*ActionProxy); wrapped {
		b.action = inv
		return
	}
	b.action = NewActionProxy(b.name, inv, b.logger)
}

// Action returns the (proxied) action, or nil if none was assigned.
func (b *BaseAgent) Action() core.Invoker { return b.action }

// TimedNode wraps fn with this agent's run timer under the given node
// name, suitable for registration with the host graph engine.
func (b *BaseAgent) TimedNode(nodeName string, fn node.Func) node.Func {
	return node.Timed(b.timer, nodeName, fn)
}

// WrapRunnableAsNode adapts any Invoker into a timed node function. An
// empty nodeName defaults to "tools_node".
func (b *BaseAgent) WrapRunnableAsNode(runnable core.Invoker, nodeName string) node.Func {
	if nodeName == "" {
		nodeName = "tools_node"
	}
	return b.TimedNode(nodeName, func(ctx context.Context, state core.State) (any, error) {
		return runnable.Invoke(ctx, state)
	})
}

// CollectMetrics returns the ledger embedded in a final state map.
func (b *BaseAgent) CollectMetrics(state core.State) metrics.Ledger {
	return metrics.FromState(state)
}

// WriteState serializes a full state map to deterministic JSON (map keys
// sorted) and writes it to filename.
func (b *BaseAgent) WriteState(filename string, state core.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
