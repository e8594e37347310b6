package agent

import (
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/hupe1980/agentmetrics/model"
	"github.com/hupe1980/agentmetrics/model/anthropic"
	"github.com/hupe1980/agentmetrics/model/openai"
)

// ResolveModel turns a "provider/model" spec string into a concrete model
// client configured with the given options. Supported providers are
// "openai" and "anthropic".
func ResolveModel(spec string, opts Options) (model.Model, error) {
	provider, name, found := strings.Cut(spec, "/")
	if !found || provider == "" || name == "" {
		return nil, fmt.Errorf("model spec %q must have the form provider/model", spec)
	}

	switch provider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			o.Model = name
			o.MaxCompletionTokens = opts.MaxTokens
			o.MaxRetries = opts.MaxRetries
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropicsdk.Model(name)
			o.MaxTokens = opts.MaxTokens
			o.MaxRetries = opts.MaxRetries
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", provider)
	}
}
