// Package model defines the minimal language-model client abstraction the
// agent constructor accepts, plus a deterministic MockModel for tests.
// Provider adapters live in the openai and anthropic subpackages; the
// instrumentation core never calls a model itself.
package model
