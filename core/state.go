package core

import "github.com/google/uuid"

// State is the update mapping a node returns and the host scheduler
// accumulates. It is a plain map alias so values produced by arbitrary
// schedulers (or decoded from JSON) interoperate without conversion.
type State = map[string]any

// NewID generates an opaque unique token for run correlation.
func NewID() string { return uuid.NewString() }
