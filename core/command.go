package core

import "time"

// Command is a control directive returned by a node to influence the host
// scheduler: an optional state update plus optional routing, interrupt and
// sleep instructions. The zero value of each routing field means "absent";
// the instrumentation layer copies non-zero fields through untouched and
// never interprets them.
type Command struct {
	Update    State         `json:"update,omitempty"`
	Goto      string        `json:"goto,omitempty"`
	Graph     string        `json:"graph,omitempty"`
	Interrupt any           `json:"interrupt,omitempty"`
	Sleep     time.Duration `json:"sleep,omitempty"`
}

// WithUpdate returns a copy of the command carrying the given update map
// with all routing fields preserved.
func (c Command) WithUpdate(update State) Command {
	out := c
	out.Update = update
	return out
}
