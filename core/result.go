package core

// ResultKind discriminates the shape families a node's raw return value
// can take. Classification happens exactly once, at the boundary where
// the scheduler first observes the value.
type ResultKind int

const (
	// KindOpaque is any value that is not a map, list or Command. Timing
	// is still observed for opaque results but cannot be attached.
	KindOpaque ResultKind = iota
	// KindUpdate is a plain state update mapping.
	KindUpdate
	// KindList is a heterogeneous list mixing messages and Commands.
	KindList
	// KindCommand is a single control directive.
	KindCommand
)

// NodeResult is the tagged union of the four return-value shapes. Exactly
// one of Command, Update, List or Value is meaningful, selected by Kind.
type NodeResult struct {
	Kind    ResultKind
	Command *Command
	Update  State
	List    []any
	Value   any
}

// Classify inspects a node's raw return value and selects its variant.
// Both Command values and pointers are accepted; a nil value is opaque.
func Classify(v any) NodeResult {
	switch r := v.(type) {
	case *Command:
		if r == nil {
			return NodeResult{Kind: KindOpaque, Value: v}
		}
		return NodeResult{Kind: KindCommand, Command: r}
	case Command:
		return NodeResult{Kind: KindCommand, Command: &r}
	case []any:
		return NodeResult{Kind: KindList, List: r}
	case State:
		return NodeResult{Kind: KindUpdate, Update: r}
	default:
		return NodeResult{Kind: KindOpaque, Value: v}
	}
}
