package node

import (
	"reflect"

	"github.com/hupe1980/agentmetrics/core"
	"github.com/hupe1980/agentmetrics/metrics"
)

// MergeUpdates folds add into into, key by key, and returns into. On a key
// collision: two slices concatenate, two maps shallow-merge with the added
// value overriding per key, anything else is replaced by the later value.
// The ledger under metrics.Key is always skipped here; only RunTimer.Finish
// and metrics.Merge may touch it.
func MergeUpdates(into, add core.State) core.State {
	for k, v := range add {
		if k == metrics.Key {
			continue
		}

		prev, exists := into[k]
		if !exists {
			into[k] = v
			continue
		}
		into[k] = mergeValues(prev, v)
	}
	return into
}

func mergeValues(prev, next any) any {
	if pm, ok := prev.(core.State); ok {
		if nm, ok := next.(core.State); ok {
			for k, v := range nm {
				pm[k] = v
			}
			return pm
		}
	}

	if concat, ok := concatSlices(prev, next); ok {
		return concat
	}

	return next
}

// concatSlices concatenates two values when both are slices of any element
// type, producing a []any.
func concatSlices(prev, next any) (any, bool) {
	pv, nv := reflect.ValueOf(prev), reflect.ValueOf(next)
	if !pv.IsValid() || !nv.IsValid() || pv.Kind() != reflect.Slice || nv.Kind() != reflect.Slice {
		return nil, false
	}

	out := make([]any, 0, pv.Len()+nv.Len())
	for i := 0; i < pv.Len(); i++ {
		out = append(out, pv.Index(i).Interface())
	}
	for i := 0; i < nv.Len(); i++ {
		out = append(out, nv.Index(i).Interface())
	}
	return out, true
}
