// Package core defines the shared vocabulary between instrumented graph
// nodes and the external scheduler that runs them: the State update map
// threaded through a graph, the Command control directive a node may
// return to influence routing, the NodeResult tagged union used to
// classify a node's raw return value, and the minimal Invoker capability
// required of wrapped actions.
//
// The package deliberately owns no scheduling or routing logic. Commands
// are constructed and interpreted by the host graph engine; this core
// only preserves their fields while attaching timing metrics.
package core
