// Package expr builds lazy expression graphs over mdarray tensors.
//
// Nodes are added up front: inputs bind already materialised tensors, op
// nodes describe how to combine their parents. Nothing is computed until
// Eval runs. During an evaluation every node runs on its own goroutine and
// results travel between nodes over channels, one channel per graph edge, so
// independent branches of the expression naturally execute in parallel.
//
// The evaluation stops on the first error: every send and receive also
// watches the context, and per-node error channels are merged so the failing
// node is named in the returned error.
//
// Graph options observe the lifecycle: the measure package records per-node
// timings, the drawer package renders the evaluated graph as a Graphviz DOT
// file, and GraphLogger emits a structured log line per evaluated node.
package expr
