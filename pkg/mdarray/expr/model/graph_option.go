package model

import "time"

// GraphOption observes the lifecycle of an expression graph. Implementations
// are registered at construction time and called by the graph itself.
type GraphOption interface {
	// New initialises the option.
	New() error
	// PrepareNode runs when a node is added to the graph.
	PrepareNode(parents []*NodeInfo, node *NodeInfo) error
	// OnNodeInput runs when a node receives one of its inputs during Eval.
	OnNodeInput(parent, node *NodeInfo, waitDuration time.Duration) error
	// OnNodeDone runs when a node has produced its result during Eval.
	OnNodeDone(node *NodeInfo, computeDuration time.Duration) error
	// Finish runs once an evaluation has completed.
	Finish(totalDuration time.Duration) error
}
