package model

// NodeType classifies the nodes of an expression graph.
type NodeType string

const (
	// InputNodeType marks a node bound to an already materialised tensor.
	InputNodeType NodeType = "input"
	// OpNodeType marks a node computed from its parents during Eval.
	OpNodeType NodeType = "op"
)

// NodeInfo describes one node of the graph. Shape is filled in once the node
// has been evaluated.
type NodeInfo struct {
	Type  NodeType
	Name  string
	Op    string
	Shape []int
}
