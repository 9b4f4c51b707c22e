package expr

import (
	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/mfuntowicz/mdarray/internal/store"
	"github.com/mfuntowicz/mdarray/pkg/mdarray"
	"github.com/mfuntowicz/mdarray/pkg/mdarray/expr/model"
)

// Graph is a lazy expression graph over tensors of T. Nodes are added up
// front and computed by Eval.
type Graph[T mdarray.Number] struct {
	topo  graph.Graph[string, string]
	nodes map[string]*Node[T]
	order []string
	opts  []model.GraphOption
}

// Node is a handle on one node of the graph.
type Node[T mdarray.Number] struct {
	details *model.NodeInfo
	inputs  []string
	fn      func(inputs []*mdarray.Tensor[T]) (*mdarray.Tensor[T], error)
}

// Name returns the node name.
func (n *Node[T]) Name() string {
	return n.details.Name
}

// New creates an empty expression graph.
func New[T mdarray.Number](opts ...model.GraphOption) (*Graph[T], error) {
	g := &Graph[T]{
		topo:  graph.NewWithStore(graph.StringHash, store.NewMemoryStore[string, string](), graph.Directed(), graph.PreventCycles()),
		nodes: make(map[string]*Node[T]),
		opts:  opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply graph option")
		}
	}

	return g, nil
}

func (g *Graph[T]) addNode(node *Node[T], parents ...*Node[T]) (*Node[T], error) {
	if g == nil {
		return nil, ErrGraphMustBeSet
	}

	parentInfos := make([]*model.NodeInfo, len(parents))
	inputs := make([]string, len(parents))
	for i, parent := range parents {
		if parent == nil {
			return nil, ErrNodeMustBeSet
		}
		if g.nodes[parent.Name()] != parent {
			return nil, errors.Wrapf(ErrUnknownNode, "parent %s", parent.Name())
		}
		parentInfos[i] = parent.details
		inputs[i] = parent.Name()
	}
	node.inputs = inputs

	err := g.topo.AddVertex(node.details.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to add node %s", node.details.Name)
	}
	for _, parent := range parents {
		err := g.topo.AddEdge(parent.Name(), node.details.Name)
		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, errors.Wrapf(err, "unable to link %s to %s", parent.Name(), node.details.Name)
		}
	}

	for _, opt := range g.opts {
		err := opt.PrepareNode(parentInfos, node.details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to prepare node")
		}
	}

	g.nodes[node.details.Name] = node
	g.order = append(g.order, node.details.Name)

	return node, nil
}

// Input adds a node bound to an already materialised tensor.
func (g *Graph[T]) Input(name string, tensor *mdarray.Tensor[T]) (*Node[T], error) {
	if tensor == nil {
		return nil, ErrTensorMustBeSet
	}

	return g.addNode(&Node[T]{
		details: &model.NodeInfo{Type: model.InputNodeType, Name: name, Op: "input", Shape: tensor.Shape()},
		fn: func([]*mdarray.Tensor[T]) (*mdarray.Tensor[T], error) {
			return tensor, nil
		},
	})
}

func (g *Graph[T]) unary(name, op string, input *Node[T], fn func(x *mdarray.Tensor[T]) (*mdarray.Tensor[T], error)) (*Node[T], error) {
	return g.addNode(&Node[T]{
		details: &model.NodeInfo{Type: model.OpNodeType, Name: name, Op: op},
		fn: func(inputs []*mdarray.Tensor[T]) (*mdarray.Tensor[T], error) {
			return fn(inputs[0])
		},
	}, input)
}

func (g *Graph[T]) binary(name, op string, a, b *Node[T], fn func(x, y *mdarray.Tensor[T]) (*mdarray.Tensor[T], error)) (*Node[T], error) {
	return g.addNode(&Node[T]{
		details: &model.NodeInfo{Type: model.OpNodeType, Name: name, Op: op},
		fn: func(inputs []*mdarray.Tensor[T]) (*mdarray.Tensor[T], error) {
			return fn(inputs[0], inputs[1])
		},
	}, a, b)
}

// Unary adds a node computing fn over one parent.
func (g *Graph[T]) Unary(name string, input *Node[T], fn func(x *mdarray.Tensor[T]) (*mdarray.Tensor[T], error)) (*Node[T], error) {
	return g.unary(name, "unary", input, fn)
}

// Binary adds a node computing fn over two parents.
func (g *Graph[T]) Binary(name string, a, b *Node[T], fn func(x, y *mdarray.Tensor[T]) (*mdarray.Tensor[T], error)) (*Node[T], error) {
	return g.binary(name, "binary", a, b, fn)
}

// Add adds an element-wise addition node.
func (g *Graph[T]) Add(name string, a, b *Node[T], opts ...mdarray.OpOption) (*Node[T], error) {
	return g.binary(name, "add", a, b, func(x, y *mdarray.Tensor[T]) (*mdarray.Tensor[T], error) {
		return mdarray.Add(x, y, opts...)
	})
}

// Sub adds an element-wise subtraction node.
func (g *Graph[T]) Sub(name string, a, b *Node[T], opts ...mdarray.OpOption) (*Node[T], error) {
	return g.binary(name, "sub", a, b, func(x, y *mdarray.Tensor[T]) (*mdarray.Tensor[T], error) {
		return mdarray.Sub(x, y, opts...)
	})
}

// Mul adds an element-wise product node.
func (g *Graph[T]) Mul(name string, a, b *Node[T], opts ...mdarray.OpOption) (*Node[T], error) {
	return g.binary(name, "mul", a, b, func(x, y *mdarray.Tensor[T]) (*mdarray.Tensor[T], error) {
		return mdarray.Mul(x, y, opts...)
	})
}

// Div adds an element-wise division node.
func (g *Graph[T]) Div(name string, a, b *Node[T], opts ...mdarray.OpOption) (*Node[T], error) {
	return g.binary(name, "div", a, b, func(x, y *mdarray.Tensor[T]) (*mdarray.Tensor[T], error) {
		return mdarray.Div(x, y, opts...)
	})
}

// MatMul adds a matrix product node.
func (g *Graph[T]) MatMul(name string, a, b *Node[T], opts ...mdarray.OpOption) (*Node[T], error) {
	return g.binary(name, "matmul", a, b, func(x, y *mdarray.Tensor[T]) (*mdarray.Tensor[T], error) {
		return mdarray.MatMul(x, y, opts...)
	})
}

// Sum adds a node reducing its parent to a scalar tensor.
func (g *Graph[T]) Sum(name string, input *Node[T], opts ...mdarray.OpOption) (*Node[T], error) {
	return g.unary(name, "sum", input, func(x *mdarray.Tensor[T]) (*mdarray.Tensor[T], error) {
		return mdarray.FromSlice([]T{x.Sum(opts...)})
	})
}
