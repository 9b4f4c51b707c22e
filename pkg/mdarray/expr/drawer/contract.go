package drawer

import "github.com/mfuntowicz/mdarray/pkg/mdarray/expr/measure"

// Drawer renders the topology of an expression graph.
type Drawer interface {
	// AddNode adds a node to the rendered graph.
	AddNode(name string) error
	// AddLink adds an edge between a parent and one of its consumers.
	AddLink(parentName, childName string) error
	// AddMeasure decorates nodes and edges with recorded timings.
	AddMeasure(measure measure.Measure) error
	// Draw writes the rendered graph out.
	Draw() error
}
