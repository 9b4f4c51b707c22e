// Package drawer renders expression graphs as Graphviz DOT files, optionally
// decorated with the timings collected by the measure package.
package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/mfuntowicz/mdarray/pkg/mdarray/expr/measure"
)

// SVGDrawer writes the graph as a DOT file that Graphviz turns into an SVG.
type SVGDrawer struct {
	graph       graph.Graph[string, string]
	nodes       map[string]struct{}
	dotFileName string
}

// NewSVGDrawer creates a drawer writing to dotFileName.
func NewSVGDrawer(dotFileName string) *SVGDrawer {
	return &SVGDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed()),
		nodes:       make(map[string]struct{}),
	}
}

// AddNode adds a node to the rendered graph.
func (d *SVGDrawer) AddNode(name string) error {
	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	d.nodes[name] = struct{}{}

	return nil
}

// AddLink adds an edge between a parent and one of its consumers.
func (d *SVGDrawer) AddLink(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

// Draw writes the DOT file.
func (d *SVGDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = dot(d.graph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to render dot file %s", d.dotFileName)
	}

	return nil
}

const maxRGB = 240

// AddMeasure labels every node with its average compute duration and colours
// the incoming edges on a blue to red gradient, red being the slowest wait.
func (d *SVGDrawer) AddMeasure(msr measure.Measure) error {
	waits := []time.Duration{}
	for _, metric := range msr.AllMetrics() {
		for _, info := range metric.AVGWaitDuration() {
			if info.Elapsed > 0 {
				waits = append(waits, info.Elapsed)
			}
		}
	}
	if len(waits) == 0 {
		return d.labelNodes(msr, nil)
	}

	sort.Slice(waits, func(i, j int) bool { return waits[i] < waits[j] })
	minWait, maxWait := waits[0], waits[len(waits)-1]

	palette := make(map[time.Duration]string, len(waits))
	for _, wait := range waits {
		fraction := 1.0
		if maxWait > minWait {
			fraction = float64(wait-minWait) / float64(maxWait-minWait)
		}

		red := uint8(maxRGB * fraction)
		blue := uint8(maxRGB * (1 - fraction))

		col, err := colors.RGB(red, 0, blue) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to build colour")
		}
		palette[wait] = col.ToHEX().String()
	}

	return d.labelNodes(msr, palette)
}

func (d *SVGDrawer) labelNodes(msr measure.Measure, palette map[time.Duration]string) error {
	for name, metric := range msr.AllMetrics() {
		if _, ok := d.nodes[name]; !ok {
			continue
		}

		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}

		if avg := metric.AVGDuration(); avg != 0 {
			properties.Attributes["xlabel"] = avg.String()
		}
		if total := metric.GetTotalDuration(); total > 0 {
			properties.Attributes["xlabel"] += ", total: " + total.String()
		}

		for parent, info := range metric.AVGWaitDuration() {
			if info.Elapsed == 0 {
				continue
			}

			err := d.graph.UpdateEdge(parent, name,
				graph.EdgeAttribute("label", info.Elapsed.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", palette[info.Elapsed]),
			)
			if err != nil {
				return errors.Wrap(err, "unable to update edge")
			}
		}
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot[K comparable, T any](g graph.Graph[K, T], wrt io.Writer) error {
	desc, err := generateDOT(g)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

func generateDOT[K comparable, T any](gra graph.Graph[K, T]) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   make(map[string]string),
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for vertex, adjacencies := range adjacencyMap {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)

		if xlabel, ok := sourceProperties.Attributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%+v <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, xlabel)

			delete(sourceProperties.Attributes, "xlabel")
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceProperties.Attributes,
			HTMLAttributes:   htmlAttributes,
		})

		for adjacency, edge := range adjacencies {
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*SVGDrawer)(nil)
