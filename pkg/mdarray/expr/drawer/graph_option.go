package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/mfuntowicz/mdarray/pkg/mdarray/expr/measure"
	"github.com/mfuntowicz/mdarray/pkg/mdarray/expr/model"
)

type graphDrawer struct {
	Drawer
	m measure.Measure
}

func (gd *graphDrawer) New() error {
	return nil
}

func (gd *graphDrawer) PrepareNode(parents []*model.NodeInfo, node *model.NodeInfo) error {
	err := gd.AddNode(node.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add node to drawer")
	}

	for _, parent := range parents {
		err := gd.AddLink(parent.Name, node.Name)
		if err != nil {
			return errors.Wrap(err, "unable to add link to drawer")
		}
	}

	return nil
}

func (gd *graphDrawer) OnNodeInput(parent, node *model.NodeInfo, waitDuration time.Duration) error {
	return nil
}

func (gd *graphDrawer) OnNodeDone(node *model.NodeInfo, computeDuration time.Duration) error {
	return nil
}

func (gd *graphDrawer) Finish(totalDuration time.Duration) error {
	if gd.m != nil {
		err := gd.AddMeasure(gd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := gd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw graph")
	}

	return nil
}

// GraphDrawer exposes a Drawer as a graph option. When measure is not nil the
// rendered graph carries the evaluation timings.
func GraphDrawer(drawer Drawer, measure measure.Measure) model.GraphOption {
	return &graphDrawer{drawer, measure}
}
