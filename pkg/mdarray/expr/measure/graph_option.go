package measure

import (
	"time"

	"github.com/mfuntowicz/mdarray/pkg/mdarray/expr/model"
)

type graphMeasure struct {
	Measure
}

func (gm *graphMeasure) New() error {
	return nil
}

func (gm *graphMeasure) PrepareNode(parents []*model.NodeInfo, node *model.NodeInfo) error {
	gm.AddMetric(node.Name)

	return nil
}

func (gm *graphMeasure) OnNodeInput(parent, node *model.NodeInfo, waitDuration time.Duration) error {
	gm.GetMetric(node.Name).AddWaitDuration(parent.Name, waitDuration)

	return nil
}

func (gm *graphMeasure) OnNodeDone(node *model.NodeInfo, computeDuration time.Duration) error {
	gm.GetMetric(node.Name).AddDuration(computeDuration)

	return nil
}

func (gm *graphMeasure) Finish(totalDuration time.Duration) error {
	for _, metric := range gm.AllMetrics() {
		metric.SetTotalDuration(totalDuration)
	}

	return nil
}

// GraphMeasure exposes a Measure as a graph option recording per-node
// compute and wait durations.
func GraphMeasure(measure Measure) model.GraphOption {
	return &graphMeasure{measure}
}
