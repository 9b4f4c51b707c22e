package expr

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mfuntowicz/mdarray/pkg/mdarray/expr/model"
)

type graphLogger struct {
	log zerolog.Logger
}

func (gl *graphLogger) New() error {
	return nil
}

func (gl *graphLogger) PrepareNode(parents []*model.NodeInfo, node *model.NodeInfo) error {
	gl.log.Debug().
		Str("node", node.Name).
		Str("op", node.Op).
		Int("parents", len(parents)).
		Msg("node added")

	return nil
}

func (gl *graphLogger) OnNodeInput(parent, node *model.NodeInfo, waitDuration time.Duration) error {
	gl.log.Trace().
		Str("node", node.Name).
		Str("parent", parent.Name).
		Dur("wait", waitDuration).
		Msg("input received")

	return nil
}

func (gl *graphLogger) OnNodeDone(node *model.NodeInfo, computeDuration time.Duration) error {
	gl.log.Debug().
		Str("node", node.Name).
		Str("op", node.Op).
		Ints("shape", node.Shape).
		Dur("compute", computeDuration).
		Msg("node evaluated")

	return nil
}

func (gl *graphLogger) Finish(totalDuration time.Duration) error {
	gl.log.Debug().
		Dur("total", totalDuration).
		Msg("evaluation finished")

	return nil
}

// GraphLogger emits a structured log line per added and evaluated node.
func GraphLogger(log zerolog.Logger) model.GraphOption {
	return &graphLogger{log: log}
}

var _ model.GraphOption = (*graphLogger)(nil)
