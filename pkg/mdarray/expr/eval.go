package expr

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/mfuntowicz/mdarray/pkg/mdarray"
)

type edgeKey struct {
	from, to string
}

// Eval computes every node of the graph. Each node runs on its own goroutine
// and results travel over one channel per edge, so independent branches
// execute in parallel. Eval returns the tensors of the terminal nodes, keyed
// by node name, and can be called again: input tensors are never consumed.
//
// The first failing node aborts the evaluation; its name is part of the
// returned error. Eval must not be called concurrently on the same graph.
func (g *Graph[T]) Eval(ctx context.Context) (map[string]*mdarray.Tensor[T], error) {
	if g == nil {
		return nil, ErrGraphMustBeSet
	}

	start := time.Now()
	results := make(map[string]*mdarray.Tensor[T], len(g.nodes))
	if len(g.nodes) == 0 {
		return results, nil
	}

	dCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// A node may use the same parent twice (x + x), so edge channels carry a
	// multiplicity: the producer sends once per use and the channel buffers
	// them all.
	uses := make(map[edgeKey]int)
	for name, node := range g.nodes {
		for _, parent := range node.inputs {
			uses[edgeKey{parent, name}]++
		}
	}
	edgeChans := make(map[edgeKey]chan *mdarray.Tensor[T], len(uses))
	for key, count := range uses {
		edgeChans[key] = make(chan *mdarray.Tensor[T], count)
	}

	consumers := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		for _, parent := range node.inputs {
			consumers[parent]++
		}
	}
	resultChans := make(map[string]chan *mdarray.Tensor[T])
	for name := range g.nodes {
		if consumers[name] == 0 {
			resultChans[name] = make(chan *mdarray.Tensor[T], 1)
		}
	}

	errcList := &errorChans{}
	for _, name := range g.order {
		node := g.nodes[name]

		ins := make([]<-chan *mdarray.Tensor[T], len(node.inputs))
		for i, parent := range node.inputs {
			ins[i] = edgeChans[edgeKey{parent, name}]
		}

		outs := make([]chan<- *mdarray.Tensor[T], 0, consumers[name]+1)
		for _, childName := range g.order {
			for _, parent := range g.nodes[childName].inputs {
				if parent == name {
					outs = append(outs, edgeChans[edgeKey{name, childName}])
				}
			}
		}
		if resultChan, ok := resultChans[name]; ok {
			outs = append(outs, resultChan)
		}

		errC := make(chan error, 1)
		errcList.add(newErrorChan(name, errC))

		go g.runNode(dCtx, node, ins, outs, errC)
	}

	err := waitForEval(errcList.list...)
	if err != nil {
		return nil, err
	}

	for name, resultChan := range resultChans {
		if value, ok := <-resultChan; ok {
			results[name] = value
		}
	}

	total := time.Since(start)
	for _, opt := range g.opts {
		err := opt.Finish(total)
		if err != nil {
			return nil, errors.Wrap(err, "unable to finish graph option")
		}
	}

	return results, nil
}

func (g *Graph[T]) runNode(ctx context.Context, node *Node[T], ins []<-chan *mdarray.Tensor[T], outs []chan<- *mdarray.Tensor[T], errC chan<- error) {
	defer func() {
		closed := make(map[chan<- *mdarray.Tensor[T]]struct{}, len(outs))
		for _, out := range outs {
			if _, ok := closed[out]; ok {
				continue
			}
			closed[out] = struct{}{}
			close(out)
		}
		close(errC)
	}()

	inputs := make([]*mdarray.Tensor[T], len(ins))
	for i, in := range ins {
		waitStart := time.Now()
		select {
		case <-ctx.Done():
			errC <- ctx.Err()

			return
		case value, ok := <-in:
			if !ok {
				// The upstream node failed and reports through its own
				// error channel.
				return
			}
			inputs[i] = value

			for _, opt := range g.opts {
				err := opt.OnNodeInput(g.nodes[node.inputs[i]].details, node.details, time.Since(waitStart))
				if err != nil {
					errC <- errors.Wrap(err, "unable to run node input option")

					return
				}
			}
		}
	}

	computeStart := time.Now()
	out, err := node.fn(inputs)
	if err != nil {
		errC <- err

		return
	}
	node.details.Shape = out.Shape()

	for _, opt := range g.opts {
		err := opt.OnNodeDone(node.details, time.Since(computeStart))
		if err != nil {
			errC <- errors.Wrap(err, "unable to run node done option")

			return
		}
	}

	for _, outChan := range outs {
		select {
		case <-ctx.Done():
			errC <- ctx.Err()

			return
		case outChan <- out:
		}
	}
}
