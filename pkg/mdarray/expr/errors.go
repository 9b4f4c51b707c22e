package expr

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrGraphMustBeSet  = errors.New("graph must be set")
	ErrNodeMustBeSet   = errors.New("node must be set")
	ErrTensorMustBeSet = errors.New("tensor must be set")
	ErrUnknownNode     = errors.New("node does not belong to this graph")
)

type errorChans struct {
	mu   sync.Mutex
	list []*errorChan
}

func (ec *errorChans) add(errChan *errorChan) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.list = append(ec.list, errChan)
}

type errorChan struct {
	c    <-chan error
	name string
}

func newErrorChan(name string, c <-chan error) *errorChan {
	return &errorChan{
		c:    c,
		name: name,
	}
}

// mergeErrors funnels the per-node error channels into one channel, tagging
// every error with the name of the node it came from.
// Based on https://blog.golang.org/pipelines.
func mergeErrors(cs ...*errorChan) <-chan error {
	var wg sync.WaitGroup
	// The output channel must hold as many errors as there are inputs so the
	// forwarding goroutines never block, even when the caller returns early.
	out := make(chan error, len(cs))

	output := func(c *errorChan) {
		defer wg.Done()
		if c.c == nil {
			return
		}
		for err := range c.c {
			out <- errors.Wrapf(err, "node %s", c.name)
		}
	}
	wg.Add(len(cs))
	for _, c := range cs {
		go output(c)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// waitForEval drains the merged error channels and returns on the first
// error.
func waitForEval(errs ...*errorChan) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}

	return nil
}
