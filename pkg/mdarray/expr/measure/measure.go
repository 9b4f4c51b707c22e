// Package measure records per-node timings for expression graph
// evaluations.
package measure

import "sync"

type DefaultMeasure struct {
	mu    sync.Mutex
	Nodes map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Nodes: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt := &DefaultMetric{
		mu:       &sync.Mutex{},
		allWaits: make(map[string]*WaitInfo),
	}
	m.Nodes[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Nodes[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Nodes
}

var _ Measure = (*DefaultMeasure)(nil)
