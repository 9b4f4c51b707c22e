package measure

import "time"

// Measure collects one Metric per graph node.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the durations observed for one node: time spent
// computing and time spent waiting on each input.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddWaitDuration(parentName string, elapsed time.Duration)
	AVGDuration() time.Duration
	AVGWaitDuration() map[string]*WaitInfo
	AllWaits() map[string]*WaitInfo
	SetTotalDuration(total time.Duration)
	GetTotalDuration() time.Duration
}
