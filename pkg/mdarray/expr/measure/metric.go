package measure

import (
	"sync"
	"time"
)

// WaitInfo accumulates how long a node waited for one of its parents.
type WaitInfo struct {
	Elapsed time.Duration
	total   int64
}

type DefaultMetric struct {
	allWaits      map[string]*WaitInfo
	mu            *sync.Mutex
	TotalDuration time.Duration
	nodeElapsed   time.Duration
	total         int64
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.nodeElapsed += elapsed
}

func (mt *DefaultMetric) AddWaitDuration(parentName string, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.allWaits[parentName] == nil {
		mt.allWaits[parentName] = &WaitInfo{}
	}
	info := mt.allWaits[parentName]
	info.Elapsed += elapsed
	info.total++
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.nodeElapsed) / float64(mt.total)))
}

func (mt *DefaultMetric) AVGWaitDuration() map[string]*WaitInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	out := make(map[string]*WaitInfo, len(mt.allWaits))
	for name, info := range mt.allWaits {
		avg := &WaitInfo{total: info.total}
		if info.total > 0 {
			avg.Elapsed = round(time.Duration(float64(info.Elapsed) / float64(info.total)))
		}
		out[name] = avg
	}

	return out
}

func (mt *DefaultMetric) AllWaits() map[string]*WaitInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.allWaits
}

func (mt *DefaultMetric) SetTotalDuration(total time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.TotalDuration = total
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.TotalDuration
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
