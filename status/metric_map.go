package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap holds named metrics of one kind
// Only lookup of a new key takes the write lock; the HUD keeps the returned pointers
type MetricMap[T any] struct {
	mu      sync.RWMutex
	metrics map[string]*T
}

// NewMetricMap creates an empty map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{metrics: map[string]*T{}}
}

func (m *MetricMap[T]) lookup(key string) (*T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.metrics[key]
	return p, ok
}

// Get returns the metric for key, registering a zero value on first use
func (m *MetricMap[T]) Get(key string) *T {
	if p, ok := m.lookup(key); ok {
		return p
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.metrics[key]
	if !ok {
		p = new(T)
		m.metrics[key] = p
	}
	return p
}

// Has reports whether key was ever requested
func (m *MetricMap[T]) Has(key string) bool {
	_, ok := m.lookup(key)
	return ok
}

// Range visits metrics by ascending key, outside the lock
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	snapshot := maps.Clone(m.metrics)
	m.mu.RUnlock()

	for _, k := range slices.Sorted(maps.Keys(snapshot)) {
		fn(k, snapshot[k])
	}
}

// Count returns the number of registered keys
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.metrics)
}
