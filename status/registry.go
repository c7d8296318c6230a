// Package status collects HUD counters for the debug line and tests
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Well-known HUD metric keys
const (
	Builds          = "hud.builds"
	BuildsStale     = "hud.builds.stale"
	RenderFailures  = "hud.render.failures"
	CommitsStale    = "hud.commits.stale"
	EventsHandled   = "hud.events.dispatched"
	EventsFiltered  = "hud.events.filtered"
	EventsDropped   = "hud.events.dropped"
	Resyncs         = "hud.resyncs"
	Bound           = "hud.bound"
	Subject         = "hud.subject"
	BuildMillis     = "hud.build.ms"
	ConstructFailed = "hud.construct.failures"
)

// Registry is the central metrics facade
// Components cache pointers during init; hot paths write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Int returns the current value of an integer metric
func (r *Registry) Int(key string) int64 {
	return r.Ints.Get(key).Load()
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Line renders all metrics as a single sorted key=value line
func (r *Registry) Line() string {
	var parts []string
	r.Strings.Range(func(k string, v *AtomicString) {
		parts = append(parts, fmt.Sprintf("%s=%q", short(k), v.Load()))
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		parts = append(parts, fmt.Sprintf("%s=%t", short(k), v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", short(k), v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		parts = append(parts, fmt.Sprintf("%s=%.1f", short(k), v.Get()))
	})
	return strings.Join(parts, " ")
}

func short(key string) string {
	return strings.TrimPrefix(key, "hud.")
}
