package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 stored as its IEEE bits; the zero value reads 0
type AtomicFloat struct {
	v atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) { f.v.Store(math.Float64bits(val)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.v.Load()) }

// MaxStringLen caps subject names shown on the status line, in runes
const MaxStringLen = 32

// AtomicString holds a short label such as the bound subject name
type AtomicString struct {
	v atomic.Value
}

// Store keeps at most MaxStringLen runes of val
func (s *AtomicString) Store(val string) {
	n := 0
	for i := range val {
		if n == MaxStringLen {
			val = val[:i]
			break
		}
		n++
	}
	s.v.Store(val)
}

// Load returns the stored label, empty before the first Store
func (s *AtomicString) Load() string {
	v, _ := s.v.Load().(string)
	return v
}
