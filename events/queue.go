package events

import (
	"sync/atomic"
)

const (
	// QueueSize is the ring capacity; a power of two so slots wrap by mask
	QueueSize = 256
	slotMask  = QueueSize - 1
)

// Queue is a lock-free ring of pending host events
//
//   - Push may be called from any emitter goroutine
//   - Consume is called by one dispatcher at a time
//   - A slot is readable only once its ready flag is set
//
// When the ring is full the oldest pending event is lost. Push reports the loss
// so the owner can resynchronize instead of trusting the surviving events alone.
type Queue struct {
	slots [QueueSize]Event
	ready [QueueSize]atomic.Bool
	read  atomic.Uint64
	write atomic.Uint64

	lost atomic.Uint64
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends ev and reports whether an unread event was overwritten to make room
func (q *Queue) Push(ev Event) (overwrote bool) {
	var pos uint64
	for {
		pos = q.write.Load()
		if q.write.CompareAndSwap(pos, pos+1) {
			break
		}
	}

	i := pos & slotMask
	q.slots[i] = ev
	q.ready[i].Store(true)

	// Skip the reader past the overwritten slot
	for {
		r := q.read.Load()
		if pos+1-r <= QueueSize {
			return false
		}
		if q.read.CompareAndSwap(r, pos+1-QueueSize) {
			q.lost.Add(pos + 1 - QueueSize - r)
			return true
		}
	}
}

// Consume takes every readable event in arrival order
func (q *Queue) Consume() []Event {
	for {
		r := q.read.Load()
		w := q.write.Load()
		if w == r {
			return nil
		}
		n := min(w-r, QueueSize)
		start := w - n

		out := make([]Event, 0, n)
		for k := uint64(0); k < n; k++ {
			i := (start + k) & slotMask
			if !q.ready[i].Load() {
				break
			}
			out = append(out, q.slots[i])
			q.ready[i].Store(false)
		}

		if q.read.CompareAndSwap(r, start+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate number of pending events
func (q *Queue) Len() int {
	return int(min(q.write.Load()-q.read.Load(), QueueSize))
}

// Lost returns how many events were overwritten before being consumed
func (q *Queue) Lost() uint64 {
	return q.lost.Load()
}
