// Package timing implements the lock-free timing event ring the
// executor publishes per-shader GPU timer results to, and the
// coalescer that drains it into rolling per-shader averages and an RF
// inter-arrival mean.
package timing

import (
	"sync/atomic"

	"github.com/gogpu/beamform/internal/shm"
)

// EventKind discriminates Event's variant, matching ComputeTimingInfoKind.
type EventKind uint32

const (
	EventComputeFrameBegin EventKind = iota
	EventComputeFrameEnd
	EventShader
	EventRFData
)

// RingCapacity is the fixed number of buffered events, matching
// ComputeTimingTable's buffer[4096].
const RingCapacity = 4096

// Event is one timing sample pushed by the executor.
type Event struct {
	TimerCount uint64
	Kind       EventKind
	Shader     shm.ShaderKind
}

// Ring is a single-producer/single-consumer ring buffer of Event. The
// producer (executor) only ever increments writeIndex; the consumer
// (coalescer) only ever increments readIndex, so no synchronization is
// needed beyond the atomics guarding each index.
type Ring struct {
	writeIndex atomic.Uint32
	readIndex  atomic.Uint32
	buffer     [RingCapacity]Event
}

// Push appends e to the ring, overwriting the oldest unconsumed entry
// if the consumer has fallen more than RingCapacity events behind (the
// same best-effort behavior as the original: a slow consumer loses the
// oldest samples rather than blocking the GPU timeline).
func (r *Ring) Push(e Event) {
	idx := r.writeIndex.Add(1) - 1
	r.buffer[idx%RingCapacity] = e
}

// WriteIndex returns the current producer write position, used by the
// coalescer as a drain target.
func (r *Ring) WriteIndex() uint32 {
	return r.writeIndex.Load()
}

// ReadIndex returns the current consumer read position.
func (r *Ring) ReadIndex() uint32 {
	return r.readIndex.Load()
}

// At returns the event at the given ring index (taken modulo capacity).
func (r *Ring) At(index uint32) Event {
	return r.buffer[index%RingCapacity]
}

// Advance moves the consumer's read position forward by one, marking
// the event at the prior read index as consumed.
func (r *Ring) Advance() {
	r.readIndex.Add(1)
}
