package filter

import (
	"fmt"

	"github.com/gogpu/beamform/internal/shm"
)

// MaxSlots bounds how many filters the executor keeps resident at once,
// mirroring the fixed filter-slot table the Demodulate stage indexes
// into.
const MaxSlots = 4

var errInvalidSlot = fmt.Errorf("filter: slot out of range [0, %d)", MaxSlots)

// Filter is one constructed, GPU-uploadable filter.
type Filter struct {
	Descriptor shm.FilterDescriptor
	Coeffs     []float32
}

// Store holds the fixed set of resident filters a Demodulate stage can
// bind by slot index. It is not safe for concurrent use; callers
// serialize access the same way they serialize shm.Locks.
type Store struct {
	slots [MaxSlots]*Filter
}

// Create constructs a filter from desc at the given sampling frequency
// and stores it in slot, replacing any filter previously resident
// there.
func (s *Store) Create(slot int, desc shm.FilterDescriptor, samplingFrequencyHz float64) error {
	if slot < 0 || slot >= MaxSlots {
		return errInvalidSlot
	}
	if desc.Kind != shm.FilterKaiser {
		return fmt.Errorf("filter: unsupported kind %v", desc.Kind)
	}
	coeffs := KaiserLowPass(float64(desc.Cutoff), samplingFrequencyHz, desc.Length, float64(desc.Beta))
	s.slots[slot] = &Filter{Descriptor: desc, Coeffs: coeffs}
	return nil
}

// Get returns the filter resident in slot, or nil if none has been
// created there.
func (s *Store) Get(slot int) *Filter {
	if slot < 0 || slot >= MaxSlots {
		return nil
	}
	return s.slots[slot]
}

// TimeOffset returns the pulse-length correction time contributed by
// the filter in slot at samplingFrequencyHz, or 0 if the slot is empty.
func (s *Store) TimeOffset(slot int, samplingFrequencyHz float32) float32 {
	f := s.Get(slot)
	if f == nil {
		return 0
	}
	return f.Descriptor.TimeOffset(samplingFrequencyHz)
}
