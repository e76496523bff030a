package shm

import (
	"fmt"
	"time"
)

// ChannelMappingTable maps transducer element index to raw-data channel
// index. A fixed-capacity array rather than a slice: it lives inside
// the shared-memory header and must have a stable layout across
// processes.
type ChannelMappingTable struct {
	Entries [ChannelMappingCount]int16
	Count   int
}

// SparseElementsTable lists the subset of transducer elements actually
// wired for a sparse-array acquisition.
type SparseElementsTable struct {
	Entries [SparseElementsCount]int16
	Count   int
}

// FocalVectorsTable lists the (angle, focal depth) pairs used by
// RCA_TPW/RCA_VLS DAS geometries, one entry per transmit.
type FocalVectorsTable struct {
	Entries [FocalVectorCount]FocalVector
	Count   int
}

// FilterRequestTable stages one FilterDescriptor per slot for the
// worker to pick up on a WorkCreateFilter item: filter construction
// touches GPU-owned coefficient storage, so it must run on the worker
// side, not on the producer that calls CreateKaiserLowPassFilter.
type FilterRequestTable struct {
	Slots [MaxFilterSlots]FilterDescriptor
}

// Tables bundles the fixed-capacity lookup tables that live in the
// shared-memory header alongside Parameters. Each table is guarded by
// its own LockSlot and tracked by its own Region bit in DirtyRegions,
// so a producer pushing a new focal-vectors set never blocks a producer
// pushing channel mapping.
type Tables struct {
	ChannelMapping ChannelMappingTable
	SparseElements SparseElementsTable
	FocalVectors   FocalVectorsTable
	FilterRequests FilterRequestTable
}

// SetChannelMapping overwrites the channel mapping table, guarded by
// locks.Lock(LockChannelMapping, timeout), and marks it dirty.
func (t *Tables) SetChannelMapping(locks *Locks, dirty *DirtyRegions, timeout time.Duration, entries []int16) error {
	if err := locks.Lock(LockChannelMapping, timeout); err != nil {
		return err
	}
	defer locks.Unlock(LockChannelMapping)
	n := copy(t.ChannelMapping.Entries[:], entries)
	t.ChannelMapping.Count = n
	dirty.Mark(Region(LockChannelMapping))
	return nil
}

// SetSparseElements overwrites the sparse elements table, guarded by
// locks.Lock(LockSparseElements, timeout), and marks it dirty.
func (t *Tables) SetSparseElements(locks *Locks, dirty *DirtyRegions, timeout time.Duration, entries []int16) error {
	if err := locks.Lock(LockSparseElements, timeout); err != nil {
		return err
	}
	defer locks.Unlock(LockSparseElements)
	n := copy(t.SparseElements.Entries[:], entries)
	t.SparseElements.Count = n
	dirty.Mark(Region(LockSparseElements))
	return nil
}

// SetFocalVectors overwrites the focal vectors table, guarded by
// locks.Lock(LockFocalVectors, timeout), and marks it dirty.
func (t *Tables) SetFocalVectors(locks *Locks, dirty *DirtyRegions, timeout time.Duration, entries []FocalVector) error {
	if err := locks.Lock(LockFocalVectors, timeout); err != nil {
		return err
	}
	defer locks.Unlock(LockFocalVectors)
	n := copy(t.FocalVectors.Entries[:], entries)
	t.FocalVectors.Count = n
	dirty.Mark(Region(LockFocalVectors))
	return nil
}

// SetFilterDescriptor stages desc into slot for a subsequent
// WorkCreateFilter item to pick up, guarded by
// locks.Lock(LockFilterDescriptor, timeout).
func (t *Tables) SetFilterDescriptor(locks *Locks, dirty *DirtyRegions, timeout time.Duration, slot int, desc FilterDescriptor) error {
	if slot < 0 || slot >= MaxFilterSlots {
		return fmt.Errorf("shm: filter slot %d out of range [0, %d)", slot, MaxFilterSlots)
	}
	if err := locks.Lock(LockFilterDescriptor, timeout); err != nil {
		return err
	}
	defer locks.Unlock(LockFilterDescriptor)
	t.FilterRequests.Slots[slot] = desc
	dirty.Mark(Region(LockFilterDescriptor))
	return nil
}

// FilterDescriptorAt reads back the descriptor most recently staged
// into slot, guarded by the same lock SetFilterDescriptor uses.
func (t *Tables) FilterDescriptorAt(locks *Locks, timeout time.Duration, slot int) (FilterDescriptor, error) {
	if slot < 0 || slot >= MaxFilterSlots {
		return FilterDescriptor{}, fmt.Errorf("shm: filter slot %d out of range [0, %d)", slot, MaxFilterSlots)
	}
	if err := locks.Lock(LockFilterDescriptor, timeout); err != nil {
		return FilterDescriptor{}, err
	}
	defer locks.Unlock(LockFilterDescriptor)
	return t.FilterRequests.Slots[slot], nil
}
