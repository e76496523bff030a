package shm

import (
	"time"
	"unsafe"
)

// Header is the fixed-layout portion of the shared-memory region every
// process maps: the parameter block, lookup tables, lock slots, dirty
// bitmap, and the embedded work queue. Its size must stay within
// headerSize (see layout.go); the remainder of the region is untyped
// scratch space addressed by byte offset via ScratchOffset.
type Header struct {
	Parameters Parameters
	Tables     Tables
	Locks      Locks
	Dirty      DirtyRegions
	Queue      Queue
}

// Mapping is a mapped shared-memory region: the typed Header plus the
// raw scratch bytes that follow it, used for bulk RF uploads and
// exported results.
type Mapping struct {
	backing []byte
	header  *Header
}

// CreateMapping creates and maps a new shared-memory region backed by
// path, initializing its header to the zero value. path is a regular
// file used purely as a named MAP_SHARED backing; on platforms without
// a wired mmap path it is ignored and a private, non-shared mapping is
// used instead.
func CreateMapping(path string) (*Mapping, error) {
	return newMapping(path, true)
}

// OpenMapping maps an existing shared-memory region previously created
// with CreateMapping, observing its current header state.
func OpenMapping(path string) (*Mapping, error) {
	return newMapping(path, false)
}

func newMapping(path string, create bool) (*Mapping, error) {
	backing, err := mapBacking(path, create)
	if err != nil {
		return nil, err
	}
	header := (*Header)(unsafe.Pointer(&backing[0]))
	return &Mapping{backing: backing, header: header}, nil
}

// Scratch returns the untyped scratch area following the header, sized
// ScratchSize.
func (r *Mapping) Scratch() []byte {
	return r.backing[ScratchOffset:]
}

// Header returns the region's fixed-layout header.
func (r *Mapping) Header() *Header {
	return r.header
}

// Close releases the region's backing memory. After Close, Scratch and
// Header must not be used.
func (r *Mapping) Close() error {
	return unmapBacking(r.backing)
}

// PushParameters overwrites the shared parameter block, guarded by
// LockParameters, and marks Region(LockParameters) dirty. timeout
// governs how long to wait for the lock; WaitForever blocks
// indefinitely.
func (r *Mapping) PushParameters(p Parameters, timeout time.Duration) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.header.Locks.Lock(LockParameters, timeout); err != nil {
		return err
	}
	defer r.header.Locks.Unlock(LockParameters)
	r.header.Parameters = p
	r.header.Dirty.Mark(Region(LockParameters))
	return nil
}
