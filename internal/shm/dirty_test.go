package shm

import "testing"

func TestDirtyRegionsMarkClear(t *testing.T) {
	var d DirtyRegions

	d.Mark(Region(LockParameters))
	d.Mark(Region(LockChannelMapping))

	if !d.IsDirty(Region(LockParameters)) {
		t.Fatal("LockParameters should be dirty")
	}
	if !d.IsDirty(Region(LockChannelMapping)) {
		t.Fatal("LockChannelMapping should be dirty")
	}
	if d.IsDirty(Region(LockFocalVectors)) {
		t.Fatal("LockFocalVectors should not be dirty")
	}
	if got := d.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}

	d.Clear(Region(LockParameters))
	if d.IsDirty(Region(LockParameters)) {
		t.Fatal("LockParameters should be clear")
	}
	if !d.IsDirty(Region(LockChannelMapping)) {
		t.Fatal("LockChannelMapping should still be dirty")
	}
}

func TestDirtyRegionsClearMask(t *testing.T) {
	var d DirtyRegions
	d.Mark(Region(LockParameters))
	d.Mark(Region(LockChannelMapping))
	d.Mark(Region(LockSparseElements))

	mask := uint32(1<<uint(LockParameters)) | uint32(1<<uint(LockSparseElements))
	d.ClearMask(mask)

	if d.IsDirty(Region(LockParameters)) || d.IsDirty(Region(LockSparseElements)) {
		t.Fatal("masked regions should be clear")
	}
	if !d.IsDirty(Region(LockChannelMapping)) {
		t.Fatal("unmasked region should remain dirty")
	}
}

func TestDirtyRegionsAny(t *testing.T) {
	var d DirtyRegions
	d.Mark(Region(LockFocalVectors))

	if !d.Any(uint32(1 << uint(LockFocalVectors))) {
		t.Fatal("Any should see LockFocalVectors bit")
	}
	if d.Any(uint32(1 << uint(LockRFData))) {
		t.Fatal("Any should not see unset LockRFData bit")
	}
}
