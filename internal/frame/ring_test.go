package frame

import (
	"testing"

	"github.com/gogpu/beamform/internal/shm"
)

func TestRingWrapsAfterCapacity(t *testing.T) {
	r := NewRing(4)
	for i := uint64(0); i < 6; i++ {
		r.Put(NewFrame(i, Dim3{X: 32, Y: 1, Z: 32}, shm.ViewPlaneXZ))
	}
	if got := r.At(r.Latest()).ID; got != 5 {
		t.Fatalf("latest frame ID = %d, want 5", got)
	}
	// Slot 0 should now hold frame ID 4 (6 puts wrapped once through cap 4).
	if got := r.At(0).ID; got != 4 {
		t.Fatalf("slot 0 ID = %d, want 4 after wraparound", got)
	}
}

func TestIteratorYieldsExactlyNeededFrames(t *testing.T) {
	r := NewRing(8)
	for i := uint64(0); i < 8; i++ {
		r.Put(NewFrame(i, Dim3{X: 16, Y: 16, Z: 16}, shm.ViewPlaneVolume))
	}
	it := r.NewIterator(2, 3)
	var ids []uint64
	for f := it.Next(); f != nil; f = it.Next() {
		ids = append(ids, f.ID)
	}
	if len(ids) != 3 {
		t.Fatalf("got %d frames, want 3", len(ids))
	}
	want := []uint64{2, 3, 4}
	for i, id := range ids {
		if id != want[i] {
			t.Fatalf("ids[%d] = %d, want %d", i, id, want[i])
		}
	}
}

func TestDim3MipCount(t *testing.T) {
	cases := []struct {
		dim  Dim3
		mips int
	}{
		{Dim3{X: 1, Y: 1, Z: 1}, 1},
		{Dim3{X: 2, Y: 1, Z: 1}, 2},
		{Dim3{X: 32, Y: 16, Z: 8}, 6},
		{Dim3{X: 100, Y: 1, Z: 1}, 8},
	}
	for _, c := range cases {
		if got := c.dim.MipCount(); got != c.mips {
			t.Fatalf("MipCount(%+v) = %d, want %d", c.dim, got, c.mips)
		}
	}
}

func TestNewDimClampsToAtLeastOne(t *testing.T) {
	d := NewDim([3]uint32{0, 5, 0}, 0)
	if d.X != 1 || d.Z != 1 {
		t.Fatalf("NewDim = %+v, want X=1,Z=1", d)
	}
}

func TestNewDimClampsToMaxTextureDim(t *testing.T) {
	d := NewDim([3]uint32{4096, 4096, 4096}, 2048)
	if d.X != 2048 || d.Y != 2048 || d.Z != 2048 {
		t.Fatalf("NewDim = %+v, want all clamped to 2048", d)
	}
}
