package filter

import (
	"testing"

	"github.com/gogpu/beamform/internal/shm"
)

func TestStoreCreateAndGet(t *testing.T) {
	var s Store
	desc := shm.FilterDescriptor{Kind: shm.FilterKaiser, Cutoff: 2e6, Beta: 5, Length: 33}
	if err := s.Create(0, desc, 40e6); err != nil {
		t.Fatalf("Create: %v", err)
	}
	f := s.Get(0)
	if f == nil {
		t.Fatal("Get(0) returned nil after Create")
	}
	if len(f.Coeffs) != 33 {
		t.Fatalf("len(Coeffs) = %d, want 33", len(f.Coeffs))
	}
}

func TestStoreRejectsOutOfRangeSlot(t *testing.T) {
	var s Store
	desc := shm.FilterDescriptor{Kind: shm.FilterKaiser, Length: 9}
	if err := s.Create(MaxSlots, desc, 40e6); err == nil {
		t.Fatal("Create with out-of-range slot should fail")
	}
	if got := s.Get(-1); got != nil {
		t.Fatal("Get with negative slot should return nil")
	}
}

func TestStoreTimeOffsetMatchesDescriptor(t *testing.T) {
	var s Store
	desc := shm.FilterDescriptor{Kind: shm.FilterKaiser, Length: 64}
	if err := s.Create(1, desc, 20e6); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got := s.TimeOffset(1, 20e6)
	want := desc.TimeOffset(20e6)
	if got != want {
		t.Fatalf("TimeOffset = %v, want %v", got, want)
	}
	if got := s.TimeOffset(2, 20e6); got != 0 {
		t.Fatalf("TimeOffset on empty slot = %v, want 0", got)
	}
}
