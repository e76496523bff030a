package executor

import (
	"errors"
	"testing"

	"github.com/gogpu/beamform/internal/shm"
)

func TestDefaultAcceleratorIsNoop(t *testing.T) {
	CloseAccelerator()
	if name := CurrentAccelerator().Name(); name != "none" {
		t.Fatalf("default accelerator name = %q, want %q", name, "none")
	}
	if err := CurrentAccelerator().Decode(shm.ShaderDecode, shm.Parameters{}); !errors.Is(err, ErrFallbackToCPU) {
		t.Fatalf("Decode() = %v, want ErrFallbackToCPU", err)
	}
}

type fakeAccelerator struct {
	name   string
	closed bool
}

func (f *fakeAccelerator) Name() string                                 { return f.name }
func (f *fakeAccelerator) Init() error                                  { return nil }
func (f *fakeAccelerator) Close()                                       { f.closed = true }
func (f *fakeAccelerator) RegisterBuffers(_, _ *Buffer) error           { return nil }
func (f *fakeAccelerator) SetChannelMapping(_ []int16) error            { return nil }
func (f *fakeAccelerator) Decode(shm.ShaderKind, shm.Parameters) error  { return nil }
func (f *fakeAccelerator) Hilbert(shm.Parameters) error                 { return nil }

func TestRegisterAcceleratorReplacesAndClosesPrevious(t *testing.T) {
	CloseAccelerator()

	first := &fakeAccelerator{name: "first"}
	if err := RegisterAccelerator(first); err != nil {
		t.Fatalf("RegisterAccelerator(first): %v", err)
	}

	second := &fakeAccelerator{name: "second"}
	if err := RegisterAccelerator(second); err != nil {
		t.Fatalf("RegisterAccelerator(second): %v", err)
	}

	if !first.closed {
		t.Fatal("expected first accelerator to be closed when replaced")
	}
	if CurrentAccelerator().Name() != "second" {
		t.Fatalf("CurrentAccelerator().Name() = %q, want %q", CurrentAccelerator().Name(), "second")
	}

	CloseAccelerator()
	if !second.closed {
		t.Fatal("expected second accelerator to be closed by CloseAccelerator")
	}
	if CurrentAccelerator().Name() != "none" {
		t.Fatal("expected default accelerator after CloseAccelerator")
	}
}

func TestRegisterAcceleratorRejectsNil(t *testing.T) {
	if err := RegisterAccelerator(nil); err == nil {
		t.Fatal("expected error registering a nil accelerator")
	}
}
