package executor

import (
	"errors"
	"sync"

	"github.com/gogpu/beamform/internal/shm"
)

// ErrFallbackToCPU indicates the accelerator cannot handle this dispatch
// and the executor should fall back to its built-in GPU compute path.
var ErrFallbackToCPU = errors.New("executor: falling back to built-in compute path")

// Accelerator is an optional vendor-accelerated compute backend for
// Decode and the Hilbert-transform stage of Demodulate. The Executor
// installs it via RegisterAccelerator, but its dispatch path does not
// call it: every stage runs the built-in WGSL compute pipeline.
//
// This mirrors the original's CUDA vtable (cuda_decode, cuda_hilbert,
// ...) with cuda_*_stub no-ops as the unregistered default: here that
// default is NoopAccelerator.
type Accelerator interface {
	// Name identifies the accelerator (e.g. "cuda", "rocm").
	Name() string

	// Init acquires accelerator-owned resources. Called once, by
	// RegisterAccelerator; a shader reload does not call it again.
	Init() error

	// Close releases accelerator resources.
	Close()

	// RegisterBuffers gives the accelerator direct access to the raw
	// and decoded RF storage buffers, so it can read/write them without
	// a round-trip through the CPU.
	RegisterBuffers(raw, decoded *Buffer) error

	// SetChannelMapping uploads the channel mapping table for
	// subsequent Decode calls.
	SetChannelMapping(mapping []int16) error

	// Decode runs the decode stage for the given shader specialization
	// and parameters, writing into the decoded buffer registered via
	// RegisterBuffers. Returns ErrFallbackToCPU if the accelerator
	// doesn't support this DataKind/DecodeMode combination.
	Decode(shader shm.ShaderKind, params shm.Parameters) error

	// Hilbert runs the Hilbert-transform half of demodulation in place
	// over the decoded buffer. Returns ErrFallbackToCPU if unsupported.
	Hilbert(params shm.Parameters) error
}

// NoopAccelerator is the zero-value default: every stage reports
// ErrFallbackToCPU so the executor always uses its built-in pipeline.
type NoopAccelerator struct{}

func (NoopAccelerator) Name() string                                       { return "none" }
func (NoopAccelerator) Init() error                                        { return nil }
func (NoopAccelerator) Close()                                             {}
func (NoopAccelerator) RegisterBuffers(_, _ *Buffer) error                 { return nil }
func (NoopAccelerator) SetChannelMapping(_ []int16) error                  { return nil }
func (NoopAccelerator) Decode(shm.ShaderKind, shm.Parameters) error        { return ErrFallbackToCPU }
func (NoopAccelerator) Hilbert(shm.Parameters) error                       { return ErrFallbackToCPU }

var (
	accelMu sync.RWMutex
	accel   Accelerator = NoopAccelerator{}
)

// RegisterAccelerator installs a vendor-accelerated compute backend.
// Only one can be registered at a time; subsequent calls replace the
// previous one, closing it after the new one initializes successfully.
func RegisterAccelerator(a Accelerator) error {
	if a == nil {
		return errors.New("executor: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	old.Close()
	return nil
}

// CurrentAccelerator returns the currently registered accelerator,
// never nil (NoopAccelerator is the default).
func CurrentAccelerator() Accelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// CloseAccelerator releases the registered accelerator's resources and
// reverts to NoopAccelerator. Safe to call when none is registered.
func CloseAccelerator() {
	accelMu.Lock()
	old := accel
	accel = NoopAccelerator{}
	accelMu.Unlock()
	old.Close()
}
