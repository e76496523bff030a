// Package executor implements the compute executor: the single GPU
// worker that drains the shared-memory work queue, plans and dispatches
// the Decode/Demodulate/DAS/MinMax/Sum pipeline, and publishes finished
// frames into the frame ring.
package executor

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/beamform/internal/filter"
	"github.com/gogpu/beamform/internal/frame"
	"github.com/gogpu/beamform/internal/planner"
	"github.com/gogpu/beamform/internal/reload"
	"github.com/gogpu/beamform/internal/shm"
	"github.com/gogpu/beamform/internal/timing"
)

// MaxTextureDim bounds the frame texture's largest dimension, matching
// the GPU device's max 3D texture size on commodity hardware.
const MaxTextureDim = 2048

// Executor owns the GPU resources and pipeline state for one shared
// memory region. Exactly one Executor runs per process, driven from a
// single goroutine (see RunCompute); all mutation of its fields happens on
// that goroutine except where noted.
type Executor struct {
	Region  *shm.Mapping
	Buffers *Buffers
	Filters *filter.Store
	Frames  *frame.Ring
	Timing  *timing.Ring
	Stats   *timing.Coalescer

	// Reload supplies the pipeline handles Stage binds before each
	// dispatch. Nil until a caller installs one (e.g. cmd/beamformd's
	// worker on startup), in which case Stage falls back to a
	// placeholder pipeline.
	Reload *reload.Coordinator

	logger Logger

	mu   sync.Mutex
	plan planner.Plan

	lastOutputSSBOIndex uint32
	cycleT              uint32
	frameSeq            uint64

	hasRawData bool
}

// Logger is the executor's logging seam, matching the ambient logging
// contract used across the module (see beamform.Logger). Tests inject
// a no-op implementation.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// nopLogger discards every call.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// New constructs an Executor bound to region, acquiring GPU buffers
// through provider. frameCapacity sizes the frame ring (frame.NewRing
// raises values below 1 to 1).
func New(region *shm.Mapping, provider gpucontext.DeviceProvider, frameCapacity uint32) (*Executor, error) {
	buffers, err := NewBuffers(provider)
	if err != nil {
		return nil, fmt.Errorf("executor: %w", err)
	}

	return &Executor{
		Region:  region,
		Buffers: buffers,
		Filters: &filter.Store{},
		Frames:  frame.NewRing(int(frameCapacity)),
		Timing:  &timing.Ring{},
		Stats:   &timing.Coalescer{},
		logger:  nopLogger{},
	}, nil
}

// SetLogger installs l as the executor's logger. A nil l reverts to a
// silent logger.
func (e *Executor) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	e.logger = l
}

// HasRawData reports whether at least one raw RF upload has completed,
// gating Compute dispatch the same way the original core guards
// against beamforming an empty buffer before any data has arrived.
func (e *Executor) HasRawData() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasRawData
}

// ComputeSetup plans the pipeline for the currently staged parameters
// and shader list, and resizes GPU buffers to match. It must be called
// before the first Compute dispatch and again whenever parameters
// affecting buffer sizing change.
func (e *Executor) ComputeSetup(shaders []shm.ShaderKind, stageParams []shm.StageParameters, dataKind shm.DataKind) error {
	header := e.Region.Header()
	params := header.Parameters

	e.mu.Lock()
	e.plan = planner.Plan(shaders, stageParams, dataKind, params, e.Filters.TimeOffset)
	e.mu.Unlock()

	rawBytes := uint64(params.RFRawDim[0]) * uint64(params.RFRawDim[1]) * uint64(dataKind.Clamp().SampleSize()) * 2
	decDataPoints := uint64(params.DecDataDim[0]) * uint64(params.DecDataDim[1]) * uint64(params.DecDataDim[2])
	decodedBytes := decDataPoints * uint64(dataKind.Clamp().SampleSize()) * 2

	if err := e.Buffers.EnsureCapacity(rawBytes, decodedBytes); err != nil {
		return fmt.Errorf("executor: compute setup: %w", err)
	}

	return nil
}

// Plan returns the most recently computed pipeline plan.
func (e *Executor) Plan() planner.Plan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.plan
}

// MarkRawDataArrived records that a raw RF upload has landed, called
// by the work-queue consumer on UploadTarget_RFData.
func (e *Executor) MarkRawDataArrived() {
	e.mu.Lock()
	e.hasRawData = true
	e.mu.Unlock()
}

// Close releases every GPU resource the executor owns.
func (e *Executor) Close() {
	e.Buffers.Close()
}
