package beamform

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/beamform/internal/executor"
	"github.com/gogpu/beamform/internal/shm"
)

// Client is the producer-facing handle onto a beamforming region: push
// RF data and parameters, kick off a compute dispatch, and read back
// the results. A Client may be constructed locally (NewClient, which
// also owns the GPU executor) or attached to an existing region owned
// by another process (Open, a pure producer with no GPU resources of
// its own).
//
// Every method is safe for concurrent use; the shared-memory region
// underneath serializes access per named lock slot.
type Client struct {
	cfg Config

	region   *shm.Mapping
	executor *executor.Executor

	mu             sync.Mutex
	lastViewPlane  ViewPlane
	lastError      atomic.Pointer[Error]
	timeoutOverride atomic.Int64
}

// NewClient creates a new shared-memory region per cfg and constructs
// the GPU executor that drains its work queue. Call Close when done.
func NewClient(cfg Config, provider gpucontext.DeviceProvider) (*Client, error) {
	region, err := shm.CreateMapping(cfg.RegionName)
	if err != nil {
		return nil, newError(ErrorSharedMemory, err)
	}

	exec, err := executor.New(region, provider, cfg.FrameCapacity)
	if err != nil {
		region.Close()
		return nil, newError(ErrorSharedMemory, err)
	}
	exec.SetLogger(executorLogger{})

	return &Client{cfg: cfg, region: region, executor: exec}, nil
}

// Open attaches to an existing shared-memory region at name, created by
// another process's NewClient (or the beamformd worker). The returned
// Client is a pure producer: it has no GPU executor of its own.
func Open(name string) (*Client, error) {
	region, err := shm.OpenMapping(name)
	if err != nil {
		return nil, newError(ErrorSharedMemory, err)
	}
	return &Client{cfg: NewConfig(WithRegionName(name)), region: region}, nil
}

// Close releases the Client's GPU resources (if it owns any) and its
// shared-memory mapping.
func (c *Client) Close() error {
	if c.executor != nil {
		c.executor.Close()
	}
	return c.region.Close()
}

func (c *Client) timeout() time.Duration {
	if d := c.timeoutOverride.Load(); d != 0 {
		return time.Duration(d)
	}
	return c.cfg.DefaultTimeout
}

// SetGlobalTimeout overrides the default timeout used by every lock
// acquisition the Client performs, replacing cfg.DefaultTimeout.
func (c *Client) SetGlobalTimeout(d time.Duration) {
	c.timeoutOverride.Store(int64(d))
}

// LastError returns the ErrorKind of the most recent failing call, or
// ErrorNone if none has failed yet.
func (c *Client) LastError() ErrorKind {
	if e := c.lastError.Load(); e != nil {
		return e.Kind
	}
	return ErrorNone
}

// LastErrorString returns a human-readable description of LastError.
func (c *Client) LastErrorString() string {
	if e := c.lastError.Load(); e != nil {
		return e.Error()
	}
	return ErrorNone.String()
}

func (c *Client) fail(kind ErrorKind, cause error) error {
	if cause == nil {
		return nil
	}
	err := newError(kind, cause)
	c.lastError.Store(err)
	return err
}

func lockErrorKind(err error) ErrorKind {
	if err == shm.ErrLockTimeout {
		return ErrorSyncVariable
	}
	return ErrorSharedMemory
}

// PushData copies buf into the region's scratch area as a new raw RF
// upload and records plane as the view to redisplay, without
// triggering a compute dispatch. Use PushDataWithCompute to chain the
// two.
func (c *Client) PushData(buf []byte, plane ViewPlane) error {
	return c.pushData(buf, plane, false)
}

// PushDataWithCompute is PushData followed by StartCompute, matching
// the common "new frame of RF data, beamform it now" producer pattern.
func (c *Client) PushDataWithCompute(buf []byte, plane ViewPlane) error {
	return c.pushData(buf, plane, true)
}

func (c *Client) pushData(buf []byte, plane ViewPlane, withCompute bool) error {
	header := c.region.Header()
	if len(buf) > len(c.region.Scratch()) {
		return c.fail(ErrorBufferOverflow, fmt.Errorf("rf upload of %d bytes exceeds scratch capacity %d", len(buf), len(c.region.Scratch())))
	}

	if err := header.Locks.Lock(shm.LockRFData, c.timeout()); err != nil {
		return c.fail(lockErrorKind(err), err)
	}
	copy(c.region.Scratch(), buf)
	header.Dirty.Mark(shm.Region(shm.LockRFData))
	header.Locks.Unlock(shm.LockRFData)

	c.mu.Lock()
	c.lastViewPlane = plane
	c.mu.Unlock()

	item := shm.WorkItem{Kind: shm.WorkUploadBuffer, Upload: shm.UploadRFData}
	if err := header.Queue.Push(item); err != nil {
		return c.fail(ErrorWorkQueueFull, err)
	}
	if c.executor != nil {
		c.executor.MarkRawDataArrived()
	}

	if withCompute {
		return c.StartCompute(c.timeout())
	}
	return nil
}

// PushChannelMapping overwrites the transducer-element-to-channel
// lookup table.
func (c *Client) PushChannelMapping(values []int16) error {
	header := c.region.Header()
	if err := header.Tables.SetChannelMapping(&header.Locks, &header.Dirty, c.timeout(), values); err != nil {
		return c.fail(lockErrorKind(err), err)
	}
	return c.enqueueUpload(shm.UploadChannelMapping)
}

// PushSparseElements overwrites the sparse-array element lookup table.
func (c *Client) PushSparseElements(values []int16) error {
	header := c.region.Header()
	if err := header.Tables.SetSparseElements(&header.Locks, &header.Dirty, c.timeout(), values); err != nil {
		return c.fail(lockErrorKind(err), err)
	}
	return c.enqueueUpload(shm.UploadSparseElements)
}

// PushFocalVectors overwrites the (angle, focal depth) lookup table
// used by the RCA_TPW/RCA_VLS DAS geometries.
func (c *Client) PushFocalVectors(values []FocalVector) error {
	header := c.region.Header()
	if err := header.Tables.SetFocalVectors(&header.Locks, &header.Dirty, c.timeout(), values); err != nil {
		return c.fail(lockErrorKind(err), err)
	}
	return c.enqueueUpload(shm.UploadFocalVectors)
}

func (c *Client) enqueueUpload(target shm.UploadTarget) error {
	item := shm.WorkItem{Kind: shm.WorkUploadBuffer, Upload: target}
	if err := c.region.Header().Queue.Push(item); err != nil {
		return c.fail(ErrorWorkQueueFull, err)
	}
	return nil
}

// PushParameters overwrites the shared parameter block.
func (c *Client) PushParameters(p Parameters) error {
	if err := c.region.PushParameters(p, c.timeout()); err != nil {
		return c.fail(lockErrorKind(err), err)
	}
	return c.enqueueUpload(shm.UploadParameters)
}

// PushPipeline stages a new shader sequence and data kind. shaders must
// begin with a Decode or Demodulate stage and must not exceed
// shm.MaxShaderStages entries.
func (c *Client) PushPipeline(shaders []ShaderKind, dataKind DataKind) error {
	if len(shaders) == 0 || (shaders[0] != ShaderDecode && shaders[0] != ShaderDemodulate &&
		shaders[0] != ShaderDecodeInt16Complex && shaders[0] != ShaderDecodeFloat &&
		shaders[0] != ShaderDecodeFloatComplex && shaders[0] != ShaderDemodulateFloat) {
		return c.fail(ErrorInvalidStartShader, fmt.Errorf("pipeline must begin with a Decode or Demodulate stage"))
	}
	if len(shaders) > shm.MaxShaderStages {
		return c.fail(ErrorComputeStageOverflow, fmt.Errorf("pipeline has %d stages, max is %d", len(shaders), shm.MaxShaderStages))
	}
	if c.executor == nil {
		return c.fail(ErrorInvalidAccess, fmt.Errorf("client has no local executor to stage a pipeline on"))
	}

	stageParams := make([]StageParameters, len(shaders))
	for i := range stageParams {
		stageParams[i].FilterSlot = -1
	}
	if err := c.executor.ComputeSetup(shaders, stageParams, dataKind); err != nil {
		return c.fail(ErrorInvalidComputeStage, err)
	}
	return c.enqueueUpload(shm.UploadParameters)
}

// CreateKaiserLowPassFilter stages a Kaiser-windowed low-pass filter
// descriptor (beta/cutoff/length) at slot and enqueues a WorkCreateFilter
// item for the worker to construct it from. Filter coefficient storage
// is GPU-owned, so construction always happens on the worker side, not
// here: this makes the call work equally for an in-process client and
// one obtained from Open, which has no local executor at all.
func (c *Client) CreateKaiserLowPassFilter(beta, cutoff float32, length int, slot int) error {
	desc := FilterDescriptor{Kind: FilterKaiser, Cutoff: cutoff, Beta: beta, Length: length}
	header := c.region.Header()
	if err := header.Tables.SetFilterDescriptor(&header.Locks, &header.Dirty, c.timeout(), slot, desc); err != nil {
		return c.fail(ErrorBufferOverflow, err)
	}

	item := shm.WorkItem{Kind: shm.WorkCreateFilter, FilterSlot: int32(slot)}
	if err := c.region.Header().Queue.Push(item); err != nil {
		return c.fail(ErrorWorkQueueFull, err)
	}
	return nil
}

// StartCompute enqueues a dispatch of the currently staged pipeline
// against the most recently pushed RF data. timeout is not used: the
// queue push never blocks and fails at once with ErrorWorkQueueFull
// when the queue is full. Use WaitForComputeDispatch to block for
// completion.
func (c *Client) StartCompute(timeout time.Duration) error {
	item := shm.WorkItem{Kind: shm.WorkCompute}
	if err := c.region.Header().Queue.Push(item); err != nil {
		return c.fail(ErrorWorkQueueFull, err)
	}
	return nil
}

// WaitForComputeDispatch blocks until the worker has finished the most
// recently started compute dispatch, or timeout elapses.
func (c *Client) WaitForComputeDispatch(timeout time.Duration) error {
	locks := &c.region.Header().Locks
	if err := locks.Lock(shm.LockDispatchCompute, timeout); err != nil {
		return c.fail(ErrorSyncVariable, err)
	}
	locks.Unlock(shm.LockDispatchCompute)
	return nil
}
