package executor

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/beamform/internal/gpu"
)

// Buffer is the executor's alias for the GPU storage/uniform buffer
// wrapper, re-exported so callers outside internal/gpu don't need to
// import it directly.
type Buffer = gpu.Buffer

// Buffers owns every GPU buffer the pipeline stages read and write:
// the raw RF storage buffer uploaded by producers, the decoded
// storage buffer each stage reads/writes in place, and the per-stage
// uniform buffers holding Decode/Demodulate parameters.
//
// Raw and Decoded are recreated by EnsureCapacity when the upstream
// dimensions (RFRawDim, DecDataDim) grow past the current allocation,
// mirroring the original's realloc-on-resize GPU buffer handling. The
// UBOs have a fixed size and are created once by NewBuffers.
type Buffers struct {
	device hal.Device

	Raw     *Buffer
	Decoded *Buffer

	DecodeUBO     *Buffer
	DemodulateUBO *Buffer

	rawBytes     uint64
	decodedBytes uint64
}

// NewBuffers creates the fixed-size UBOs eagerly; Raw and Decoded are
// left nil until the first EnsureCapacity call sizes them.
func NewBuffers(provider gpucontext.DeviceProvider) (*Buffers, error) {
	device, ok := provider.Device().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("executor: device provider returned unexpected device type %T", provider.Device())
	}

	b := &Buffers{device: device}

	decodeUBO, err := gpu.CreateBuffer(device, &gpu.BufferDescriptor{
		Label: "decode-ubo",
		Size:  decodeUBOSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create decode ubo: %w", err)
	}
	b.DecodeUBO = decodeUBO

	demodUBO, err := gpu.CreateBuffer(device, &gpu.BufferDescriptor{
		Label: "demodulate-ubo",
		Size:  demodulateUBOSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		decodeUBO.Destroy()
		return nil, fmt.Errorf("create demodulate ubo: %w", err)
	}
	b.DemodulateUBO = demodUBO

	return b, nil
}

// Sizes in bytes for the std140-style UBO layouts in internal/planner.
// DecodeUBO: mode, transmit count, 3x2 strides (u32) = 8 * 4 bytes.
// DemodulateUBO: 2 float32 + decimation rate + 3x2 strides + map flag.
const (
	decodeUBOSize     = 8 * 4
	demodulateUBOSize = 10 * 4
)

// EnsureCapacity (re)allocates Raw and/or Decoded if the requested byte
// sizes exceed the current allocation, destroying the prior buffer
// first. A no-op when the existing buffer is already large enough.
func (b *Buffers) EnsureCapacity(rawBytes, decodedBytes uint64) error {
	if rawBytes > b.rawBytes {
		if b.Raw != nil {
			b.Raw.Destroy()
		}
		buf, err := gpu.CreateBuffer(b.device, &gpu.BufferDescriptor{
			Label: "raw-rf-data",
			Size:  rawBytes,
			Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("allocate raw rf buffer: %w", err)
		}
		b.Raw = buf
		b.rawBytes = rawBytes
	}

	if decodedBytes > b.decodedBytes {
		if b.Decoded != nil {
			b.Decoded.Destroy()
		}
		buf, err := gpu.CreateBuffer(b.device, &gpu.BufferDescriptor{
			Label: "decoded-rf-data",
			Size:  decodedBytes,
			Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("allocate decoded rf buffer: %w", err)
		}
		b.Decoded = buf
		b.decodedBytes = decodedBytes
	}

	return nil
}

// Close destroys every buffer owned by b. Safe to call on a
// partially-initialized Buffers.
func (b *Buffers) Close() {
	for _, buf := range []*Buffer{b.Raw, b.Decoded, b.DecodeUBO, b.DemodulateUBO} {
		if buf != nil {
			buf.Destroy()
		}
	}
}
