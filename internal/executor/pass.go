package executor

import (
	"fmt"

	"github.com/gogpu/beamform/internal/gpu"
)

// ComputePassEncoderHandle wraps a gpu.ComputePassEncoder with the
// beamforming-specific uniform slots the DAS/DASFast/Sum kernels read
// (voxel transform matrix, cycle counter, voxel offset, per-channel
// index, and the list of source textures a Sum dispatch averages).
// These have no equivalent in the teacher's 2-D rendering passes, so
// they're tracked here rather than in gpu.ComputePassEncoder itself,
// keeping that type's generic dispatch/barrier surface unchanged.
type ComputePassEncoderHandle struct {
	pass *gpu.ComputePassEncoder

	voxelTransform Mat4
	voxelOffset    Vec3i
	cycleT         uint32
	channel        int32
	sumInputs      []uint32
	sumScale       float32
}

// NewComputePassEncoderHandle wraps an already-begun compute pass.
func NewComputePassEncoderHandle(pass *gpu.ComputePassEncoder) *ComputePassEncoderHandle {
	return &ComputePassEncoderHandle{pass: pass}
}

// SetPipeline forwards to the wrapped pass, matching
// do_compute_shader's glUseProgram call preceding each stage's dispatch.
func (h *ComputePassEncoderHandle) SetPipeline(pipeline *gpu.ComputePipeline) error {
	if err := h.pass.SetPipeline(pipeline); err != nil {
		return fmt.Errorf("set pipeline: %w", err)
	}
	return nil
}

// SetBindGroup forwards to the wrapped pass, matching the original's
// glBindBufferBase/glBindImageTexture calls that bind a stage's storage
// buffers and output texture before dispatch.
func (h *ComputePassEncoderHandle) SetBindGroup(index uint32, bindGroup *gpu.BindGroup) error {
	if err := h.pass.SetBindGroup(index, bindGroup, nil); err != nil {
		return fmt.Errorf("set bind group %d: %w", index, err)
	}
	return nil
}

// DispatchWorkgroups forwards to the wrapped pass, matching
// do_compute_shader's glDispatchCompute calls.
func (h *ComputePassEncoderHandle) DispatchWorkgroups(x, y, z uint32) error {
	if err := h.pass.DispatchWorkgroups(x, y, z); err != nil {
		return fmt.Errorf("dispatch workgroups: %w", err)
	}
	return nil
}

// Barrier is a placeholder for the storage/image memory barrier each
// stage issues after its dispatch (glMemoryBarrier in the original).
// The underlying gpu.ComputePassEncoder has no barrier primitive yet;
// submission-level synchronization is handled by the device queue.
func (h *ComputePassEncoderHandle) Barrier() {}

// SetVoxelTransform stages the DAS voxel transform matrix, uploaded to
// the DAS uniform buffer before dispatch (u_voxel_transform).
func (h *ComputePassEncoderHandle) SetVoxelTransform(m Mat4) { h.voxelTransform = m }

// SetVoxelOffset stages the per-tile voxel offset (u_voxel_offset) for
// the tiled (non-DASFast) DAS dispatch path.
func (h *ComputePassEncoderHandle) SetVoxelOffset(offset Vec3i) { h.voxelOffset = offset }

// SetCycleT stages the monotonic dispatch counter (u_cycle_t) DAS
// shaders use to seed per-frame dithering.
func (h *ComputePassEncoderHandle) SetCycleT(cycleT uint32) { h.cycleT = cycleT }

// SetChannel stages the per-channel loop index (u_channel) for the
// DASFast per-transmit/per-channel dispatch path.
func (h *ComputePassEncoderHandle) SetChannel(channel int32) { h.channel = channel }

// AddSumInput appends one source frame's texture id to the Sum stage's
// input list.
func (h *ComputePassEncoderHandle) AddSumInput(textureID uint32) {
	h.sumInputs = append(h.sumInputs, textureID)
}

// DispatchSum records the averaging dispatch over the accumulated Sum
// inputs, scaling each sample by scale (1/frameCount) and dispatched
// over dim using the same /32, as-is, /32 divisor shape do_sum_shader
// uses for its output texture.
func (h *ComputePassEncoderHandle) DispatchSum(scale float32, dim Vec3i) error {
	h.sumScale = scale
	x := orOne(ceilDivU32(uint32(dim.X), 32))
	y := orOne(uint32(dim.Y))
	z := orOne(ceilDivU32(uint32(dim.Z), 32))
	if err := h.pass.DispatchWorkgroups(x, y, z); err != nil {
		return fmt.Errorf("dispatch sum: %w", err)
	}
	return nil
}

// End completes the underlying compute pass.
func (h *ComputePassEncoderHandle) End() error {
	return h.pass.End()
}
