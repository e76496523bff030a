//go:build !nogpu

// Package gpu provides the GPU buffer, command-encoder, and compute-pass
// plumbing the beamforming executor dispatches through.
//
// It wraps the gogpu/wgpu Pure Go WebGPU implementation (zero CGO), which
// supports Vulkan, Metal, and DX12 backends depending on the platform.
//
// # Architecture Overview
//
// The executor drives one pipeline per frame:
//
//	Raw RF (SSBO) -> Decode -> Demodulate -> DAS -> MinMax/Sum -> Frame texture
//
// Each stage is a single compute shader dispatched through a
// ComputePassEncoder against storage and uniform buffers created with
// Buffer/CreateBuffer. Key components:
//
//   - Buffer: storage/uniform buffer wrapper with map-async lifecycle
//   - CoreCommandEncoder: records dispatches and buffer copies into a submittable
//     command buffer
//   - ComputePassEncoder: state machine for a single compute pass, including
//     indirect dispatch
//
// # Usage
//
// The executor creates SSBOs for raw and decoded RF data and UBOs for
// per-stage parameters, records each stage's dispatch, and submits the
// resulting command buffer to the device queue:
//
//	rawBuf, _ := gpu.CreateBuffer(device, &gpu.BufferDescriptor{
//	    Size:  rawRFSize,
//	    Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
//	})
//	pass, _ := encoder.BeginComputePass(&gpu.ComputePassDescriptor{})
//	pass.SetPipeline(decodePipeline)
//	pass.DispatchWorkgroups(x, y, z)
//	pass.End()
//
// # Requirements
//
//   - Go 1.25+ (for generic features)
//   - gogpu/wgpu module (github.com/gogpu/wgpu)
//   - A GPU that supports Vulkan, Metal, or DX12
//
// # Thread Safety
//
// Buffer is safe for concurrent use from multiple goroutines; internal
// synchronization is handled via mutexes. ComputePassEncoder and
// CoreCommandEncoder are not safe for concurrent use.
//
// # References
//
//   - W3C WebGPU Specification: https://www.w3.org/TR/webgpu/
//   - gogpu/wgpu: https://github.com/gogpu/wgpu
package gpu
