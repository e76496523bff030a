package executor

import (
	"fmt"
	"math"

	"github.com/gogpu/beamform/internal/shm"
)

// decodeLocalSizeX/Y/Z and demodLocalSizeX/Y/Z mirror DECODE_LOCAL_SIZE_*
// and DEMOD_LOCAL_SIZE_* from the original shader headers: not found
// defined anywhere in the retrieved source pack, so inferred from the
// same 32x1x32 workgroup shape used by dasLocalSize (cursor.go) and by
// do_sum_shader's dispatch divisors.
const (
	decodeLocalSizeX = 32
	decodeLocalSizeY = 1
	decodeLocalSizeZ = 32

	demodLocalSizeX = 32
	demodLocalSizeY = 1
	demodLocalSizeZ = 32
)

func ceilDivU32(v, size uint32) uint32 {
	if size == 0 {
		return 0
	}
	return uint32(math.Ceil(float64(v) / float64(size)))
}

// Stage performs one pipeline stage's dispatch (one entry of
// Executor.Plan().Shaders). It records the compute pass through pass
// and advances the ping-pong SSBO index the same way
// do_compute_shader's csctx->last_output_ssbo_index toggle does.
//
// This is a structural port: it records the bind/dispatch/barrier
// sequence against the ComputePassEncoder API without assuming a
// concrete pipeline object, since compiled WGSL pipelines are owned by
// the shader reload coordinator (internal/reload) and supplied by the
// caller.
func (e *Executor) Stage(pass *ComputePassEncoderHandle, shader shm.ShaderKind, first bool, params shm.Parameters, stageIndex int) error {
	if err := pass.SetPipeline(e.pipelineFor(shader)); err != nil {
		return fmt.Errorf("stage %s: %w", shader, err)
	}
	if err := pass.SetBindGroup(0, e.bindGroupFor(shader)); err != nil {
		return fmt.Errorf("stage %s: %w", shader, err)
	}

	switch {
	case shader == shm.ShaderDecode || shader == shm.ShaderDecodeInt16Complex ||
		shader == shm.ShaderDecodeFloat || shader == shm.ShaderDecodeFloatComplex:
		return e.dispatchDecode(pass, shader, first, params)
	case shader == shm.ShaderDemodulate || shader == shm.ShaderDemodulateFloat:
		return e.dispatchDemodulate(pass, first, params, stageIndex)
	case shader == shm.ShaderMinMax:
		return e.dispatchMinMax(pass)
	case shader == shm.ShaderDAS || shader == shm.ShaderDASFast:
		return e.dispatchDAS(pass, shader, params)
	case shader == shm.ShaderSum:
		return e.dispatchSum(pass, params)
	default:
		return fmt.Errorf("executor: unhandled shader kind %s", shader)
	}
}

func (e *Executor) dispatchDecode(pass *ComputePassEncoderHandle, shader shm.ShaderKind, first bool, params shm.Parameters) error {
	localX := float64(decodeLocalSizeX)
	if shader == shm.ShaderDecode {
		localX *= 2 // decode 2 int16 samples per dispatch
	}

	dim := params.DecDataDim
	x := ceilDivU32(dim[0], uint32(localX))
	y := ceilDivU32(dim[1], decodeLocalSizeY)
	z := ceilDivU32(dim[2], decodeLocalSizeZ)

	if first {
		if err := pass.DispatchWorkgroups(x, y, z); err != nil {
			return fmt.Errorf("decode first pass: %w", err)
		}
		pass.Barrier()
	}

	if err := pass.DispatchWorkgroups(x, y, z); err != nil {
		return fmt.Errorf("decode second pass: %w", err)
	}
	pass.Barrier()

	e.togglePingPong()
	return nil
}

func (e *Executor) dispatchDemodulate(pass *ComputePassEncoderHandle, first bool, params shm.Parameters, stageIndex int) error {
	e.mu.Lock()
	plan := e.plan
	e.mu.Unlock()

	decimation := plan.Demodulate.DecimationRate
	if decimation == 0 {
		decimation = 1
	}
	localX := float64(demodLocalSizeX) * float64(decimation)

	dim := params.DecDataDim
	x := ceilDivU32(dim[0], uint32(localX))
	y := ceilDivU32(dim[1], demodLocalSizeY)
	z := ceilDivU32(dim[2], demodLocalSizeZ)

	if err := pass.DispatchWorkgroups(x, y, z); err != nil {
		return fmt.Errorf("demodulate: %w", err)
	}
	pass.Barrier()

	e.togglePingPong()
	return nil
}

func (e *Executor) dispatchMinMax(pass *ComputePassEncoderHandle) error {
	f := e.Frames.At(e.Frames.Latest())
	for level := 1; level < f.Mips; level++ {
		width := uint32(f.Dim.X) >> uint(level)
		height := uint32(f.Dim.Y) >> uint(level)
		depth := uint32(f.Dim.Z) >> uint(level)

		if err := pass.DispatchWorkgroups(orOne(width/32), orOne(height), orOne(depth/32)); err != nil {
			return fmt.Errorf("min/max mip %d: %w", level, err)
		}
		pass.Barrier()
	}
	return nil
}

func orOne(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	return v
}

func (e *Executor) dispatchDAS(pass *ComputePassEncoderHandle, shader shm.ShaderKind, params shm.Parameters) error {
	voxelTransform := DASVoxelTransform(params)
	pass.SetVoxelTransform(voxelTransform)
	pass.SetCycleT(e.cycleT)
	e.cycleT++

	f := e.Frames.At(e.Frames.Latest())
	dim := Vec3i{X: f.Dim.X, Y: f.Dim.Y, Z: f.Dim.Z}

	if shader == shm.ShaderDASFast {
		loopEnd := int32(params.DecDataDim[1])
		if params.DASShaderID == shm.DASRCAVLS || params.DASShaderID == shm.DASRCATPW {
			loopEnd = int32(params.DecDataDim[2])
		}
		for channel := int32(0); channel < loopEnd; channel++ {
			pass.SetChannel(channel)
			x := ceilDivU32(uint32(dim.X), dasFastLocalSizeX)
			y := ceilDivU32(uint32(dim.Y), dasFastLocalSizeY)
			z := ceilDivU32(uint32(dim.Z), dasFastLocalSizeZ)
			if err := pass.DispatchWorkgroups(x, y, z); err != nil {
				return fmt.Errorf("das fast channel %d: %w", channel, err)
			}
			pass.Barrier()
		}
		return nil
	}

	cursor := NewCursor(dim, MaxPointsPerDispatch)
	for !cursor.Finished() {
		offset := cursor.Offset()
		dispatch := cursor.Dispatch()
		pass.SetVoxelOffset(offset)
		if err := pass.DispatchWorkgroups(uint32(dispatch.X), uint32(dispatch.Y), uint32(dispatch.Z)); err != nil {
			return fmt.Errorf("das tile at %+v: %w", offset, err)
		}
		cursor.Step()
	}
	pass.Barrier()
	return nil
}

// dasFastLocalSizeX/Y/Z mirror DAS_FAST_LOCAL_SIZE_*, likewise absent
// from the retrieved source and inferred as 32x1x32.
const (
	dasFastLocalSizeX = 32
	dasFastLocalSizeY = 1
	dasFastLocalSizeZ = 32
)

func (e *Executor) dispatchSum(pass *ComputePassEncoderHandle, params shm.Parameters) error {
	toAverage := params.OutputPoints[3]
	if toAverage == 0 {
		return fmt.Errorf("executor: sum stage requires OutputPoints[3] > 0")
	}

	latest := e.Frames.Latest()
	it := e.Frames.NewIterator(latest+1-toAverage, toAverage)

	var frameCount uint32
	for f := it.Next(); f != nil; f = it.Next() {
		pass.AddSumInput(f.TextureID)
		frameCount++
	}
	if frameCount != toAverage {
		return fmt.Errorf("executor: sum stage gathered %d frames, want %d", frameCount, toAverage)
	}

	dim := e.Frames.At(latest).Dim
	if err := pass.DispatchSum(1.0/float32(frameCount), Vec3i{X: dim.X, Y: dim.Y, Z: dim.Z}); err != nil {
		return fmt.Errorf("sum: %w", err)
	}
	return nil
}

func (e *Executor) togglePingPong() {
	e.mu.Lock()
	e.lastOutputSSBOIndex = 1 - e.lastOutputSSBOIndex
	e.mu.Unlock()
}
