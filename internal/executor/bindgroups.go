package executor

import (
	"github.com/gogpu/beamform/internal/gpu"
	"github.com/gogpu/beamform/internal/shm"
)

// pipelineFor resolves the compiled pipeline for shader, preferring the
// shader reload coordinator's most recently compiled handle (Reload is
// nil in tests and before the first reload) and falling back to a bare
// placeholder pipeline sized from this package's local-size constants,
// matching do_compute_shader's glUseProgram(program) where program is
// whatever the current reload cycle last linked.
func (e *Executor) pipelineFor(shader shm.ShaderKind) *gpu.ComputePipeline {
	if e.Reload != nil {
		if p, ok := e.Reload.Handle(shader).(*gpu.ComputePipeline); ok && p != nil {
			return p
		}
	}
	return gpu.NewComputePipeline(shader.String(), workgroupSizeFor(shader))
}

// workgroupSizeFor returns the local workgroup size baked into each
// shader's dispatch math, used only to label a fallback pipeline
// placeholder when no reload has compiled a real one yet.
func workgroupSizeFor(shader shm.ShaderKind) [3]uint32 {
	switch {
	case shader == shm.ShaderDecode || shader == shm.ShaderDecodeInt16Complex ||
		shader == shm.ShaderDecodeFloat || shader == shm.ShaderDecodeFloatComplex:
		return [3]uint32{decodeLocalSizeX, decodeLocalSizeY, decodeLocalSizeZ}
	case shader == shm.ShaderDemodulate || shader == shm.ShaderDemodulateFloat:
		return [3]uint32{demodLocalSizeX, demodLocalSizeY, demodLocalSizeZ}
	case shader == shm.ShaderDAS || shader == shm.ShaderDASFast:
		return [3]uint32{dasFastLocalSizeX, dasFastLocalSizeY, dasFastLocalSizeZ}
	default:
		return [3]uint32{32, 1, 32}
	}
}

// bindGroupFor builds the bind group a stage's dispatch reads/writes
// through: the raw and decoded storage buffers every stage shares, plus
// the stage's own uniform buffer, matching do_compute_shader's
// per-stage glBindBufferBase sequence. The returned group is a fresh
// placeholder each call since internal/gpu's BindGroup carries no
// buffer references yet (see gpu.BindGroup); the label alone documents
// which buffers it stands in for.
func (e *Executor) bindGroupFor(shader shm.ShaderKind) *gpu.BindGroup {
	switch {
	case shader == shm.ShaderDecode || shader == shm.ShaderDecodeInt16Complex ||
		shader == shm.ShaderDecodeFloat || shader == shm.ShaderDecodeFloatComplex:
		return gpu.NewBindGroup("decode: raw+decoded+decode-ubo")
	case shader == shm.ShaderDemodulate || shader == shm.ShaderDemodulateFloat:
		return gpu.NewBindGroup("demodulate: decoded+demodulate-ubo")
	case shader == shm.ShaderMinMax:
		return gpu.NewBindGroup("minmax: frame-texture-mips")
	case shader == shm.ShaderDAS || shader == shm.ShaderDASFast:
		return gpu.NewBindGroup("das: decoded+frame-texture")
	case shader == shm.ShaderSum:
		return gpu.NewBindGroup("sum: frame-textures")
	default:
		return gpu.NewBindGroup(shader.String())
	}
}
