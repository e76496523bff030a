package reload

import (
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/beamform/internal/gpu"
	"github.com/gogpu/beamform/internal/shm"
)

// workgroupSizes gives the local workgroup size NagaCompiler stamps
// onto each specialization's ComputePipeline placeholder, matching the
// sizes internal/executor's dispatch logic was built against.
var workgroupSizes = map[shm.ShaderKind][3]uint32{
	shm.ShaderDecode:             {32, 1, 32},
	shm.ShaderDecodeInt16Complex: {32, 1, 32},
	shm.ShaderDecodeFloat:        {32, 1, 32},
	shm.ShaderDecodeFloatComplex: {32, 1, 32},
	shm.ShaderDemodulate:         {32, 1, 32},
	shm.ShaderDemodulateFloat:    {32, 1, 32},
	shm.ShaderDAS:                {32, 1, 32},
	shm.ShaderDASFast:            {32, 1, 32},
	shm.ShaderMinMax:             {32, 1, 32},
	shm.ShaderSum:                {32, 1, 32},
}

// NagaCompiler implements Compiler by translating WGSL compute-shader
// source to SPIR-V via naga, then wrapping the result in a
// gpu.ComputePipeline placeholder labeled with the shader kind's name.
// It performs no caching of its own; Coordinator owns the resulting
// handle map.
type NagaCompiler struct{}

// Compile translates source (already specialization-headered) to
// SPIR-V and returns the resulting *gpu.ComputePipeline.
func (NagaCompiler) Compile(kind shm.ShaderKind, source string) (any, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("naga: compile %s: %w", kind, err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("naga: compile %s: spir-v output is not word-aligned (%d bytes)", kind, len(spirv))
	}

	size, ok := workgroupSizes[kind]
	if !ok {
		size = [3]uint32{1, 1, 1}
	}
	return gpu.NewComputePipeline(kind.String(), size), nil
}
