package beamform

import "github.com/gogpu/beamform/internal/shm"

// These aliases re-export the wire-level types a Client's callers need
// to name, so external code depends only on the beamform package and
// never reaches into internal/shm directly.
type (
	DataKind         = shm.DataKind
	ShaderKind       = shm.ShaderKind
	DASShaderKind    = shm.DASShaderKind
	DecodeMode       = shm.DecodeMode
	ViewPlane        = shm.ViewPlane
	Parameters       = shm.Parameters
	StageParameters  = shm.StageParameters
	FocalVector      = shm.FocalVector
	FilterKind       = shm.FilterKind
	FilterDescriptor = shm.FilterDescriptor
)

const (
	DataInt16          = shm.DataInt16
	DataInt16Complex   = shm.DataInt16Complex
	DataFloat32        = shm.DataFloat32
	DataFloat32Complex = shm.DataFloat32Complex
)

const (
	ShaderDecode              = shm.ShaderDecode
	ShaderDemodulate          = shm.ShaderDemodulate
	ShaderDAS                 = shm.ShaderDAS
	ShaderDecodeInt16Complex  = shm.ShaderDecodeInt16Complex
	ShaderDecodeFloat         = shm.ShaderDecodeFloat
	ShaderDecodeFloatComplex  = shm.ShaderDecodeFloatComplex
	ShaderDemodulateFloat     = shm.ShaderDemodulateFloat
	ShaderDASFast             = shm.ShaderDASFast
	ShaderMinMax              = shm.ShaderMinMax
	ShaderSum                 = shm.ShaderSum
)

const (
	ViewPlaneXZ     = shm.ViewPlaneXZ
	ViewPlaneYZ     = shm.ViewPlaneYZ
	ViewPlaneXY     = shm.ViewPlaneXY
	ViewPlaneVolume = shm.ViewPlaneVolume
)

const (
	FilterKaiser = shm.FilterKaiser
)
